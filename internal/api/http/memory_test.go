package http

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/messaging-service/internal/domain"
	"github.com/spec-kit/messaging-service/internal/repository"
)

// store is an in-memory stand-in for the three Postgres repositories.
type store struct {
	mu            sync.Mutex
	users         map[string]domain.User
	messages      []domain.Message
	notifications []domain.Notification
}

func newStore() *store {
	return &store{users: make(map[string]domain.User)}
}

type userStore struct{ *store }
type messageStore struct{ *store }
type notificationStore struct{ *store }

var (
	_ repository.UserRepository         = userStore{}
	_ repository.MessageRepository      = messageStore{}
	_ repository.NotificationRepository = notificationStore{}
)

func (s userStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = *user
	return nil
}

func (s userStore) Update(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	for id, u := range s.users {
		if id != user.ID && u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s userStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (s userStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s userStore) ListActive(_ context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.User
	for _, u := range s.users {
		if u.Active {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s messageStore) CreateWithNotification(_ context.Context, msg *domain.Message) (*domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range []string{msg.SenderID, msg.ReceiverID} {
		if _, ok := s.users[id]; !ok {
			return nil, repository.ErrMissingReference
		}
	}
	msg.ID = uuid.NewString()
	msg.CreatedAt = time.Now().UTC()
	s.messages = append(s.messages, *msg)
	n := domain.Notification{
		ID:        uuid.NewString(),
		UserID:    msg.ReceiverID,
		MessageID: msg.ID,
		CreatedAt: msg.CreatedAt,
	}
	s.notifications = append(s.notifications, n)
	return &n, nil
}

func (s messageStore) ListByReceiver(_ context.Context, receiverID string) ([]domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Message
	for _, m := range s.messages {
		if m.ReceiverID == receiverID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s notificationStore) ListByUser(_ context.Context, userID string) ([]domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s notificationStore) MarkAllReadForUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	s.mu.Lock()
	for i := range s.notifications {
		if s.notifications[i].UserID == userID {
			s.notifications[i].Read = true
		}
	}
	s.mu.Unlock()
	return s.ListByUser(ctx, userID)
}
