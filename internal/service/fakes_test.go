package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/messaging-service/internal/auth"
	"github.com/spec-kit/messaging-service/internal/domain"
	"github.com/spec-kit/messaging-service/internal/events"
	"github.com/spec-kit/messaging-service/internal/repository"
)

type memoryUsers struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	failErr error
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: make(map[string]*domain.User)}
}

func (m *memoryUsers) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	for _, u := range m.byID {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	m.byID[user.ID] = &stored
	return nil
}

func (m *memoryUsers) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	for id, u := range m.byID {
		if id != user.ID && u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.UpdatedAt = time.Now().UTC()
	stored := *user
	m.byID[user.ID] = &stored
	return nil
}

func (m *memoryUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	for _, u := range m.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memoryUsers) ListActive(_ context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.User
	for _, u := range m.byID {
		if u.Active {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memoryUsers) delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
}

func (m *memoryUsers) setActive(id string, active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[id].Active = active
}

type memoryMessages struct {
	mu            sync.Mutex
	messages      []domain.Message
	notifications *memoryNotifications
	failErr       error
}

func (m *memoryMessages) CreateWithNotification(_ context.Context, msg *domain.Message) (*domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	msg.ID = uuid.NewString()
	msg.CreatedAt = time.Now().UTC()
	m.messages = append(m.messages, *msg)
	return m.notifications.add(msg.ReceiverID, msg.ID), nil
}

func (m *memoryMessages) ListByReceiver(_ context.Context, receiverID string) ([]domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Message
	for _, msg := range m.messages {
		if msg.ReceiverID == receiverID {
			out = append(out, msg)
		}
	}
	return out, nil
}

type memoryNotifications struct {
	mu    sync.Mutex
	items []domain.Notification
}

func (m *memoryNotifications) add(userID, messageID string) *domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := domain.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		MessageID: messageID,
		CreatedAt: time.Now().UTC(),
	}
	m.items = append(m.items, n)
	return &n
}

func (m *memoryNotifications) ListByUser(_ context.Context, userID string) ([]domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Notification
	for _, n := range m.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memoryNotifications) MarkAllReadForUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	m.mu.Lock()
	for i := range m.items {
		if m.items[i].UserID == userID {
			m.items[i].Read = true
		}
	}
	m.mu.Unlock()
	return m.ListByUser(ctx, userID)
}

type publishedEvent struct {
	userID string
	event  events.Event
}

type recordingPublisher struct {
	mu     sync.Mutex
	sent   []publishedEvent
	failed bool
}

func (p *recordingPublisher) Publish(_ context.Context, userID string, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failed {
		return errors.New("publisher down")
	}
	p.sent = append(p.sent, publishedEvent{userID: userID, event: event})
	return nil
}

type fixture struct {
	users         *memoryUsers
	messages      *memoryMessages
	notifications *memoryNotifications
	publisher     *recordingPublisher
	tokens        *auth.TokenManager
	hasher        *auth.PasswordHasher

	auth         *AuthService
	user         *UserService
	message      *MessageService
	notification *NotificationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens, err := auth.NewTokenManager("test-secret", 60*time.Second)
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)

	f := &fixture{
		users:         newMemoryUsers(),
		notifications: &memoryNotifications{},
		publisher:     &recordingPublisher{},
		tokens:        tokens,
		hasher:        hasher,
	}
	f.messages = &memoryMessages{notifications: f.notifications}

	dispatcher := events.NewInMemoryDispatcher()
	f.auth = NewAuthService(AuthDependencies{UserRepo: f.users, Hasher: hasher, Tokens: tokens})
	f.user = NewUserService(f.users, hasher)
	f.message = NewMessageService(MessageDependencies{
		MessageRepo: f.messages,
		UserRepo:    f.users,
		Dispatcher:  dispatcher,
	})
	f.notification = NewNotificationService(NotificationDependencies{
		NotificationRepo: f.notifications,
		Dispatcher:       dispatcher,
		Publisher:        f.publisher,
	})
	f.notification.RegisterHandlers()
	return f
}

// signUp registers an account and returns its id.
func (f *fixture) signUp(t *testing.T, email, password string) string {
	t.Helper()
	token, err := f.auth.SignUp(context.Background(), email, password)
	if err != nil {
		t.Fatalf("sign up %s: %v", email, err)
	}
	identity, err := f.tokens.Verify(token.AccessToken)
	if err != nil {
		t.Fatalf("verify sign-up token: %v", err)
	}
	return identity.SubjectID
}

func (f *fixture) seedUsers(t *testing.T, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, f.signUp(t, fmt.Sprintf("user%d@x.com", i), "pw"))
	}
	return ids
}
