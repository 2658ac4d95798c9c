package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/messaging-service/internal/auth"
	"github.com/spec-kit/messaging-service/internal/domain"
	"github.com/spec-kit/messaging-service/internal/repository"
)

// AccessToken is the result of a successful sign-in.
type AccessToken struct {
	AccessToken string
	ExpiresAt   time.Time
}

// AuthService coordinates sign-up and sign-in flows.
type AuthService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
	logger *zap.Logger

	dummyOnce sync.Once
	dummyHash string
}

// AuthDependencies encapsulates requirements for auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Hasher   *auth.PasswordHasher
	Tokens   *auth.TokenManager
	Logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:  deps.UserRepo,
		hasher: deps.Hasher,
		tokens: deps.Tokens,
		logger: logger,
	}
}

// SignIn verifies the credentials and issues an access token. Unknown email
// and wrong password both yield ErrUnauthorized.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (AccessToken, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return AccessToken{}, ErrUnauthorized
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Keep the response time of unknown accounts close to that of
			// known ones.
			s.hasher.Verify(password, s.timingHash())
			return AccessToken{}, ErrUnauthorized
		}
		return AccessToken{}, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Debug("sign-in rejected", zap.String("user_id", user.ID))
		return AccessToken{}, ErrUnauthorized
	}

	token, identity, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{AccessToken: token, ExpiresAt: identity.ExpiresAt}, nil
}

// SignUp creates an account and signs it in.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (AccessToken, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return AccessToken{}, ErrBadRequest
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return AccessToken{}, ErrBadRequest
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return AccessToken{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return AccessToken{}, ErrBadRequest
		}
		return AccessToken{}, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return AccessToken{}, ErrBadRequest
		}
		return AccessToken{}, err
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID))

	return s.SignIn(ctx, email, password)
}

func (s *AuthService) timingHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("timing-equalizer")
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
