package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shopkit/shop-service/internal/auth"
	"github.com/shopkit/shop-service/internal/config"
	"github.com/shopkit/shop-service/internal/domain"
	"github.com/shopkit/shop-service/internal/events"
	"github.com/shopkit/shop-service/internal/repository"
	"github.com/shopkit/shop-service/internal/validation"
	apperrors "github.com/shopkit/shop-service/pkg/util/errorutil"
)

var passwordTooLongMessage = fmt.Sprintf(`"password" length must be less than or equal to %d bytes`, auth.MaxPasswordBytes)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	hasher     *auth.PasswordHasher
	validator  *validation.Validator
	logger     *zap.Logger

	dummyOnce sync.Once
	dummyHash string
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Firstname string `json:"firstname" validate:"required"`
	Lastname  string `json:"lastname" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
}

// LoginInput is the login payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL()),
		hasher:     auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		validator:  validation.New(),
		logger:     logger,
	}
}

// Register creates a new user account. The store's unique constraint on
// email is authoritative; the lookup beforehand only avoids hashing for
// obvious duplicates.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Password = strings.TrimSpace(in.Password)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperrors.NewDuplicateEmail()
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, apperrors.NewValidationError(passwordTooLongMessage)
		}
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Firstname:    in.Firstname,
		Lastname:     in.Lastname,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewDuplicateEmail()
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	s.publish(ctx, events.Event{
		Type:        events.EventUserRegistered,
		AggregateID: user.ID,
		Payload: events.UserRegisteredPayload{
			Email:     user.Email,
			Firstname: user.Firstname,
			Lastname:  user.Lastname,
		},
	})
	return user, nil
}

// Login authenticates a user and issues a signed token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	in.Password = strings.TrimSpace(in.Password)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Spend the same bcrypt work as a real comparison.
			s.hasher.Verify(s.dummyPasswordHash(), in.Password)
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, apperrors.NewInternalError(err)
	}
	if !s.hasher.Verify(user.PasswordHash, in.Password) {
		return nil, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{User: user, Token: token, ExpiresAt: exp}, nil
}

// ListUsers returns every registered user.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return users, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) dummyPasswordHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("invalid-password-placeholder")
		if err != nil {
			s.logger.Warn("failed to prepare dummy hash", zap.Error(err))
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
