package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/studytrack/task-system/internal/core/domain"
	"github.com/studytrack/task-system/internal/core/ports"
)

// LoginLimiter throttles login attempts per email (Redis-backed).
type LoginLimiter interface {
	Allow(ctx context.Context, email string) (bool, error)
}

// AuthService implements registration, login, and user listing.
type AuthService struct {
	repo     ports.UserRepository
	tokens   ports.TokenService
	limiter  LoginLimiter
	activity ports.ActivityRecorder
	logger   zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, limiter LoginLimiter, activity ports.ActivityRecorder, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, limiter: limiter, activity: activity, logger: logger}
}

// Register creates an account and logs the caller in. The role is always
// "user": clients cannot grant themselves admin at signup. The password is
// hashed exactly once, here; repositories only ever see the hash.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (string, *domain.User, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if username == "" || email == "" || password == "" {
		return "", nil, domain.ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	s.record(domain.Activity{UserID: created.ID, Action: "registered", Resource: "user", ResourceID: created.ID})

	return token, created, nil
}

// Login verifies email + password and issues a token. Unknown email and
// wrong password return the same error so callers cannot probe for
// registered addresses.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, email)
		if err != nil {
			// Limiter outage must not lock everyone out.
			s.logger.Warn().Err(err).Msg("login limiter unavailable, allowing attempt")
		} else if !allowed {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *AuthService) record(entry domain.Activity) {
	if s.activity != nil {
		s.activity.Record(entry)
	}
}

// normalizeEmail lowercases and trims so lookups and the unique index see
// one canonical form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
