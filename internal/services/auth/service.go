package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gamehub/gamehub-go/internal/dependencies/clock"
	"github.com/gamehub/gamehub-go/internal/dependencies/ids"
	"github.com/gamehub/gamehub-go/internal/model"
	"github.com/gamehub/gamehub-go/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already registered")
)

// Service handles the credential lifecycle and session resolution.
//
// A session token is the user's ID. The server keeps no session table, so
// resolving a token is a lookup of the user record by ID.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	ids     ids.Generator
	logger  *slog.Logger

	sessionMaxAge time.Duration
	passwordCost  int

	// compareHash is bcrypt.CompareHashAndPassword outside tests
	compareHash func(hash, password []byte) error

	// dummyHash is compared against on unknown emails so both login
	// failures cost one bcrypt comparison
	dummyHashOnce sync.Once
	dummyHash     []byte
}

// Config holds configuration for the auth service
type Config struct {
	// SessionMaxAge is how long clients keep the session cookie
	SessionMaxAge time.Duration
	// PasswordCost is the bcrypt cost factor
	PasswordCost int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionMaxAge: 7 * 24 * time.Hour,
		PasswordCost:  bcrypt.DefaultCost,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, ids ids.Generator, cfg Config, logger *slog.Logger) *Service {
	defaults := DefaultConfig()
	if cfg.SessionMaxAge == 0 {
		cfg.SessionMaxAge = defaults.SessionMaxAge
	}
	if cfg.PasswordCost == 0 {
		cfg.PasswordCost = defaults.PasswordCost
	}
	return &Service{
		storage:       storage,
		clock:         clock,
		ids:           ids,
		logger:        logger,
		sessionMaxAge: cfg.SessionMaxAge,
		passwordCost:  cfg.PasswordCost,
		compareHash:   bcrypt.CompareHashAndPassword,
	}
}

// SessionMaxAge returns how long an issued session cookie should live
func (s *Service) SessionMaxAge() time.Duration {
	return s.sessionMaxAge
}

// Signup creates a user account.
// An empty username defaults to the local part of the email.
func (s *Service) Signup(ctx context.Context, username, email, password string) (*model.User, error) {
	// Check if email exists
	_, err := s.storage.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	// Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.passwordCost)
	if err != nil {
		return nil, err
	}

	if username == "" {
		username = defaultUsername(email)
	}

	user := &model.User{
		ID:           model.UserID(s.ids.NewID()),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now().UTC(),
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		// Lost a race with a concurrent signup for the same email
		if errors.Is(err, model.ErrDuplicateEmail) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	s.logger.Info("user signed up",
		slog.String("user_id", string(user.ID)),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Login verifies credentials and returns the matching user.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			_ = s.compareHash(s.unknownUserHash(), []byte(password))
			s.logger.Info("login failed", slog.String("reason", "unknown email"))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.compareHash([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("login failed",
			slog.String("reason", "password mismatch"),
			slog.String("user_id", string(user.ID)),
		)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("user logged in", slog.String("user_id", string(user.ID)))

	return user, nil
}

// Resolve returns the user a session token refers to.
// An empty or unknown token resolves to nil without error; only a storage
// failure is returned as an error. Empty tokens never reach storage.
func (s *Service) Resolve(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, nil
	}

	user, err := s.storage.GetUser(ctx, model.UserID(token))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

// unknownUserHash returns a hash at the service's cost that no password is expected to match
func (s *Service) unknownUserHash() []byte {
	s.dummyHashOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("gamehub-unknown-user"), s.passwordCost)
		if err != nil {
			// Only fails for an invalid cost, which Signup would hit first
			s.logger.Error("failed to build dummy password hash", slog.Any("error", err))
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func defaultUsername(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return email
	}
	return local
}
