package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fintrack/ledger-api/internal/domain"
	"github.com/fintrack/ledger-api/internal/service/auth"
	"github.com/fintrack/ledger-api/internal/store"
)

// UserService provides user registration and authentication.
type UserService interface {
	// Register validates email uniqueness, hashes the password and
	// persists the user. Returns ErrEmailRegistered when the email is
	// already taken, without persisting anything.
	Register(ctx context.Context, name, email, password string) (*domain.User, error)

	// ValidateEmailUnique returns ErrEmailRegistered when a user with
	// the given email already exists, and nil otherwise.
	ValidateEmailUnique(ctx context.Context, email string) error

	// Authenticate verifies the credentials against the stored user.
	// Returns auth.ErrUserNotFound when no user matches the email and
	// auth.ErrInvalidCredential when the password does not match.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetByID retrieves a user by ID. Returns store.ErrUserNotFound when
	// absent; absence is a normal outcome for callers checking ownership.
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type userService struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	logger    *slog.Logger
}

// NewUserService creates a UserService backed by the given store. The
// hasher and verifier are normally the same bcrypt implementation.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	log *slog.Logger,
) UserService {
	if log == nil {
		log = slog.Default()
	}
	return &userService{
		userStore: userStore,
		hasher:    hasher,
		verifier:  verifier,
		logger:    log.With("component", "user_service"),
	}
}

// Register implements UserService.Register.
func (s *userService) Register(
	ctx context.Context,
	name, email, password string,
) (*domain.User, error) {
	if err := s.ValidateEmailUnique(ctx, email); err != nil {
		return nil, err
	}

	user, err := domain.NewUser(name, email, password)
	if err != nil {
		s.logger.Debug("user validation failed during registration",
			"error", err)
		return nil, err
	}

	user.HashedPassword, err = s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = ""

	if err := s.userStore.Create(ctx, user); err != nil {
		// A concurrent registration may slip past the uniqueness check;
		// the unique index turns it into the same business error.
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("email taken concurrently during registration")
			return nil, ErrEmailRegistered
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// ValidateEmailUnique implements UserService.ValidateEmailUnique.
func (s *userService) ValidateEmailUnique(ctx context.Context, email string) error {
	exists, err := s.userStore.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return ErrEmailRegistered
	}
	return nil
}

// Authenticate implements UserService.Authenticate.
func (s *userService) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("authentication failed: unknown email")
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("authentication failed: password mismatch",
			"user_id", user.ID)
		return nil, auth.ErrInvalidCredential
	}

	return user, nil
}

// GetByID implements UserService.GetByID.
func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}
