package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akachour/wird/internal/core/domain"
	"github.com/akachour/wird/internal/core/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	AdminUsername = "admin"
	// DefaultAdminPassword is the documented password the seeded admin
	// account starts with. Change it immediately after first boot.
	DefaultAdminPassword = "admin123"
	BcryptCost           = 10
)

// AccountService owns user records and credential verification.
type AccountService struct {
	userRepo repository.UserRepository
}

func NewAccountService(userRepo repository.UserRepository) *AccountService {
	return &AccountService{userRepo: userRepo}
}

// HashPassword hashes a password using bcrypt
func (s *AccountService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a hash
func (s *AccountService) VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CreateUser registers a new non-admin user with a hashed password.
func (s *AccountService) CreateUser(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := domain.NewUser(username, hashedPassword)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUsername, username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// VerifyCredentials checks a username/password pair. A non-matching pair is
// an expected outcome, not a fault: it returns (nil, false, nil). The error
// is non-nil only for storage faults.
func (s *AccountService) VerifyCredentials(ctx context.Context, username, password string) (*domain.User, bool, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to verify credentials: %w", err)
	}

	if !s.VerifyPassword(password, user.Password) {
		return nil, false, nil
	}

	return user, true, nil
}

// ChangePassword replaces a user's password after verifying the current one.
func (s *AccountService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", ErrInvalidInput)
	}

	user, ok, err := s.VerifyCredentials(ctx, username, oldPassword)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCredentials
	}

	hashedPassword, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	user.UpdatedAt = time.Now()
	if err := s.userRepo.UpdatePassword(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// Bootstrap seeds the default administrator account if it does not exist.
// It runs at every process start and is a no-op once the admin exists.
func (s *AccountService) Bootstrap(ctx context.Context) error {
	_, err := s.userRepo.FindByUsername(ctx, AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	hashedPassword, err := s.HashPassword(DefaultAdminPassword)
	if err != nil {
		return err
	}

	admin := domain.NewAdminUser(AdminUsername, hashedPassword)
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	return nil
}
