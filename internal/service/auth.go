package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/Thatkidtk/packtrack-pro/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles user registration and credential verification.
type AuthService struct {
	users      domain.UserRepository
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, bcryptCost int) *AuthService {
	return &AuthService{users: users, bcryptCost: bcryptCost}
}

// Register creates a new user account after validating inputs. The email is
// case-folded so lookups and the uniqueness constraint are case-insensitive.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 100 {
		return nil, fmt.Errorf("%w: name must be 2-100 characters", domain.ErrInvalidInput)
	}

	email, err := normalizeEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%w: valid email required", domain.ErrInvalidInput)
	}

	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns the matching user. Unknown emails
// and wrong passwords both map to ErrUnauthorized so the two cases cannot
// be told apart.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// SeedDemo creates the demo account if it does not exist yet. Idempotent.
func (s *AuthService) SeedDemo(ctx context.Context) error {
	_, err := s.Register(ctx, "Demo User", "demo@packtrack.com", "demo123")
	if errors.Is(err, domain.ErrDuplicateEmail) {
		return nil
	}
	return err
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return "", fmt.Errorf("parse email: %w", err)
	}
	if addr.Address != email {
		return "", errors.New("email must be a bare address")
	}
	return strings.ToLower(email), nil
}
