package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rogerio-castellano/inventory-billing/internal/models"
	"github.com/rogerio-castellano/inventory-billing/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid-credentials")
	ErrInvalidRole        = errors.New("invalid-role")
	ErrUserExists         = errors.New("user already exists")
)

// NormalizeEmail is the form under which emails are stored and looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

type Service struct {
	users repo.UserRepository
}

func NewService(users repo.UserRepository) *Service {
	return &Service{users: users}
}

// Authenticate checks the password and then the role the user logs in
// with, and returns a signed token for the stored user.
func (s *Service) Authenticate(ctx context.Context, email, password, role string) (string, models.User, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return "", models.User{}, ErrInvalidCredentials
		}
		return "", models.User{}, fmt.Errorf("s.users.GetByEmail -> %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", models.User{}, ErrInvalidCredentials
	}
	if user.Role != role {
		return "", models.User{}, ErrInvalidRole
	}

	token, err := GenerateToken(user)
	if err != nil {
		return "", models.User{}, fmt.Errorf("could not generate token: %w", err)
	}
	return token, user, nil
}

// Register creates a user with the "user" role and returns its token.
func (s *Service) Register(ctx context.Context, name, email, password string) (string, models.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return "", models.User{}, err
	}

	user, err := s.users.Create(ctx, models.User{
		Email:        NormalizeEmail(email),
		Name:         name,
		PasswordHash: hash,
		Role:         models.RoleUser,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			return "", models.User{}, ErrUserExists
		}
		return "", models.User{}, fmt.Errorf("s.users.Create -> %w", err)
	}

	token, err := GenerateToken(user)
	if err != nil {
		return "", models.User{}, fmt.Errorf("could not generate token: %w", err)
	}
	return token, user, nil
}

// EnsureAdmin creates the bootstrap admin when it does not exist yet.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return false, nil
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, repo.ErrUserNotFound) {
		return false, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	_, err = s.users.Create(ctx, models.User{Email: email, Name: "Administrator", PasswordHash: hash, Role: models.RoleAdmin})
	if errors.Is(err, repo.ErrDuplicatedValueUnique) {
		return false, nil
	}
	return err == nil, err
}
