package auth

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/Harshit1991/gymbooking/internal/cache"
	"github.com/Harshit1991/gymbooking/internal/domain"
	"github.com/Harshit1991/gymbooking/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*cache.Session, error)
	UpdatePassword(ctx context.Context, input UpdatePasswordInput) error
}

// SessionStore is the opaque identity carrier behind the admin gate.
type SessionStore interface {
	Create(ctx context.Context, session cache.Session) (string, error)
	Get(ctx context.Context, token string) (*cache.Session, error)
	Delete(ctx context.Context, token string) error
}

type AuthService struct {
	users    repository.UserRepository
	sessions SessionStore
}

type UpdatePasswordInput struct {
	Email           string
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

var (
	ErrEmailNotFound    = errors.New("email not found")
	ErrWrongPassword    = errors.New("current password is incorrect")
	ErrPasswordMismatch = errors.New("new passwords do not match")
)

func NewAuthService(users repository.UserRepository, sessions SessionStore) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// Login compares the bcrypt hash and hands out an opaque session token. The
// error is identical for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, cache.Session{UserID: user.ID, Email: user.Email})
	if err != nil {
		return "", err
	}
	log.Printf("admin %s logged in", user.Email)
	return token, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// Authenticate resolves a session token; nil session means not logged in.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*cache.Session, error) {
	if token == "" {
		return nil, nil
	}
	return s.sessions.Get(ctx, token)
}

func (s *AuthService) UpdatePassword(ctx context.Context, input UpdatePasswordInput) error {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrEmailNotFound
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strings.TrimSpace(input.CurrentPassword))) != nil {
		return ErrWrongPassword
	}
	if input.NewPassword != input.ConfirmPassword {
		return ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(input.NewPassword)), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, string(hash))
}

var _ AuthUseCase = (*AuthService)(nil)
