package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloudapi/internal/auth"
	"cloudapi/internal/models"
	"cloudapi/internal/storage"
)

var (
	// ErrAccountExists covers both username and email collisions so the
	// response does not reveal which field collided.
	ErrAccountExists = errors.New("username or email already registered")

	// ErrInvalidCredentials is returned for an unknown username and for a
	// wrong password alike.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	ErrInvalidToken = errors.New("invalid or expired token")
)

type TokenManager interface {
	Issue(subject string, ttl time.Duration) (string, error)
	Verify(tokenString string) (string, error)
}

type Service interface {
	Register(ctx context.Context, username, email, password, fullName string) (models.PublicProfile, error)
	Login(ctx context.Context, username, password string) (string, error)
	CurrentUser(ctx context.Context, tokenString string) (models.PublicProfile, error)
}

type service struct {
	storage  storage.Storage
	tokens   TokenManager
	tokenTTL time.Duration
}

func NewService(st storage.Storage, tm TokenManager, tokenTTL time.Duration) *service {
	return &service{
		storage:  st,
		tokens:   tm,
		tokenTTL: tokenTTL,
	}
}

func (s *service) Register(ctx context.Context, username, email, password, fullName string) (models.PublicProfile, error) {
	const op = "service.Register"

	// hash first: bcrypt is slow and must not run under the store's lock
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return models.PublicProfile{}, fmt.Errorf("%s: %w", op, err)
	}

	account := models.Account{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
	}

	if err := s.storage.Create(ctx, account); err != nil {
		if errors.Is(err, storage.ErrUsernameTaken) || errors.Is(err, storage.ErrEmailTaken) {
			return models.PublicProfile{}, fmt.Errorf("%s: %w", op, ErrAccountExists)
		}
		return models.PublicProfile{}, fmt.Errorf("%s: %w", op, err)
	}

	return account.Profile(), nil
}

func (s *service) Login(ctx context.Context, username, password string) (string, error) {
	const op = "service.Login"

	account, err := s.storage.Get(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if ok := auth.CheckPasswordHash(account.PasswordHash, password); !ok {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.tokens.Issue(account.Username, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return token, nil
}

func (s *service) CurrentUser(ctx context.Context, tokenString string) (models.PublicProfile, error) {
	const op = "service.CurrentUser"

	username, err := s.tokens.Verify(tokenString)
	if err != nil {
		return models.PublicProfile{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	account, err := s.storage.Get(ctx, username)
	if err != nil {
		// token names an account that no longer exists
		return models.PublicProfile{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return account.Profile(), nil
}
