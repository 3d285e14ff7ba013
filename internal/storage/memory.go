package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cloudapi/internal/models"
)

var (
	ErrUsernameTaken = errors.New("username already registered")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUserNotFound  = errors.New("user not found")
)

type Storage interface {
	Create(ctx context.Context, account models.Account) error
	Get(ctx context.Context, username string) (models.Account, error)
	ExistsByEmail(ctx context.Context, email string) bool
}

// MemoryStorage keeps accounts in process memory only; contents are lost on
// restart. A single mutex covers the whole check-and-insert in Create so two
// concurrent registrations cannot both pass the uniqueness checks.
type MemoryStorage struct {
	mu       sync.RWMutex
	accounts map[string]models.Account
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		accounts: make(map[string]models.Account),
	}
}

func (m *MemoryStorage) Create(ctx context.Context, account models.Account) error {
	const op = "storage.Create"

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[account.Username]; ok {
		return fmt.Errorf("%s: %w", op, ErrUsernameTaken)
	}

	// linear scan is fine at this scale; swap in an email index if it grows
	for _, existing := range m.accounts {
		if existing.Email == account.Email {
			return fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
	}

	m.accounts[account.Username] = account

	return nil
}

func (m *MemoryStorage) Get(ctx context.Context, username string) (models.Account, error) {
	const op = "storage.Get"

	m.mu.RLock()
	defer m.mu.RUnlock()

	account, ok := m.accounts[username]
	if !ok {
		return models.Account{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}

	return account, nil
}

func (m *MemoryStorage) ExistsByEmail(ctx context.Context, email string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, account := range m.accounts {
		if account.Email == email {
			return true
		}
	}

	return false
}
