package auth

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"carelink/database/seed"
	"carelink/models"
)

// Account is a login credential bound to a directory identity.
type Account struct {
	Email        string
	PasswordHash []byte
	Role         models.Role
	SubjectID    string
	Name         string
}

// AccountStore looks up and records credentials.
type AccountStore interface {
	// FindByEmail returns the account for email, matched case-insensitively,
	// or ErrAccountNotFound.
	FindByEmail(ctx context.Context, email string) (Account, error)
	// Reserve claims email for a registration in progress, or returns
	// ErrEmailTaken if an account or another reservation already holds it.
	Reserve(ctx context.Context, email string) error
	// Release drops a reservation that did not become an account.
	Release(ctx context.Context, email string)
	// Create records a new account, filling its reservation if one is held,
	// or returns ErrEmailTaken.
	Create(ctx context.Context, account Account) error
}

// MemoryAccounts is an AccountStore held in process memory.
type MemoryAccounts struct {
	mu       sync.RWMutex
	accounts map[string]Account
	reserved map[string]struct{}
}

// NewMemoryAccounts returns an empty store.
func NewMemoryAccounts() *MemoryAccounts {
	return &MemoryAccounts{accounts: make(map[string]Account), reserved: make(map[string]struct{})}
}

// SeedAccounts returns a store holding the demo accounts, hashed at cost.
func SeedAccounts(cost int) (*MemoryAccounts, error) {
	store := NewMemoryAccounts()
	for _, a := range seed.Accounts() {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), cost)
		if err != nil {
			return nil, err
		}
		store.accounts[normalizeEmail(a.Email)] = Account{
			Email:        a.Email,
			PasswordHash: hash,
			Role:         a.Role,
			SubjectID:    a.SubjectID,
			Name:         a.Name,
		}
	}
	return store, nil
}

func (m *MemoryAccounts) FindByEmail(_ context.Context, email string) (Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.accounts[normalizeEmail(email)]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return a, nil
}

func (m *MemoryAccounts) Reserve(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := normalizeEmail(email)
	if _, ok := m.accounts[key]; ok {
		return ErrEmailTaken
	}
	if _, ok := m.reserved[key]; ok {
		return ErrEmailTaken
	}
	m.reserved[key] = struct{}{}
	return nil
}

func (m *MemoryAccounts) Release(_ context.Context, email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reserved, normalizeEmail(email))
}

func (m *MemoryAccounts) Create(_ context.Context, account Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := normalizeEmail(account.Email)
	if _, ok := m.accounts[key]; ok {
		return ErrEmailTaken
	}
	delete(m.reserved, key)
	m.accounts[key] = account
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
