package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"resume-match/internal/domain/account"
)

type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]account.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]account.Account)}
}

func (r *AccountRepository) Create(_ context.Context, a account.Account) error {
	email := account.NormalizeEmail(a.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[email]; exists {
		return account.ErrDuplicateEmail
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	a.Email = email
	r.accounts[email] = a
	return nil
}

func (r *AccountRepository) GetByEmail(_ context.Context, email string) (account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[account.NormalizeEmail(email)]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}
	return a, nil
}
