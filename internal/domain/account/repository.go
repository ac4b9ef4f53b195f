package account

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("account not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Repository stores accounts keyed by normalized email. Create must fail
// with ErrDuplicateEmail when the email is taken.
type Repository interface {
	Create(ctx context.Context, a Account) error
	GetByEmail(ctx context.Context, email string) (Account, error)
}
