package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"resume-match/internal/database"
	pgdb "resume-match/internal/database/postgres"
	"resume-match/internal/domain/account"
)

type AccountRepository struct {
	db database.DB
}

func NewAccountRepository(db database.DB) (*AccountRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("nil db")
	}
	return &AccountRepository{db: db}, nil
}

func (r *AccountRepository) Create(ctx context.Context, a account.Account) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(
		ctx,
		`INSERT INTO accounts (id, email, password_hash, display_name, created_at) VALUES ($1, $2, $3, $4, $5)`,
		a.ID,
		account.NormalizeEmail(a.Email),
		a.PasswordHash,
		a.Name(),
		a.CreatedAt,
	)
	if pgdb.IsUniqueViolation(err) {
		return account.ErrDuplicateEmail
	}
	return err
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (account.Account, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT id, email, password_hash, display_name, created_at FROM accounts WHERE email = $1`,
		account.NormalizeEmail(email),
	)
	return scanAccount(row)
}

func scanAccount(row database.Row) (account.Account, error) {
	var a account.Account
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.DisplayName, &a.CreatedAt); err != nil {
		if pgdb.IsNoRows(err) {
			return account.Account{}, account.ErrNotFound
		}
		return account.Account{}, err
	}
	return a, nil
}
