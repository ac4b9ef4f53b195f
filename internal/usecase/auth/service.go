package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"resume-match/internal/domain/account"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type SignupInput struct {
	Email    string
	Password string
	Name     string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	accounts account.Repository
	cost     int
}

func NewService(accounts account.Repository, cost int) *Service {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{accounts: accounts, cost: cost}
}

func (s *Service) Signup(ctx context.Context, in SignupInput) (account.Account, error) {
	email := account.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return account.Account{}, ErrInvalidInput
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return account.Account{}, ErrEmailAlreadyRegistered
	} else if !errors.Is(err, account.ErrNotFound) {
		return account.Account{}, ErrInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return account.Account{}, ErrInternal
	}

	a := account.Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(in.Name),
	}
	a.DisplayName = a.Name()

	if err := s.accounts.Create(ctx, a); err != nil {
		if errors.Is(err, account.ErrDuplicateEmail) {
			return account.Account{}, ErrEmailAlreadyRegistered
		}
		return account.Account{}, ErrInternal
	}

	return sanitizeAccount(a), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (account.Account, error) {
	email := account.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return account.Account{}, ErrInvalidCredentials
	}

	a, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return account.Account{}, ErrInvalidCredentials
		}
		return account.Account{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(in.Password)); err != nil {
		return account.Account{}, ErrInvalidCredentials
	}

	return sanitizeAccount(a), nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (account.Account, error) {
	a, err := s.accounts.GetByEmail(ctx, account.NormalizeEmail(email))
	if err != nil {
		return account.Account{}, err
	}
	return sanitizeAccount(a), nil
}

func sanitizeAccount(a account.Account) account.Account {
	a.PasswordHash = ""
	return a
}
