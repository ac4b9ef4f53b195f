package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"resume-match/internal/domain/account"
)

type fakeAccounts struct {
	byEmail map[string]account.Account
	getErr  error
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byEmail: map[string]account.Account{}}
}

func (f *fakeAccounts) Create(_ context.Context, a account.Account) error {
	if _, ok := f.byEmail[a.Email]; ok {
		return account.ErrDuplicateEmail
	}
	f.byEmail[a.Email] = a
	return nil
}

func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (account.Account, error) {
	if f.getErr != nil {
		return account.Account{}, f.getErr
	}
	a, ok := f.byEmail[email]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}
	return a, nil
}

func TestSignup_HashesAndNormalizes(t *testing.T) {
	repo := newFakeAccounts()
	svc := NewService(repo, bcrypt.MinCost)

	a, err := svc.Signup(context.Background(), SignupInput{Email: "  New@Example.com ", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", a.Email)
	assert.Equal(t, account.DefaultDisplayName, a.DisplayName)
	assert.Empty(t, a.PasswordHash)

	stored := repo.byEmail["new@example.com"]
	assert.NotEqual(t, "pw", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw")))
}

func TestSignup_DuplicateAndInvalid(t *testing.T) {
	svc := NewService(newFakeAccounts(), bcrypt.MinCost)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Email: "a@example.com", Password: "pw", Name: "Ann"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, SignupInput{Email: "A@example.com", Password: "other"})
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)

	_, err = svc.Signup(ctx, SignupInput{Email: " ", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Signup(ctx, SignupInput{Email: "b@example.com"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	svc := NewService(newFakeAccounts(), bcrypt.MinCost)
	ctx := context.Background()
	_, err := svc.Signup(ctx, SignupInput{Email: "a@example.com", Password: "right", Name: "Ann"})
	require.NoError(t, err)

	a, err := svc.Login(ctx, LoginInput{Email: "A@EXAMPLE.COM", Password: "right"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", a.DisplayName)
	assert.Empty(t, a.PasswordHash)

	_, err = svc.Login(ctx, LoginInput{Email: "a@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "right"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_RepositoryFailure(t *testing.T) {
	repo := newFakeAccounts()
	repo.getErr = errors.New("connection reset")
	svc := NewService(repo, bcrypt.MinCost)

	_, err := svc.Login(context.Background(), LoginInput{Email: "a@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrInternal)
}
