package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"resume-match/internal/domain/account"
	"resume-match/internal/domain/usage"
	"resume-match/internal/pkg/jwt"
	ucauth "resume-match/internal/usecase/auth"
)

var (
	ErrNotLoggedIn = errors.New("not logged in")
	ErrInternal    = errors.New("internal error")
)

// Session is what a successful signup or login hands back to the transport.
type Session struct {
	Account   account.Account
	Token     string
	ExpiresAt time.Time
}

type AuthUsecase interface {
	Signup(ctx context.Context, in ucauth.SignupInput) (Session, error)
	Login(ctx context.Context, in ucauth.LoginInput) (Session, error)
	CurrentUser(ctx context.Context, token string) (account.Account, error)
}

type Auth struct {
	authSvc *ucauth.Service
	jwt     jwt.Service
	usage   usage.Counter
}

func NewAuthUsecase(authSvc *ucauth.Service, jwtSvc jwt.Service, counter usage.Counter) *Auth {
	return &Auth{authSvc: authSvc, jwt: jwtSvc, usage: counter}
}

func (u *Auth) Signup(ctx context.Context, in ucauth.SignupInput) (Session, error) {
	a, err := u.authSvc.Signup(ctx, in)
	if err != nil {
		return Session{}, err
	}
	return u.issue(a)
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (Session, error) {
	a, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return Session{}, err
	}
	return u.issue(a)
}

// CurrentUser resolves a session token to its account and fills in the
// account's usage against the scoring quota.
func (u *Auth) CurrentUser(ctx context.Context, token string) (account.Account, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return account.Account{}, ErrNotLoggedIn
	}

	claims, err := u.jwt.ValidateToken(token)
	if err != nil {
		return account.Account{}, ErrNotLoggedIn
	}

	a, err := u.authSvc.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return account.Account{}, ErrNotLoggedIn
		}
		return account.Account{}, ErrInternal
	}

	if u.usage != nil {
		n, err := u.usage.Count(ctx, a.Email)
		if err != nil {
			return account.Account{}, ErrInternal
		}
		a.CallCount = n
		a.CallLimit = u.usage.Limit()
	}
	return a, nil
}

func (u *Auth) issue(a account.Account) (Session, error) {
	token, exp, err := u.jwt.GenerateSessionToken(a.ID, a.Email)
	if err != nil {
		return Session{}, ErrInternal
	}
	return Session{Account: a, Token: token, ExpiresAt: exp}, nil
}
