package seeder

import (
	"context"
	"errors"

	ucauth "resume-match/internal/usecase/auth"
)

const (
	DemoEmail    = "test@example.com"
	DemoPassword = "password123"
	DemoName     = "Test User"
)

// DemoAccountSeeder creates the demo login. An existing account is left as is.
type DemoAccountSeeder struct {
	Auth *ucauth.Service
}

func (DemoAccountSeeder) Name() string { return "demo_account" }

func (s DemoAccountSeeder) Run(ctx context.Context) error {
	_, err := s.Auth.Signup(ctx, ucauth.SignupInput{Email: DemoEmail, Password: DemoPassword, Name: DemoName})
	if errors.Is(err, ucauth.ErrEmailAlreadyRegistered) {
		return nil
	}
	return err
}
