package account

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultDisplayName = "User"

type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"name"`
	CallCount    int       `json:"calls_made"`
	CallLimit    int       `json:"call_limit"`
	CreatedAt    time.Time `json:"created_at"`
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a Account) Name() string {
	if strings.TrimSpace(a.DisplayName) == "" {
		return DefaultDisplayName
	}
	return a.DisplayName
}
