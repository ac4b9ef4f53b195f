package usage

import (
	"context"
	"errors"
)

const DefaultLimit = 10

var (
	ErrQuotaExceeded = errors.New("usage quota exceeded")
	ErrEmptyUserID   = errors.New("empty user id")
)

// Counter tracks scoring calls per user. CheckAndIncrement either rejects the
// call with ErrQuotaExceeded and leaves the count untouched, or increments it
// and returns the new value. Implementations must make that step atomic.
type Counter interface {
	CheckAndIncrement(ctx context.Context, userID string) (int, error)
	Count(ctx context.Context, userID string) (int, error)
	Limit() int
}
