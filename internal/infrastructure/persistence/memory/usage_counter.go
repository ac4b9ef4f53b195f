package memory

import (
	"context"
	"strings"
	"sync"

	"resume-match/internal/domain/usage"
)

type UsageCounter struct {
	mu     sync.Mutex
	limit  int
	counts map[string]int
}

func NewUsageCounter(limit int) *UsageCounter {
	return &UsageCounter{limit: limit, counts: make(map[string]int)}
}

func (c *UsageCounter) CheckAndIncrement(_ context.Context, userID string) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, usage.ErrEmptyUserID
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.counts[userID]
	if n >= c.limit {
		return n, usage.ErrQuotaExceeded
	}
	n++
	c.counts[userID] = n
	return n, nil
}

func (c *UsageCounter) Count(_ context.Context, userID string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[strings.TrimSpace(userID)], nil
}

func (c *UsageCounter) Limit() int {
	return c.limit
}
