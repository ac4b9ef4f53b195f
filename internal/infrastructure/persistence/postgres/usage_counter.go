package postgres

import (
	"context"
	"fmt"
	"strings"

	"resume-match/internal/database"
	pgdb "resume-match/internal/database/postgres"
	"resume-match/internal/domain/usage"
)

type UsageCounter struct {
	db    database.DB
	limit int
}

func NewUsageCounter(db database.DB, limit int) (*UsageCounter, error) {
	if db == nil {
		return nil, fmt.Errorf("nil db")
	}
	return &UsageCounter{db: db, limit: limit}, nil
}

// CheckAndIncrement relies on a conditional upsert: the row is only touched
// while count is below the limit, so no RETURNING row means the quota is spent.
func (c *UsageCounter) CheckAndIncrement(ctx context.Context, userID string) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, usage.ErrEmptyUserID
	}
	if c.limit <= 0 {
		return 0, usage.ErrQuotaExceeded
	}

	var n int
	err := c.db.QueryRow(
		ctx,
		`INSERT INTO usage_counts (user_id, count, updated_at) VALUES ($1, 1, now())
ON CONFLICT (user_id) DO UPDATE SET count = usage_counts.count + 1, updated_at = now()
WHERE usage_counts.count < $2
RETURNING count`,
		userID,
		c.limit,
	).Scan(&n)
	if pgdb.IsNoRows(err) {
		current, cerr := c.Count(ctx, userID)
		if cerr != nil {
			return 0, usage.ErrQuotaExceeded
		}
		return current, usage.ErrQuotaExceeded
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (c *UsageCounter) Count(ctx context.Context, userID string) (int, error) {
	var n int
	err := c.db.QueryRow(ctx, `SELECT count FROM usage_counts WHERE user_id = $1`, strings.TrimSpace(userID)).Scan(&n)
	if pgdb.IsNoRows(err) {
		return 0, nil
	}
	return n, err
}

func (c *UsageCounter) Limit() int {
	return c.limit
}
