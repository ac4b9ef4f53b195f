package cache

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"resume-match/internal/domain/usage"
)

// checkAndIncr returns {allowed, count}. The compare and the INCR run inside
// one script so concurrent callers cannot both pass the limit check.
var checkAndIncr = redis.NewScript(`
local n = tonumber(redis.call('GET', KEYS[1]) or '0')
local limit = tonumber(ARGV[1])
if n >= limit then
	return {0, n}
end
return {1, redis.call('INCR', KEYS[1])}
`)

type UsageCounter struct {
	r     *Redis
	limit int
}

func NewUsageCounter(r *Redis, limit int) *UsageCounter {
	return &UsageCounter{r: r, limit: limit}
}

func usageKey(userID string) string {
	return "usage:" + userID
}

func (c *UsageCounter) CheckAndIncrement(ctx context.Context, userID string) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, usage.ErrEmptyUserID
	}
	if !c.r.Available() {
		return 0, ErrUnavailable
	}

	res, err := checkAndIncr.Run(ctx, c.r.client, []string{usageKey(userID)}, c.limit).Int64Slice()
	if err != nil {
		c.r.warnUnavailableOnce(err)
		return 0, err
	}
	if len(res) != 2 {
		return 0, fmt.Errorf("usage script: unexpected reply %v", res)
	}
	if res[0] == 0 {
		return int(res[1]), usage.ErrQuotaExceeded
	}
	return int(res[1]), nil
}

func (c *UsageCounter) Count(ctx context.Context, userID string) (int, error) {
	if !c.r.Available() {
		return 0, ErrUnavailable
	}
	n, err := c.r.client.Get(ctx, usageKey(strings.TrimSpace(userID))).Int()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}

func (c *UsageCounter) Limit() int {
	return c.limit
}
