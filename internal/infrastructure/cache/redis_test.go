package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match/internal/config"
	"resume-match/internal/domain/batch"
	"resume-match/internal/domain/usage"
	"resume-match/internal/pkg/logging"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	r := NewRedis(config.RedisConfig{Host: mr.Host(), Port: mr.Port(), TTL: time.Minute}, logging.Nop())
	require.True(t, r.Available())
	t.Cleanup(func() { _ = r.Close() })
	return r, mr
}

func TestNewRedis_UnreachableServer(t *testing.T) {
	r := NewRedis(config.RedisConfig{Host: "127.0.0.1", Port: "1"}, logging.Nop())
	assert.False(t, r.Available())
	assert.ErrorIs(t, r.Ping(context.Background()), ErrUnavailable)

	var out map[string]any
	ok, err := r.GetJSON(context.Background(), "k", &out)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = NewUsageCounter(r, 10).CheckAndIncrement(context.Background(), "a@example.com")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestUsageCounter_Redis(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()
	c := NewUsageCounter(r, 10)

	for i := 1; i <= 10; i++ {
		n, err := c.CheckAndIncrement(ctx, "new@example.com")
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	n, err := c.CheckAndIncrement(ctx, "new@example.com")
	assert.ErrorIs(t, err, usage.ErrQuotaExceeded)
	assert.Equal(t, 10, n)

	got, err := mr.Get("usage:new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "10", got)

	count, err := c.Count(ctx, "other@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestUsageCounter_RedisConcurrent(t *testing.T) {
	r, _ := newTestRedis(t)
	ctx := context.Background()
	c := NewUsageCounter(r, 5)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.CheckAndIncrement(ctx, "race@example.com"); err == nil {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, granted)
}

func TestBatchRepository_Redis(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()
	repo := NewBatchRepository(r, time.Minute)

	b := batch.Batch{
		ID:   uuid.New(),
		Rows: []batch.Row{{FileName: "a.pdf", Score: 66.67, MatchedSkills: []string{"aws", "python"}, MissingSkills: []string{"kubernetes"}}},
	}
	require.NoError(t, repo.Save(ctx, b))

	got, err := repo.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Rows, got.Rows)

	mr.FastForward(2 * time.Minute)
	_, err = repo.Get(ctx, b.ID)
	assert.ErrorIs(t, err, batch.ErrNotFound)
}
