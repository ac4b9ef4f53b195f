package cache

import (
	"context"
	"time"

	"github.com/google/uuid"

	"resume-match/internal/domain/batch"
)

type BatchRepository struct {
	r   *Redis
	ttl time.Duration
}

func NewBatchRepository(r *Redis, ttl time.Duration) *BatchRepository {
	return &BatchRepository{r: r, ttl: ttl}
}

func batchKey(id uuid.UUID) string {
	return "batch:" + id.String()
}

func (b *BatchRepository) Save(ctx context.Context, bt batch.Batch) error {
	return b.r.SetJSON(ctx, batchKey(bt.ID), bt, b.ttl)
}

func (b *BatchRepository) Get(ctx context.Context, id uuid.UUID) (batch.Batch, error) {
	var out batch.Batch
	ok, err := b.r.GetJSON(ctx, batchKey(id), &out)
	if err != nil {
		return batch.Batch{}, err
	}
	if !ok {
		return batch.Batch{}, batch.ErrNotFound
	}
	return out, nil
}
