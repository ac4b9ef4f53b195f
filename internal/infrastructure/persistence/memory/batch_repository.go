package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"resume-match/internal/domain/batch"
)

// BatchRepository keeps scored batches for ttl after they are saved. Expired
// entries are dropped lazily on Save and Get.
type BatchRepository struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	batches map[uuid.UUID]batchEntry
}

type batchEntry struct {
	batch     batch.Batch
	expiresAt time.Time
}

func NewBatchRepository(ttl time.Duration) *BatchRepository {
	return &BatchRepository{
		ttl:     ttl,
		now:     time.Now,
		batches: make(map[uuid.UUID]batchEntry),
	}
}

func (r *BatchRepository) Save(_ context.Context, b batch.Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.evictLocked(now)

	entry := batchEntry{batch: cloneBatch(b)}
	if r.ttl > 0 {
		entry.expiresAt = now.Add(r.ttl)
	}
	r.batches[b.ID] = entry
	return nil
}

func (r *BatchRepository) Get(_ context.Context, id uuid.UUID) (batch.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.evictLocked(r.now())

	entry, ok := r.batches[id]
	if !ok {
		return batch.Batch{}, batch.ErrNotFound
	}
	return cloneBatch(entry.batch), nil
}

func (r *BatchRepository) evictLocked(now time.Time) {
	for id, e := range r.batches {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(r.batches, id)
		}
	}
}

func cloneBatch(b batch.Batch) batch.Batch {
	rows := make([]batch.Row, len(b.Rows))
	for i, row := range b.Rows {
		rows[i] = batch.Row{
			FileName:      row.FileName,
			Score:         row.Score,
			MatchedSkills: append([]string(nil), row.MatchedSkills...),
			MissingSkills: append([]string(nil), row.MissingSkills...),
		}
	}
	b.Rows = rows
	return b
}
