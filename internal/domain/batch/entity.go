package batch

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("batch not found")

type Row struct {
	FileName      string   `json:"file_name"`
	Score         float64  `json:"match_score"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
}

type Batch struct {
	ID        uuid.UUID `json:"id"`
	Rows      []Row     `json:"rows"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	Save(ctx context.Context, b Batch) error
	Get(ctx context.Context, id uuid.UUID) (Batch, error)
}
