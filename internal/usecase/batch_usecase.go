package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-match/internal/document"
	"resume-match/internal/domain/batch"
	"resume-match/internal/domain/matching"
	"resume-match/internal/domain/skill"
	"resume-match/internal/pipeline"
	"resume-match/internal/pkg/logging"
)

var ErrUploadInput = errors.New("please upload at least one resume and fill in JD")

type BatchScorer interface {
	Run(ctx context.Context, batchID uuid.UUID, jd skill.Set, files []pipeline.File) ([]batch.Row, error)
}

type BatchUsecase interface {
	ScoreUploads(ctx context.Context, jobDescription string, files []pipeline.File) (batch.Batch, error)
	Get(ctx context.Context, id uuid.UUID) (batch.Batch, error)
}

type Batches struct {
	extractor *matching.Extractor
	scorer    BatchScorer
	batches   batch.Repository
	log       *logging.Logger
}

func NewBatchUsecase(extractor *matching.Extractor, scorer BatchScorer, batches batch.Repository, logger *logging.Logger) *Batches {
	return &Batches{extractor: extractor, scorer: scorer, batches: batches, log: logger}
}

// ScoreUploads scores every pdf/docx upload against the JD and stores the
// rows as a new batch. Other file types are dropped without error.
func (u *Batches) ScoreUploads(ctx context.Context, jobDescription string, files []pipeline.File) (batch.Batch, error) {
	if strings.TrimSpace(jobDescription) == "" || len(files) == 0 {
		return batch.Batch{}, ErrUploadInput
	}

	accepted := make([]pipeline.File, 0, len(files))
	for _, f := range files {
		if !document.Allowed(f.Name) {
			u.log.Debug("upload skipped", "file", f.Name, "reason", "unsupported_format")
			continue
		}
		accepted = append(accepted, pipeline.File{Name: document.SecureFilename(f.Name), Data: f.Data})
	}

	b := batch.Batch{ID: uuid.New(), CreatedAt: time.Now().UTC()}
	rows, err := u.scorer.Run(ctx, b.ID, u.extractor.Extract(jobDescription), accepted)
	if err != nil {
		return batch.Batch{}, err
	}
	b.Rows = rows

	if err := u.batches.Save(ctx, b); err != nil {
		return batch.Batch{}, err
	}
	return b, nil
}

func (u *Batches) Get(ctx context.Context, id uuid.UUID) (batch.Batch, error) {
	return u.batches.Get(ctx, id)
}
