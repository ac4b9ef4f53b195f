package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"resume-match/internal/document"
	"resume-match/internal/domain/batch"
	"resume-match/internal/domain/matching"
	"resume-match/internal/domain/skill"
	"resume-match/internal/pkg/logging"
)

type File struct {
	Name string
	Data []byte
}

type Progress struct {
	BatchID   uuid.UUID
	File      string
	Processed int
	Total     int
}

type ProgressFunc func(Progress)

type Archiver interface {
	Put(ctx context.Context, batchID, filename string, data []byte) error
}

// BatchScorer parses and scores one upload's resumes against a JD skill set.
type BatchScorer struct {
	extractor  *matching.Extractor
	archiver   Archiver
	workers    int
	onProgress ProgressFunc
	log        *logging.Logger
}

func NewBatchScorer(extractor *matching.Extractor, archiver Archiver, workers int, onProgress ProgressFunc, logger *logging.Logger) *BatchScorer {
	if workers <= 0 {
		workers = 4
	}
	return &BatchScorer{
		extractor:  extractor,
		archiver:   archiver,
		workers:    workers,
		onProgress: onProgress,
		log:        logger,
	}
}

// Run returns one row per file, in input order. A file that fails to parse
// fails the whole batch; the first failure in input order is returned.
func (p *BatchScorer) Run(ctx context.Context, batchID uuid.UUID, jd skill.Set, files []File) ([]batch.Row, error) {
	if len(files) == 0 {
		return []batch.Row{}, nil
	}

	start := time.Now()
	rows := make([]batch.Row, len(files))
	errs := make([]error, len(files))
	var processed atomic.Int64

	pool := NewWorkerPool(min(p.workers, len(files)), len(files))
	results := pool.Run(ctx)

	for i, f := range files {
		pool.Submit(func(ctx context.Context) Result {
			row, err := p.scoreOne(ctx, batchID, jd, f)
			if err != nil {
				p.log.Error("batch file failed", "pipeline", "batch_scoring", "batch_id", batchID, "file", f.Name, "error", err)
				return Result{Index: i, Err: err}
			}
			rows[i] = row

			n := int(processed.Add(1))
			if p.onProgress != nil {
				p.onProgress(Progress{BatchID: batchID, File: f.Name, Processed: n, Total: len(files)})
			}
			return Result{Index: i}
		})
	}
	pool.Close()

	for r := range results {
		if r.Err != nil {
			errs[r.Index] = r.Err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%s: %w", files[i].Name, err)
		}
	}

	p.log.Info("batch scored", "pipeline", "batch_scoring", "status", "ok", "batch_id", batchID, "files", len(files), "duration", time.Since(start))
	return rows, nil
}

func (p *BatchScorer) scoreOne(ctx context.Context, batchID uuid.UUID, jd skill.Set, f File) (batch.Row, error) {
	if p.archiver != nil {
		if err := p.archiver.Put(ctx, batchID.String(), f.Name, f.Data); err != nil {
			p.log.Warn("archive upload failed", "batch_id", batchID, "file", f.Name, "error", err)
		}
	}

	text, err := document.Extract(f.Name, f.Data)
	if err != nil {
		return batch.Row{}, err
	}

	rep := matching.Compute(p.extractor.Extract(text), jd)
	return batch.Row{
		FileName:      f.Name,
		Score:         rep.Score,
		MatchedSkills: skill.Strings(rep.Matched),
		MissingSkills: skill.Strings(rep.Missing),
	}, nil
}
