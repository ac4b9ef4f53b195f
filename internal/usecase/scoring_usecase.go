package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resume-match/internal/domain/matching"
	"resume-match/internal/domain/usage"
	"resume-match/internal/pkg/logging"
)

var (
	ErrEmailRequired = errors.New("email is required")
	ErrJDFetchFailed = errors.New("could not fetch job description")
)

type JDFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type ScoreInput struct {
	Resume            string
	JobDescription    string
	JobDescriptionURL string
	Email             string
}

type ScoreOutput struct {
	Report    matching.Report
	CallsMade int
	CallLimit int
}

type ScoringUsecase interface {
	ScoreText(ctx context.Context, in ScoreInput) (matching.Report, error)
	ScoreForUser(ctx context.Context, in ScoreInput) (ScoreOutput, error)
}

type Scoring struct {
	extractor *matching.Extractor
	usage     usage.Counter
	fetcher   JDFetcher
	log       *logging.Logger
}

func NewScoringUsecase(extractor *matching.Extractor, counter usage.Counter, fetcher JDFetcher, logger *logging.Logger) *Scoring {
	return &Scoring{extractor: extractor, usage: counter, fetcher: fetcher, log: logger}
}

func (s *Scoring) ScoreText(ctx context.Context, in ScoreInput) (matching.Report, error) {
	jd, err := s.resolveJD(ctx, in)
	if err != nil {
		return matching.Report{}, err
	}
	return s.score(in.Resume, jd), nil
}

// ScoreForUser charges one call against the email's quota before scoring.
// The JD URL is resolved first so a failed fetch costs nothing.
func (s *Scoring) ScoreForUser(ctx context.Context, in ScoreInput) (ScoreOutput, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return ScoreOutput{}, ErrEmailRequired
	}

	jd, err := s.resolveJD(ctx, in)
	if err != nil {
		return ScoreOutput{}, err
	}

	n, err := s.usage.CheckAndIncrement(ctx, email)
	if err != nil {
		if errors.Is(err, usage.ErrQuotaExceeded) {
			s.log.Info("quota exceeded", "usecase", "score", "email", email, "count", n, "limit", s.usage.Limit())
			return ScoreOutput{CallsMade: n, CallLimit: s.usage.Limit()}, usage.ErrQuotaExceeded
		}
		return ScoreOutput{}, fmt.Errorf("usage counter: %w", err)
	}

	return ScoreOutput{
		Report:    s.score(in.Resume, jd),
		CallsMade: n,
		CallLimit: s.usage.Limit(),
	}, nil
}

func (s *Scoring) resolveJD(ctx context.Context, in ScoreInput) (string, error) {
	if strings.TrimSpace(in.JobDescription) != "" || strings.TrimSpace(in.JobDescriptionURL) == "" {
		return in.JobDescription, nil
	}
	if s.fetcher == nil {
		return "", ErrJDFetchFailed
	}
	text, err := s.fetcher.Fetch(ctx, in.JobDescriptionURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrJDFetchFailed, err)
	}
	return text, nil
}

func (s *Scoring) score(resume, jd string) matching.Report {
	return matching.Compute(s.extractor.Extract(resume), s.extractor.Extract(jd))
}
