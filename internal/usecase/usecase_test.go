package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"resume-match/internal/domain/batch"
	"resume-match/internal/domain/matching"
	"resume-match/internal/domain/skill"
	"resume-match/internal/domain/usage"
	"resume-match/internal/infrastructure/persistence/memory"
	"resume-match/internal/pipeline"
	"resume-match/internal/pkg/jwt"
	"resume-match/internal/pkg/logging"
	ucauth "resume-match/internal/usecase/auth"
)

type stubFetcher struct {
	text string
	err  error
	hits int
}

func (f *stubFetcher) Fetch(context.Context, string) (string, error) {
	f.hits++
	return f.text, f.err
}

type stubScorer struct {
	gotFiles []pipeline.File
	gotJD    skill.Set
	err      error
}

func (s *stubScorer) Run(_ context.Context, _ uuid.UUID, jd skill.Set, files []pipeline.File) ([]batch.Row, error) {
	s.gotFiles = files
	s.gotJD = jd
	if s.err != nil {
		return nil, s.err
	}
	rows := make([]batch.Row, len(files))
	for i, f := range files {
		rows[i] = batch.Row{FileName: f.Name}
	}
	return rows, nil
}

func newAuth(t *testing.T) (*Auth, *memory.UsageCounter) {
	t.Helper()
	counter := memory.NewUsageCounter(10)
	svc := ucauth.NewService(memory.NewAccountRepository(), bcrypt.MinCost)
	return NewAuthUsecase(svc, jwt.NewHMACService("test-secret", time.Hour), counter), counter
}

func TestAuth_SignupIssuesSessionAndCurrentUserReportsUsage(t *testing.T) {
	ctx := context.Background()
	uc, counter := newAuth(t)

	sess, err := uc.Signup(ctx, ucauth.SignupInput{Email: "a@example.com", Password: "pw", Name: "Ann"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sess.Token == "" || sess.ExpiresAt.IsZero() {
		t.Fatalf("expected a session token")
	}

	for i := 0; i < 3; i++ {
		if _, err := counter.CheckAndIncrement(ctx, "a@example.com"); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}

	me, err := uc.CurrentUser(ctx, sess.Token)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if me.Email != "a@example.com" || me.DisplayName != "Ann" {
		t.Fatalf("unexpected account: %+v", me)
	}
	if me.CallCount != 3 || me.CallLimit != 10 {
		t.Fatalf("expected 3/10 calls, got %d/%d", me.CallCount, me.CallLimit)
	}
}

func TestAuth_WrongPasswordIssuesNothing(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAuth(t)
	if _, err := uc.Signup(ctx, ucauth.SignupInput{Email: "a@example.com", Password: "right"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	sess, err := uc.Login(ctx, ucauth.LoginInput{Email: "a@example.com", Password: "wrong"})
	if !errors.Is(err, ucauth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if sess.Token != "" {
		t.Fatalf("expected no token on failed login")
	}
}

func TestAuth_CurrentUserRejectsMissingOrBadToken(t *testing.T) {
	uc, _ := newAuth(t)
	for _, tok := range []string{"", "garbage"} {
		if _, err := uc.CurrentUser(context.Background(), tok); !errors.Is(err, ErrNotLoggedIn) {
			t.Fatalf("token %q: expected ErrNotLoggedIn, got %v", tok, err)
		}
	}
}

func TestScoring_ScoreText(t *testing.T) {
	uc := NewScoringUsecase(matching.NewExtractor(nil, nil, 0), memory.NewUsageCounter(10), nil, logging.Nop())

	rep, err := uc.ScoreText(context.Background(), ScoreInput{
		Resume:         "I used Python and Docker daily",
		JobDescription: "Looking for Python, AWS, and Kubernetes expert",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rep.Score != 33.33 {
		t.Fatalf("expected 33.33, got %v", rep.Score)
	}
	if got := skill.Strings(rep.Missing); len(got) != 2 || got[0] != "aws" || got[1] != "kubernetes" {
		t.Fatalf("unexpected missing: %v", got)
	}
}

func TestScoring_ScoreForUserQuota(t *testing.T) {
	ctx := context.Background()
	uc := NewScoringUsecase(matching.NewExtractor(nil, nil, 0), memory.NewUsageCounter(2), nil, logging.Nop())
	in := ScoreInput{Resume: "python", JobDescription: "python", Email: "Q@Example.com"}

	for i := 1; i <= 2; i++ {
		out, err := uc.ScoreForUser(ctx, in)
		if err != nil {
			t.Fatalf("call %d: unexpected err: %v", i, err)
		}
		if out.CallsMade != i || out.Report.Score != 100 {
			t.Fatalf("call %d: unexpected output %+v", i, out)
		}
	}

	out, err := uc.ScoreForUser(ctx, in)
	if !errors.Is(err, usage.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if out.CallsMade != 2 {
		t.Fatalf("expected count to stay at 2, got %d", out.CallsMade)
	}

	if _, err := uc.ScoreForUser(ctx, ScoreInput{Resume: "python"}); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("expected ErrEmailRequired, got %v", err)
	}
}

func TestScoring_FetchesJDFromURL(t *testing.T) {
	ctx := context.Background()
	counter := memory.NewUsageCounter(10)
	f := &stubFetcher{text: "We need AWS"}
	uc := NewScoringUsecase(matching.NewExtractor(nil, nil, 0), counter, f, logging.Nop())

	rep, err := uc.ScoreText(ctx, ScoreInput{Resume: "aws", JobDescriptionURL: "https://jobs.example.com/1"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rep.Score != 100 || f.hits != 1 {
		t.Fatalf("expected fetched JD to be scored, got %+v hits=%d", rep, f.hits)
	}

	f.err = errors.New("timeout")
	_, err = uc.ScoreForUser(ctx, ScoreInput{Resume: "aws", JobDescriptionURL: "https://jobs.example.com/1", Email: "a@example.com"})
	if !errors.Is(err, ErrJDFetchFailed) {
		t.Fatalf("expected ErrJDFetchFailed, got %v", err)
	}
	if n, _ := counter.Count(ctx, "a@example.com"); n != 0 {
		t.Fatalf("failed fetch must not be charged, count=%d", n)
	}
}

func TestBatches_ScoreUploads(t *testing.T) {
	ctx := context.Background()
	scorer := &stubScorer{}
	repo := memory.NewBatchRepository(time.Hour)
	uc := NewBatchUsecase(matching.NewExtractor(nil, nil, 0), scorer, repo, logging.Nop())

	b, err := uc.ScoreUploads(ctx, "Python and SQL", []pipeline.File{
		{Name: "../cv one.pdf", Data: []byte("x")},
		{Name: "notes.txt", Data: []byte("x")},
		{Name: "two.DOCX", Data: []byte("x")},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(scorer.gotFiles) != 2 || scorer.gotFiles[0].Name != "cv_one.pdf" || scorer.gotFiles[1].Name != "two.DOCX" {
		t.Fatalf("unexpected accepted files: %+v", scorer.gotFiles)
	}
	if !scorer.gotJD.Contains("python") || !scorer.gotJD.Contains("sql") {
		t.Fatalf("unexpected jd skills: %v", scorer.gotJD.Sorted())
	}

	stored, err := uc.Get(ctx, b.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(stored.Rows) != 2 {
		t.Fatalf("expected 2 stored rows, got %d", len(stored.Rows))
	}
}

func TestBatches_RequiresJDAndFiles(t *testing.T) {
	uc := NewBatchUsecase(matching.NewExtractor(nil, nil, 0), &stubScorer{}, memory.NewBatchRepository(time.Hour), logging.Nop())

	if _, err := uc.ScoreUploads(context.Background(), "  ", []pipeline.File{{Name: "a.pdf"}}); !errors.Is(err, ErrUploadInput) {
		t.Fatalf("expected ErrUploadInput, got %v", err)
	}
	if _, err := uc.ScoreUploads(context.Background(), "python", nil); !errors.Is(err, ErrUploadInput) {
		t.Fatalf("expected ErrUploadInput, got %v", err)
	}
}
