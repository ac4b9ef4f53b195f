package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"resume-match/internal/config"
	"resume-match/internal/pkg/logging"
)

var (
	ErrInvalidURL = errors.New("invalid job description url")
	ErrEmptyPage  = errors.New("job description page has no text")
)

// JDFetcher downloads a job posting and returns the visible body text.
type JDFetcher struct {
	timeout   time.Duration
	userAgent string
	logger    *logging.Logger
}

func NewJDFetcher(cfg config.FetchConfig, logger *logging.Logger) *JDFetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ua := strings.TrimSpace(cfg.UserAgent)
	if ua == "" {
		ua = "ResumeMatchFetcher/0.1"
	}
	return &JDFetcher{timeout: timeout, userAgent: ua, logger: logger}
}

func (f *JDFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	c := colly.NewCollector(colly.UserAgent(f.userAgent), colly.StdlibContext(ctx))
	c.SetRequestTimeout(f.timeout)

	var (
		text   string
		reqErr error
	)

	c.OnHTML("body", func(e *colly.HTMLElement) {
		e.DOM.Find("script,style,noscript,template").Remove()
		text = strings.Join(strings.Fields(e.DOM.Text()), " ")
	})

	c.OnError(func(r *colly.Response, err error) {
		reqErr = fmt.Errorf("fetch %s: status=%d: %w", r.Request.URL, r.StatusCode, err)
	})

	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if err := c.Visit(u.String()); err != nil {
		return "", err
	}
	c.Wait()

	if reqErr != nil {
		f.logger.Warn("job description fetch failed", "url", u.String(), "error", reqErr)
		return "", reqErr
	}
	if text == "" {
		return "", ErrEmptyPage
	}

	f.logger.Debug("job description fetched", "url", u.String(), "chars", len(text))
	return text, nil
}
