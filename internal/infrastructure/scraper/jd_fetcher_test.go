package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match/internal/config"
	"resume-match/internal/pkg/logging"
)

func newFetcher() *JDFetcher {
	return NewJDFetcher(config.FetchConfig{Timeout: 5 * time.Second}, logging.Nop())
}

func TestJDFetcher_ExtractsVisibleText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><title>Job</title><style>.x{}</style></head>
<body>
  <h1>Backend Engineer</h1>
  <script>var tracking = "excel";</script>
  <p>Looking for   Python, AWS,
  and Kubernetes expert</p>
</body></html>`))
	}))
	defer srv.Close()

	text, err := newFetcher().Fetch(context.Background(), srv.URL+"/jobs/1")
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer Looking for Python, AWS, and Kubernetes expert", text)
}

func TestJDFetcher_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newFetcher().Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestJDFetcher_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><script>1</script></body></html>`))
	}))
	defer srv.Close()

	_, err := newFetcher().Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrEmptyPage)
}

func TestJDFetcher_StopsWhenContextCanceled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	start := time.Now()
	_, err := newFetcher().Fetch(ctx, srv.URL)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestJDFetcher_RejectsBadURLs(t *testing.T) {
	for _, raw := range []string{"", "ftp://example.com/jd", "not a url", "http://"} {
		_, err := newFetcher().Fetch(context.Background(), raw)
		assert.ErrorIs(t, err, ErrInvalidURL, raw)
	}
}

func TestJDFetcher_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newFetcher().Fetch(ctx, "http://example.com")
	assert.ErrorIs(t, err, context.Canceled)
}
