package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"resume-match/internal/domain/usage"
)

// UsageStore persists per-user call counts as a flat JSON object
// ({"user@example.com": 3}) and serializes every read-modify-write behind a
// single mutex. Writes go to a temp file that is renamed over the original.
type UsageStore struct {
	mu    sync.Mutex
	path  string
	limit int
}

func NewUsageStore(path string, limit int) (*UsageStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("usage store: empty path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("usage store: %w", err)
		}
	}
	return &UsageStore{path: path, limit: limit}, nil
}

func (s *UsageStore) CheckAndIncrement(_ context.Context, userID string) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, usage.ErrEmptyUserID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	counts, err := s.load()
	if err != nil {
		return 0, err
	}

	n := counts[userID]
	if n >= s.limit {
		return n, usage.ErrQuotaExceeded
	}
	n++
	counts[userID] = n

	if err := s.save(counts); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *UsageStore) Count(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts, err := s.load()
	if err != nil {
		return 0, err
	}
	return counts[strings.TrimSpace(userID)], nil
}

func (s *UsageStore) Limit() int {
	return s.limit
}

func (s *UsageStore) load() (map[string]int, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("usage store: read: %w", err)
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return map[string]int{}, nil
	}

	counts := map[string]int{}
	if err := json.Unmarshal(b, &counts); err != nil {
		return nil, fmt.Errorf("usage store: decode %s: %w", s.path, err)
	}
	return counts, nil
}

func (s *UsageStore) save(counts map[string]int) error {
	b, err := json.Marshal(counts)
	if err != nil {
		return fmt.Errorf("usage store: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("usage store: temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("usage store: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("usage store: close: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("usage store: rename: %w", err)
	}
	return nil
}
