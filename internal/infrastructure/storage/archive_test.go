package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match/internal/config"
)

func TestDisk_PutWritesUnderBatchDir(t *testing.T) {
	dir := t.TempDir()
	d, err := NewDisk(dir)
	require.NoError(t, err)

	require.NoError(t, d.Put(context.Background(), "batch-1", "../../cv.pdf", []byte("%PDF")))

	b, err := os.ReadFile(filepath.Join(dir, "batch-1", "cv.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(b))
}

func TestNew_SelectsBackend(t *testing.T) {
	a, err := New(context.Background(), config.UploadConfig{Archive: config.ArchiveNone})
	require.NoError(t, err)
	assert.IsType(t, Nop{}, a)

	a, err = New(context.Background(), config.UploadConfig{Archive: config.ArchiveDisk, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &Disk{}, a)
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "resumes/b1/cv.pdf", ObjectKey("b1", "nested/cv.pdf"))
}
