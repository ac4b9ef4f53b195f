package migration

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_OrdersByVersionAndIgnoresOtherFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"V10__later.sql":    {Data: []byte("SELECT 10;")},
		"V2__second.sql":    {Data: []byte("  SELECT 2;  \n")},
		"V1__first.sql":     {Data: []byte("SELECT 1;")},
		"README.md":         {Data: []byte("docs")},
		"v3__lowercase.sql": {Data: []byte("SELECT 3;")},
	}

	migs, err := loadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, migs, 3)

	assert.Equal(t, []int64{1, 2, 10}, []int64{migs[0].Version, migs[1].Version, migs[2].Version})
	assert.Equal(t, "second", migs[1].Name)
	assert.Equal(t, "SELECT 2;", migs[1].SQL)
	assert.Len(t, migs[0].Checksum, 64)
}

func TestLoadMigrations_RejectsDuplicatesAndEmptyFiles(t *testing.T) {
	_, err := loadMigrations(fstest.MapFS{
		"V1__a.sql": {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 1;")},
	})
	assert.ErrorContains(t, err, "duplicate migration version")

	_, err = loadMigrations(fstest.MapFS{"V1__empty.sql": {Data: []byte("  \n")}})
	assert.ErrorContains(t, err, "empty migration file")
}

func TestFiles_EmbedsSchema(t *testing.T) {
	migs, err := loadMigrations(Files())
	require.NoError(t, err)
	require.Len(t, migs, 2)
	assert.Equal(t, "accounts", migs[0].Name)
	assert.Equal(t, "usage_counts", migs[1].Name)
}
