package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("SESSION_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, UsageBackendFile, cfg.Usage.Backend)
	assert.Equal(t, "usage.json", cfg.Usage.File)
	assert.Equal(t, 10, cfg.Usage.Limit)
	assert.Equal(t, BackendMemory, cfg.Storage.AccountBackend)
	assert.Equal(t, BackendMemory, cfg.Storage.BatchBackend)
	assert.True(t, cfg.Storage.SeedDemoAccount)
	assert.Equal(t, ArchiveDisk, cfg.Upload.Archive)
	assert.Equal(t, "uploads", cfg.Upload.Dir)
	assert.Equal(t, SimilarityPartialRatio, cfg.Matching.Similarity)
	assert.Equal(t, 80.0, cfg.Matching.Threshold)
	assert.Equal(t, "session", cfg.Session.CookieName)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.CORSAllowOrigins)
	assert.False(t, cfg.Database.Enabled())
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	require.ErrorIs(t, err, errMissingRequiredEnv)
	assert.Contains(t, err.Error(), "HTTP_PORT")
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("USAGE_BACKEND", "sqlite")
	t.Setenv("USAGE_LIMIT", "ten")

	_, err := Load()
	require.ErrorIs(t, err, errInvalidEnv)
	assert.Contains(t, err.Error(), "USAGE_BACKEND")
	assert.Contains(t, err.Error(), "USAGE_LIMIT")
}

func TestLoad_PostgresBackendNeedsDatabase(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("ACCOUNT_BACKEND", "postgres")
	t.Setenv("DB_HOST", "")

	_, err := Load()
	require.ErrorIs(t, err, errMissingRequiredEnv)
	assert.Contains(t, err.Error(), "DB_HOST")
}

func TestLoad_S3ArchiveNeedsBucket(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("UPLOAD_ARCHIVE", "s3")
	t.Setenv("S3_BUCKET", "")

	_, err := Load()
	require.ErrorIs(t, err, errMissingRequiredEnv)
	assert.Contains(t, err.Error(), "S3_BUCKET")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "n", DBSSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", c.DSN())
	assert.True(t, c.Enabled())
}
