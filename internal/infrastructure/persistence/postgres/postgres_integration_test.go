package postgres

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match/internal/database"
	"resume-match/internal/database/migration"
	pgdb "resume-match/internal/database/postgres"
	"resume-match/internal/domain/account"
	"resume-match/internal/domain/usage"
)

// testDB connects to TEST_DATABASE_URL and applies the embedded migrations.
// Tests are skipped when it is unset.
func testDB(t *testing.T) database.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_DATABASE_URL"))
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := pgdb.ConnectURL(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = migration.Runner{}.Run(ctx, db.SQLDB())
	require.NoError(t, err)
	return db
}

func TestAccountRepository_Postgres(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo, err := NewAccountRepository(db)
	require.NoError(t, err)

	email := "it-" + uuid.NewString() + "@example.com"
	require.NoError(t, repo.Create(ctx, account.Account{Email: strings.ToUpper(email), PasswordHash: "h"}))

	got, err := repo.GetByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, email, got.Email)
	assert.Equal(t, account.DefaultDisplayName, got.DisplayName)

	err = repo.Create(ctx, account.Account{Email: email, PasswordHash: "h"})
	assert.ErrorIs(t, err, account.ErrDuplicateEmail)

	_, err = repo.GetByEmail(ctx, "missing-"+email)
	assert.ErrorIs(t, err, account.ErrNotFound)
}

func TestUsageCounter_Postgres(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	c, err := NewUsageCounter(db, 3)
	require.NoError(t, err)

	user := "it-" + uuid.NewString()
	for i := 1; i <= 3; i++ {
		n, err := c.CheckAndIncrement(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	n, err := c.CheckAndIncrement(ctx, user)
	assert.ErrorIs(t, err, usage.ErrQuotaExceeded)
	assert.Equal(t, 3, n)
}
