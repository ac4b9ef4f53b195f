package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resume-match/internal/database"
	"resume-match/internal/database/migration"
	dbpostgres "resume-match/internal/database/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded SQL migrations",
	RunE:  runMigrate,
}

var migrateDatabaseURL string

func init() {
	migrateCmd.Flags().StringVar(&migrateDatabaseURL, "db-url", "", "Database URL (defaults to DATABASE_URL)")

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	db, err := connect(cmd.Context(), migrateDatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := migration.Runner{}.Run(cmd.Context(), db.SQLDB())
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if len(applied) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
		return nil
	}
	for _, m := range applied {
		fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", m.Filename)
	}
	return nil
}

func connect(ctx context.Context, url string) (database.DB, error) {
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		return nil, errors.New("database URL is required (set DATABASE_URL or use --db-url)")
	}
	db, err := dbpostgres.ConnectURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return db, nil
}
