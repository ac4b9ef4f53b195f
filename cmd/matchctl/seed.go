package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"resume-match/internal/database/seeder"
	pgrepo "resume-match/internal/infrastructure/persistence/postgres"
	ucauth "resume-match/internal/usecase/auth"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the demo account into Postgres",
	Long:  "Create the demo login (test@example.com) in the accounts table. Run migrate first.",
	RunE:  runSeed,
}

var (
	seedDatabaseURL string
	seedBcryptCost  int
)

func init() {
	seedCmd.Flags().StringVar(&seedDatabaseURL, "db-url", "", "Database URL (defaults to DATABASE_URL)")
	seedCmd.Flags().IntVar(&seedBcryptCost, "bcrypt-cost", bcrypt.DefaultCost, "bcrypt cost for the demo password")

	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	db, err := connect(cmd.Context(), seedDatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	accounts, err := pgrepo.NewAccountRepository(db)
	if err != nil {
		return err
	}

	r := seeder.Runner{Seeders: []seeder.Seeder{
		seeder.SchemaCheck{DB: db, Table: "accounts", Columns: []string{"id", "email", "password_hash", "display_name", "created_at"}},
		seeder.DemoAccountSeeder{Auth: ucauth.NewService(accounts, seedBcryptCost)},
	}}
	if err := r.Run(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %s\n", seeder.DemoEmail)
	return nil
}
