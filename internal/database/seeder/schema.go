package seeder

import (
	"context"
	"fmt"

	"resume-match/internal/database"
)

// SchemaCheck fails when a table lacks any of the listed columns, so a
// seed against an unmigrated database stops before writing anything.
type SchemaCheck struct {
	DB      database.DB
	Table   string
	Columns []string
}

func (s SchemaCheck) Name() string { return "schema:" + s.Table }

func (s SchemaCheck) Run(ctx context.Context) error {
	return EnsureTableColumns(ctx, s.DB, s.Table, s.Columns...)
}

func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if table == "" {
		return fmt.Errorf("empty table")
	}
	for _, col := range columns {
		if col == "" {
			return fmt.Errorf("empty column")
		}
	}

	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			return fmt.Errorf("schema mismatch: missing column %s.%s", table, col)
		}
	}
	return nil
}
