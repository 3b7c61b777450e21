package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/johnwards/retail/internal/errs"
)

// EnsureSchema creates the retail tables if they are absent and checks that
// existing tables carry the expected columns. Each migration group runs in
// its own transaction and is recorded once in schema_migrations. Failures,
// including an incompatible pre-existing table, are schema errors.
func EnsureSchema(ctx context.Context, db *DB) error {
	if err := migrate(ctx, db); err != nil {
		return errs.Schema(err)
	}
	if err := checkColumns(ctx, db); err != nil {
		return errs.Schema(err)
	}
	return nil
}

// SchemaVersion returns the highest applied migration version, 0 if none.
func SchemaVersion(ctx context.Context, db *DB) (int, error) {
	var version int
	err := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("query schema version: %w", err)
	}
	return version, nil
}

func migrate(ctx context.Context, db *DB) error {
	// Ensure schema_migrations exists outside any transaction so it's always
	// available for version checks.
	if _, err := db.ExecContext(ctx, schemaMigrationsDDL[db.Dialect]); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for i, stmts := range migrations {
		version := i + 1

		var applied int
		if err := db.QueryRowContext(ctx,
			db.Dialect.Rebind("SELECT COUNT(*) FROM schema_migrations WHERE version = ?"), version,
		).Scan(&applied); err != nil {
			return fmt.Errorf("check migration %d: %w", version, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", version, err)
		}

		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("migration %d: %w", version, err)
			}
		}

		if applied == 0 {
			if _, err := tx.ExecContext(ctx,
				db.Dialect.Rebind("INSERT INTO schema_migrations (version) VALUES (?)"), version,
			); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("record migration %d: %w", version, err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", version, err)
		}
	}

	return nil
}

// checkColumns selects every expected column from each table without
// reading rows; a missing column fails the query.
func checkColumns(ctx context.Context, db *DB) error {
	for _, table := range Tables() {
		query := fmt.Sprintf("SELECT %s FROM %s WHERE 1 = 0", //nolint:gosec // identifiers are package constants
			strings.Join(tableColumns[table], ", "), table)
		rows, err := db.QueryContext(ctx, query)
		if err != nil {
			return fmt.Errorf("table %s is incompatible: %w", table, err)
		}
		_ = rows.Close()
	}
	return nil
}
