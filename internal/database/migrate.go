package database

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
)

//go:embed migrations/001_initial.up.sql
var initialMigrationSQL string

//go:embed migrations/002_payroll_uniqueness.up.sql
var payrollUniquenessSQL string

//go:embed migrations/003_clock_uniqueness.up.sql
var clockUniquenessSQL string

var requiredTables = []string{
	"users",
	"records",
	"audit_entries",
}

func (db *DB) EnsureSchema(ctx context.Context) error {
	if db == nil || db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	exists, err := db.hasAllRequiredTables(ctx)
	if err != nil {
		return fmt.Errorf("check existing tables: %w", err)
	}

	if !exists {
		slog.Info("database schema missing tables; applying initial migration")
		if _, err := db.Pool.Exec(ctx, initialMigrationSQL); err != nil {
			return fmt.Errorf("apply initial migration: %w", err)
		}

		exists, err = db.hasAllRequiredTables(ctx)
		if err != nil {
			return fmt.Errorf("re-check tables after migration: %w", err)
		}

		if !exists {
			return fmt.Errorf("schema initialization incomplete: required tables are still missing")
		}
	}

	// 002: one payroll per employee and period.
	if err := db.applyIndex(ctx, "002", "records_payroll_period_key", payrollUniquenessSQL); err != nil {
		return fmt.Errorf("apply payroll uniqueness migration: %w", err)
	}
	// 003: one clock-in per employee and day.
	if err := db.applyIndex(ctx, "003", "records_clock_day_key", clockUniquenessSQL); err != nil {
		return fmt.Errorf("apply clock uniqueness migration: %w", err)
	}

	slog.Info("database schema ensured")
	return nil
}

func (db *DB) applyIndex(ctx context.Context, version, index, sql string) error {
	var hasIndex bool
	err := db.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM pg_indexes
			WHERE schemaname = 'public'
			  AND indexname = $1
		)
	`, index).Scan(&hasIndex)
	if err != nil {
		return fmt.Errorf("check index %s: %w", index, err)
	}

	if !hasIndex {
		slog.Info("applying index migration", "version", version, "index", index)
		if _, err := db.Pool.Exec(ctx, sql); err != nil {
			return fmt.Errorf("exec %s: %w", index, err)
		}
	}
	return nil
}

func (db *DB) hasAllRequiredTables(ctx context.Context) (bool, error) {
	var count int
	err := db.Pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_name = ANY($1)
	`, requiredTables).Scan(&count)
	if err != nil {
		return false, err
	}

	return count == len(requiredTables), nil
}
