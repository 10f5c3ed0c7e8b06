package db

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const pgDialect = "postgres"

// MigrateUp runs all pending SQL migrations found in migrationsDir against
// the database at dsn.
func MigrateUp(dsn, migrationsDir string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer sqlDB.Close()

	if err := goose.SetDialect(pgDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}

	return nil
}

// MigrateDownTo rolls the schema back to the given version.
func MigrateDownTo(dsn, migrationsDir string, version int64) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer sqlDB.Close()

	if err := goose.SetDialect(pgDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.DownTo(sqlDB, migrationsDir, version); err != nil {
		return fmt.Errorf("run goose down migrations: %w", err)
	}

	return nil
}
