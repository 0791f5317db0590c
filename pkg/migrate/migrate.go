// Package migrate owns the goose migrations for the sql storage backend.
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/angelmondragon/backoffice/pkg/db"
	"github.com/pressly/goose/v3"
)

// DefaultDir is where `migrate -cmd=create` writes when -dir is not given.
const DefaultDir = "pkg/migrate/migrations"

//go:embed migrations/*.sql
var embedded embed.FS

// Migrations returns the SQL migrations compiled into the binary.
func Migrations() fs.FS {
	sub, err := fs.Sub(embedded, "migrations")
	if err != nil {
		panic(fmt.Sprintf("migrations subtree: %v", err))
	}
	return sub
}

var dialects = map[string]goose.Dialect{
	db.DriverPostgres: goose.DialectPostgres,
	db.DriverSQLite:   goose.DialectSQLite3,
	"":                goose.DialectSQLite3,
}

// NewProvider builds a goose provider over fsys; a nil fsys means Migrations().
func NewProvider(pool *sql.DB, driver string, fsys fs.FS) (*goose.Provider, error) {
	if pool == nil {
		return nil, errors.New("migrate: sql pool is required")
	}
	dialect, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("migrate: no goose dialect for driver %q", driver)
	}
	if fsys == nil {
		fsys = Migrations()
	}
	provider, err := goose.NewProvider(dialect, pool, fsys)
	if err != nil {
		return nil, fmt.Errorf("migrate: goose provider: %w", err)
	}
	return provider, nil
}

// Up applies every pending migration and returns the resulting version.
func Up(ctx context.Context, pool *sql.DB, driver string, fsys fs.FS) (int64, error) {
	provider, err := NewProvider(pool, driver, fsys)
	if err != nil {
		return 0, err
	}
	if _, err := provider.Up(ctx); err != nil {
		return 0, fmt.Errorf("goose up: %w", err)
	}
	return provider.GetDBVersion(ctx)
}

// Down rolls back the most recent migration only.
func Down(ctx context.Context, pool *sql.DB, driver string, fsys fs.FS) error {
	provider, err := NewProvider(pool, driver, fsys)
	if err != nil {
		return err
	}
	if _, err := provider.Down(ctx); err != nil {
		return fmt.Errorf("goose down: %w", err)
	}
	return nil
}

func Status(ctx context.Context, pool *sql.DB, driver string, fsys fs.FS) ([]*goose.MigrationStatus, error) {
	provider, err := NewProvider(pool, driver, fsys)
	if err != nil {
		return nil, err
	}
	return provider.Status(ctx)
}

// MigrateToVersion moves the database up or down until it sits at version,
// given as YYYYMMDDHHMMSS.
func MigrateToVersion(ctx context.Context, pool *sql.DB, driver string, fsys fs.FS, version string) error {
	target, err := strconv.ParseInt(version, 10, 64)
	if err != nil || target < 0 {
		return fmt.Errorf("migrate: invalid version %q (want YYYYMMDDHHMMSS)", version)
	}
	provider, err := NewProvider(pool, driver, fsys)
	if err != nil {
		return err
	}
	current, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("goose db version: %w", err)
	}

	step, verb := provider.UpTo, "up-to"
	if target < current {
		step, verb = provider.DownTo, "down-to"
	}
	if target == current {
		return nil
	}
	if _, err := step(ctx, target); err != nil {
		return fmt.Errorf("goose %s %d: %w", verb, target, err)
	}
	return nil
}

// Apply brings the client's database to the latest embedded version.
func Apply(ctx context.Context, client *db.Client) (int64, error) {
	if client == nil {
		return 0, errors.New("migrate: db client is required")
	}
	pool, err := client.SQL()
	if err != nil {
		return 0, err
	}
	return Up(ctx, pool, client.Driver(), nil)
}
