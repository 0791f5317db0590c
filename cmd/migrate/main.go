package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/angelmondragon/backoffice/pkg/config"
	"github.com/angelmondragon/backoffice/pkg/db"
	"github.com/angelmondragon/backoffice/pkg/logger"
	"github.com/angelmondragon/backoffice/pkg/migrate"
	"github.com/joho/godotenv"
)

type flags struct {
	cmd     string
	dir     string
	name    string
	version string
}

// dbCommand runs against an open pool using the migrations in fsys.
type dbCommand func(ctx context.Context, pool *sql.DB, driver string, fsys fs.FS, f flags) error

var dbCommands = map[string]dbCommand{
	"up": func(ctx context.Context, pool *sql.DB, driver string, fsys fs.FS, _ flags) error {
		current, err := migrate.Up(ctx, pool, driver, fsys)
		if err != nil {
			return err
		}
		fmt.Println("database at version", current)
		return nil
	},
	"down": func(ctx context.Context, pool *sql.DB, driver string, fsys fs.FS, _ flags) error {
		return migrate.Down(ctx, pool, driver, fsys)
	},
	"status": func(ctx context.Context, pool *sql.DB, driver string, fsys fs.FS, _ flags) error {
		statuses, err := migrate.Status(ctx, pool, driver, fsys)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			fmt.Printf("%-8s %d %s\n", s.State, s.Source.Version, s.Source.Path)
		}
		return nil
	},
	"version": func(ctx context.Context, pool *sql.DB, driver string, fsys fs.FS, f flags) error {
		if f.version == "" {
			return errors.New("missing -version")
		}
		return migrate.MigrateToVersion(ctx, pool, driver, fsys, f.version)
	},
}

func main() {
	var f flags
	flag.StringVar(&f.cmd, "cmd", "up", "up|down|status|version|create|validate")
	flag.StringVar(&f.dir, "dir", "", "migrations directory (defaults to the embedded set)")
	flag.StringVar(&f.name, "name", "", "migration name (create)")
	flag.StringVar(&f.version, "version", "", "target version YYYYMMDDHHMMSS (version)")
	flag.Parse()

	_ = godotenv.Load()

	logg := logger.New(logger.Options{ServiceName: "migrate"})
	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Format:      cfg.App.LogFormat,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Fields:      map[string]any{"env": cfg.App.Env},
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"cmd":    f.cmd,
		"dir":    f.dir,
		"driver": cfg.DB.Driver,
	})

	if err := run(ctx, cfg, logg, f); err != nil {
		logg.Error(ctx, "migrate "+f.cmd+" failed", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger, f flags) error {
	var fsys fs.FS = migrate.Migrations()
	if f.dir != "" {
		fsys = os.DirFS(f.dir)
	}

	switch f.cmd {
	case "create":
		if f.name == "" {
			return errors.New("missing -name")
		}
		target := f.dir
		if target == "" {
			target = migrate.DefaultDir
		}
		path, err := migrate.CreateSQLMigration(target, f.name)
		if err != nil {
			return err
		}
		fmt.Println("created migration:", path)
		return nil
	case "validate":
		if err := migrate.ValidateFS(fsys); err != nil {
			return err
		}
		fmt.Println("migration validation passed")
		return nil
	}

	command, ok := dbCommands[f.cmd]
	if !ok {
		return fmt.Errorf("unknown -cmd value %q", f.cmd)
	}

	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer client.Close()

	pool, err := client.SQL()
	if err != nil {
		return err
	}
	return command(ctx, pool, client.Driver(), fsys, f)
}
