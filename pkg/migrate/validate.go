package migrate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"strings"

	"go.uber.org/multierr"
)

var fileNameRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

var requiredAnnotations = []string{"-- +goose Up", "-- +goose Down"}

func ValidateDir(dir string) error {
	if dir == "" {
		return errors.New("migrations dir is required")
	}
	return ValidateFS(os.DirFS(dir))
}

// ValidateFS checks every .sql file at the root of fsys: a
// YYYYMMDDHHMMSS_name.sql file name, a version no other file uses, and both
// goose annotations. All problems are reported together.
func ValidateFS(fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	var errs error
	owners := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".sql" {
			continue
		}
		match := fileNameRe.FindStringSubmatch(name)
		if match == nil {
			errs = multierr.Append(errs, fmt.Errorf("invalid migration filename %q (want YYYYMMDDHHMMSS_name.sql)", name))
			continue
		}
		if first, dup := owners[match[1]]; dup {
			errs = multierr.Append(errs, fmt.Errorf("version %s used by both %q and %q", match[1], first, name))
		} else {
			owners[match[1]] = name
		}
		errs = multierr.Append(errs, checkAnnotations(fsys, name))
	}
	return errs
}

func checkAnnotations(fsys fs.FS, name string) error {
	body, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %q: %w", name, err)
	}
	var errs error
	for _, annotation := range requiredAnnotations {
		if !strings.Contains(string(body), annotation) {
			errs = multierr.Append(errs, fmt.Errorf("%q is missing %q", name, annotation))
		}
	}
	return errs
}
