// Package journal appends text records to a file, one per line, and reads
// them back. Lines are never rewritten.
package journal

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotExist is returned when the journal file has not been created yet.
var ErrNotExist = errors.New("journal does not exist")

// File is an append-only line journal.
type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Path() string {
	return f.path
}

// Append writes line followed by a newline. Embedded newlines are rejected
// because they would split one record into two.
func (f *File) Append(line string) error {
	if strings.ContainsAny(line, "\r\n") {
		return fmt.Errorf("journal line must not contain newlines")
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", f.path, err)
	}
	fh, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", f.path, err)
	}
	if _, err := fh.WriteString(line + "\n"); err != nil {
		fh.Close()
		return fmt.Errorf("append %s: %w", f.path, err)
	}
	return fh.Close()
}

// Lines returns every non-blank line in file order.
func (f *File) Lines() ([]string, error) {
	var out []string
	err := f.scan(func(line string) bool {
		out = append(out, line)
		return true
	})
	return out, err
}

// FindPrefix returns the first line starting with prefix.
func (f *File) FindPrefix(prefix string) (string, bool, error) {
	var (
		match string
		found bool
	)
	err := f.scan(func(line string) bool {
		if strings.HasPrefix(line, prefix) {
			match, found = line, true
			return false
		}
		return true
	})
	return match, found, err
}

func (f *File) scan(fn func(line string) bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fh, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", f.path, ErrNotExist)
		}
		return fmt.Errorf("open %s: %w", f.path, err)
	}
	defer fh.Close()

	scanner := bufio.NewScanner(fh)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !fn(line) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan %s: %w", f.path, err)
	}
	return nil
}
