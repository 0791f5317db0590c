// Package snapshot persists a store's full, ordered contents as one unit.
// Every mutation rewrites the whole collection; loads happen once at start.
package snapshot

import (
	"context"
	"errors"
	"sync"

	pkgerrors "github.com/angelmondragon/backoffice/pkg/errors"
)

// ErrNotExist is returned by Load when nothing has been saved yet.
var ErrNotExist = errors.New("snapshot does not exist")

// Store loads and saves an ordered collection.
type Store[T any] interface {
	Load(ctx context.Context) ([]T, error)
	Save(ctx context.Context, items []T) error
}

// Memory keeps the last saved collection in process. Used by the "memory"
// backend and in tests.
type Memory[T any] struct {
	mu    sync.Mutex
	items []T
	saved bool
}

func NewMemory[T any](seed ...T) *Memory[T] {
	m := &Memory[T]{}
	if len(seed) > 0 {
		m.items = append([]T(nil), seed...)
		m.saved = true
	}
	return m
}

func (m *Memory[T]) Load(ctx context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.saved {
		return nil, ErrNotExist
	}
	return append([]T(nil), m.items...), nil
}

func (m *Memory[T]) Save(ctx context.Context, items []T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append([]T(nil), items...)
	m.saved = true
	return nil
}

// LoadOrEmpty loads the collection and degrades every failure to an empty
// collection plus a CodeStorageUnavailable error. A store that was never
// saved still reports ErrNotExist in the error chain so callers can tell a
// first run apart from a broken backend.
func LoadOrEmpty[T any](ctx context.Context, s Store[T], name string) ([]T, error) {
	items, err := s.Load(ctx)
	if err != nil {
		return []T{}, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "load "+name)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// SaveErr wraps a failed save so callers can keep the in-memory mutation and
// still report the failure.
func SaveErr(err error, name string) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "save "+name)
}
