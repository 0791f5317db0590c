package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pkgredis "github.com/angelmondragon/backoffice/pkg/redis"
)

// KV is the slice of pkg/redis.Client the snapshot needs.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Redis stores the collection as one JSON value under a key.
type Redis[T any] struct {
	kv  KV
	key string
}

func NewRedis[T any](kv KV, key string) *Redis[T] {
	return &Redis[T]{kv: kv, key: key}
}

func (r *Redis[T]) Load(ctx context.Context) ([]T, error) {
	raw, err := r.kv.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, pkgredis.ErrNil) {
			return nil, fmt.Errorf("%s: %w", r.key, ErrNotExist)
		}
		return nil, fmt.Errorf("get %s: %w", r.key, err)
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.key, err)
	}
	return items, nil
}

func (r *Redis[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.key, err)
	}
	if err := r.kv.Set(ctx, r.key, string(data), 0); err != nil {
		return fmt.Errorf("set %s: %w", r.key, err)
	}
	return nil
}
