package cache

import (
	"context"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

const (
	ProductKeyPrefix  = "product"
	CustomerKeyPrefix = "customer"
	TaxRulesKey       = "tax_rules"
)

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

// Fetch reads key from c and falls back to load on a miss. A cache read or
// write failure is never fatal; load is the source of truth.
func Fetch[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var cached T

	if c != nil {
		if found, err := c.Get(ctx, key, &cached); err == nil && found {
			return cached, nil
		}
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if c != nil {
		_ = c.Set(ctx, key, value, ttl)
	}

	return value, nil
}
