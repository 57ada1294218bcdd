package service_test

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// memoryCache round-trips values through JSON like the Redis cache does.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deletes []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, value any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}

	return true, json.Unmarshal(data, value)
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.entries[key] = data
	c.mu.Unlock()

	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		delete(c.entries, key)
		c.deletes = append(c.deletes, key)
	}

	return nil
}

func (c *memoryCache) Close() error {
	return nil
}

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[key]

	return ok
}

func ptr[T any](v T) *T {
	return &v
}
