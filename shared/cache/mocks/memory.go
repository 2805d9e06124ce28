package mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sync"

	"bistro/shared/cache"
)

type memoryCache struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemory returns a RedisCache kept in process memory. Expiry is ignored.
func NewMemory() cache.RedisCache {
	return &memoryCache{values: map[string][]byte{}}
}

func (m *memoryCache) Save(_ context.Context, key string, value any, _ int) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = payload

	return nil
}

func (m *memoryCache) Get(_ context.Context, key string, value any) error {
	m.mu.Lock()
	payload, ok := m.values[key]
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("failed to get cache value: %w", cache.Nil)
	}

	return json.Unmarshal(payload, value) //nolint:wrapcheck
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)

	return nil
}

func (m *memoryCache) Clear(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.values {
		if matched, _ := path.Match(pattern, key); matched {
			delete(m.values, key)
		}
	}

	return nil
}
