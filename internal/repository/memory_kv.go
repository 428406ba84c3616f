package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/patrickmn/go-cache"
)

// MemoryKV is an in-process KVStore. Entries never expire.
type MemoryKV struct {
	cache *cache.Cache
	// mu serializes Update across every store sharing this instance.
	mu sync.Mutex
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{cache: cache.New(cache.NoExpiration, 0)}
}

// Get returns a copy of the stored value.
func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, found := m.cache.Get(key)
	if !found {
		return nil, false, nil
	}
	stored := v.([]byte)
	out := make([]byte, len(stored))
	copy(out, stored)
	return out, true, nil
}

// Set stores a copy of value.
func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	m.cache.Set(key, stored, cache.NoExpiration)
	return nil
}

// Delete removes key. Missing keys are ignored.
func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}

// Keys lists the keys starting with prefix in lexical order.
func (m *MemoryKV) Keys(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	for key := range m.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Update applies fn under the instance lock.
func (m *MemoryKV) Update(ctx context.Context, key string, fn UpdateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, found, _ := m.Get(ctx, key)
	value, batch, err := fn(current, found)
	if err != nil {
		return err
	}

	for k, v := range batch.Sets {
		m.Set(ctx, k, v)
	}
	for _, k := range batch.Deletes {
		m.Delete(ctx, k)
	}
	if value == nil {
		return m.Delete(ctx, key)
	}
	return m.Set(ctx, key, value)
}
