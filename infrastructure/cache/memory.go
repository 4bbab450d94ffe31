package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache é usado quando não há redis configurado
type MemoryCache struct {
	mu         sync.RWMutex
	ttl        time.Duration
	generation int64
	entries    map[string]memoryEntry
	now        func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (Entry, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	generation := c.generation
	c.mu.RUnlock()

	if !ok {
		return Entry{Generation: generation}, nil
	}
	if !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		if current, ok := c.entries[key]; ok && !c.now().Before(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return Entry{Generation: generation}, nil
	}

	return Entry{Value: entry.value, Found: true, Generation: generation}, nil
}

// Set descarta a escrita quando a geração já foi invalidada
func (c *MemoryCache) Set(_ context.Context, key string, generation int64, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		return nil
	}

	c.evictExpired()
	c.entries[key] = memoryEntry{value: stored, expiresAt: c.now().Add(c.ttl)}
	return nil
}

func (c *MemoryCache) InvalidateAll(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.entries = make(map[string]memoryEntry)
	return nil
}

// evictExpired deve ser chamado com o lock de escrita
func (c *MemoryCache) evictExpired() {
	now := c.now()
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}
