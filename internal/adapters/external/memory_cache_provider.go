package external

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/errors"
)

// MemoryCacheProvider is a process-local CacheProvider with per-key expiry
type MemoryCacheProvider struct {
	mu      sync.RWMutex
	items   map[string]memoryCacheItem
	clock   clockwork.Clock
	counter hitCounter
}

type memoryCacheItem struct {
	data      []byte
	expiresAt time.Time
}

func NewMemoryCacheProvider(clock clockwork.Clock) *MemoryCacheProvider {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryCacheProvider{
		items: make(map[string]memoryCacheItem),
		clock: clock,
	}
}

func (c *MemoryCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.NewValidationError("cache key cannot be empty")
	}

	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || !c.clock.Now().Before(item.expiresAt) {
		c.counter.miss()
		return nil, errors.NewNotFoundError("cache miss")
	}

	c.counter.hit()
	return item.data, nil
}

func (c *MemoryCacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := validateSet(key, value, ttl); err != nil {
		return err
	}

	c.mu.Lock()
	c.items[key] = memoryCacheItem{data: value, expiresAt: c.clock.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCacheProvider) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}

	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
	return nil
}

func (c *MemoryCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.NewValidationError("cache key cannot be empty")
	}

	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()

	return ok && c.clock.Now().Before(item.expiresAt), nil
}

func (c *MemoryCacheProvider) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.items = make(map[string]memoryCacheItem)
	c.mu.Unlock()
	return nil
}

func (c *MemoryCacheProvider) GetStats() ports.CacheStats {
	return c.counter.stats(c.clock.Now())
}

func validateSet(key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}
	if value == nil {
		return errors.NewValidationError("cache value cannot be nil")
	}
	if ttl <= 0 {
		return errors.NewValidationError("cache TTL must be positive")
	}
	return nil
}
