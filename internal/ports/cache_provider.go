package ports

import (
	"context"
	"time"
)

// CacheProvider defines the contract for caching operations
type CacheProvider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context) error
}

// CacheMetrics exposes hit and miss counters of a cache provider
type CacheMetrics interface {
	GetStats() CacheStats
}

// CacheStats represents cache performance metrics
type CacheStats struct {
	Hits        int64
	Misses      int64
	TotalOps    int64
	HitRatio    float64
	LastUpdated time.Time
}

// ReadingCache keeps the most recent reading per location
type ReadingCache interface {
	GetLatest(ctx context.Context, locationID uint) (*ReadingData, error)
	SetLatest(ctx context.Context, reading *ReadingData, ttl time.Duration) error
	Invalidate(ctx context.Context, locationID uint) error
}
