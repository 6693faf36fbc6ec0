package external

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/errors"
)

// Cache types accepted by NewCacheProvider
const (
	CacheTypeMemory = "memory"
	CacheTypeRedis  = "redis"
)

// NewCacheProvider builds the cache backend selected by cfg.Type
func NewCacheProvider(ctx context.Context, cfg ports.CacheConfig, clock clockwork.Clock) (ports.CacheProvider, error) {
	switch cfg.Type {
	case CacheTypeMemory, "":
		return NewMemoryCacheProvider(clock), nil
	case CacheTypeRedis:
		return NewRedisCacheProviderAdapter(ctx, cfg.Redis)
	default:
		return nil, errors.NewConfigurationError(fmt.Sprintf("unsupported cache type: %s", cfg.Type), nil)
	}
}
