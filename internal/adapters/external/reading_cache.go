package external

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/errors"
)

// ReadingCacheAdapter keeps the latest reading per location in a generic CacheProvider
type ReadingCacheAdapter struct {
	cache ports.CacheProvider
}

func NewReadingCacheAdapter(cache ports.CacheProvider) *ReadingCacheAdapter {
	return &ReadingCacheAdapter{cache: cache}
}

func latestReadingKey(locationID uint) string {
	return fmt.Sprintf("reading:latest:%d", locationID)
}

func (a *ReadingCacheAdapter) GetLatest(ctx context.Context, locationID uint) (*ports.ReadingData, error) {
	raw, err := a.cache.Get(ctx, latestReadingKey(locationID))
	if err != nil {
		return nil, err
	}

	var reading ports.ReadingData
	if err := json.Unmarshal(raw, &reading); err != nil {
		return nil, errors.Wrap(errors.ErrorTypeUnknown, "failed to decode cached reading", err)
	}
	return &reading, nil
}

func (a *ReadingCacheAdapter) SetLatest(ctx context.Context, reading *ports.ReadingData, ttl time.Duration) error {
	if reading == nil {
		return errors.NewValidationError("reading cannot be nil")
	}

	raw, err := json.Marshal(reading)
	if err != nil {
		return errors.Wrap(errors.ErrorTypeUnknown, "failed to encode reading", err)
	}
	return a.cache.Set(ctx, latestReadingKey(reading.LocationID), raw, ttl)
}

func (a *ReadingCacheAdapter) Invalidate(ctx context.Context, locationID uint) error {
	return a.cache.Delete(ctx, latestReadingKey(locationID))
}
