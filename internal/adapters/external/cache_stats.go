package external

import (
	"sync/atomic"
	"time"

	"weathertracker.app/internal/ports"
)

// hitCounter tracks cache hits and misses for health reporting
type hitCounter struct {
	hits   atomic.Int64
	misses atomic.Int64
}

func (c *hitCounter) hit() { c.hits.Add(1) }
func (c *hitCounter) miss() { c.misses.Add(1) }

func (c *hitCounter) stats(now time.Time) ports.CacheStats {
	hits, misses := c.hits.Load(), c.misses.Load()
	total := hits + misses

	var ratio float64
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return ports.CacheStats{Hits: hits, Misses: misses, TotalOps: total, HitRatio: ratio, LastUpdated: now}
}
