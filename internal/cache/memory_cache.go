package cache

import (
	"context"
	"sync"
	"time"

	"github.com/vanshika/fintrace/backend/internal/domain"
)

type entry struct {
	result  domain.AnalysisResult
	expires time.Time
}

// MemoryCache is the in-memory ReportCache used for tests and deployments
// with no Redis configured (REDIS_ADDR unset).
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryCache constructs an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (domain.AnalysisResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.AnalysisResult{}, false, nil
	}
	if !e.expires.IsZero() && c.now().After(e.expires) {
		delete(c.entries, key)
		return domain.AnalysisResult{}, false, nil
	}
	return e.result, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, result domain.AnalysisResult, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expires time.Time
	if ttl > 0 {
		expires = c.now().Add(ttl)
	}
	c.entries[key] = entry{result: result, expires: expires}
	return nil
}

var _ ReportCache = (*MemoryCache)(nil)
