package memory

import (
	"context"
	"sync"

	"github.com/user/travel-deals-service/internal/entity"
	"github.com/user/travel-deals-service/internal/repository"
)

// TripCache is an in-process single-slot cache used when Redis is not configured.
type TripCache struct {
	mu   sync.RWMutex
	key  string
	plan *entity.TripPlan
}

func NewTripCache() *TripCache {
	return &TripCache{}
}

func (c *TripCache) Get(_ context.Context, key string) (*entity.TripPlan, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.plan == nil || c.key != key {
		return nil, repository.ErrCacheMiss
	}
	return c.plan, nil
}

func (c *TripCache) Set(_ context.Context, key string, plan *entity.TripPlan) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key, c.plan = key, plan
	return nil
}

func (c *TripCache) Latest(_ context.Context) (*entity.TripPlan, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.plan == nil {
		return nil, repository.ErrCacheMiss
	}
	return c.plan, nil
}
