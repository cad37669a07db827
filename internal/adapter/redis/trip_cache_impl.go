package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/user/travel-deals-service/internal/entity"
	"github.com/user/travel-deals-service/internal/repository"
)

const latestTripKey = "trips:latest"

type cachedTrip struct {
	Key  string           `json:"key"`
	Plan *entity.TripPlan `json:"plan"`
}

// TripCacheImpl keeps the latest trip plan in a single Redis key.
type TripCacheImpl struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTripCache creates a new instance of TripCacheImpl. A zero ttl keeps entries until replaced.
func NewTripCache(client *redis.Client, ttl time.Duration) *TripCacheImpl {
	return &TripCacheImpl{client: client, ttl: ttl}
}

// Get returns the cached plan when it was stored under key.
func (r *TripCacheImpl) Get(ctx context.Context, key string) (*entity.TripPlan, error) {
	entry, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if entry.Key != key {
		return nil, repository.ErrCacheMiss
	}
	return entry.Plan, nil
}

// Set replaces whatever plan was cached before.
func (r *TripCacheImpl) Set(ctx context.Context, key string, plan *entity.TripPlan) error {
	raw, err := json.Marshal(cachedTrip{Key: key, Plan: plan})
	if err != nil {
		return fmt.Errorf("encode trip plan: %w", err)
	}
	// SET with expiry is atomic; ttl 0 means no expiry.
	return r.client.Set(ctx, latestTripKey, raw, r.ttl).Err()
}

func (r *TripCacheImpl) Latest(ctx context.Context) (*entity.TripPlan, error) {
	entry, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return entry.Plan, nil
}

func (r *TripCacheImpl) load(ctx context.Context) (*cachedTrip, error) {
	raw, err := r.client.Get(ctx, latestTripKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrCacheMiss
		}
		return nil, fmt.Errorf("read trip cache: %w", err)
	}
	var entry cachedTrip
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("decode trip cache: %w", err)
	}
	return &entry, nil
}
