// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shipora/shipora/internal/platform/apperr"
	"github.com/shipora/shipora/internal/platform/constants"
)

// RedisTrackingCache implements [TrackingCache] using Redis.
//
// Records are stored as JSON blobs under tracking:record:<trackingID> with a
// short TTL, absorbing the public lookup traffic that would otherwise hammer
// Postgres for the same parcel.
type RedisTrackingCache struct {
	client *redis.Client
}

// NewTrackingCache creates a new Redis-backed [TrackingCache].
func NewTrackingCache(client *redis.Client) *RedisTrackingCache {
	return &RedisTrackingCache{client: client}
}

/*
Get returns the cached record for a tracking reference.

Description: Returns apperr.NotFound on a cache miss; the service treats that
as "consult Postgres", never as a client-visible 404.

Parameters:
  - context: context.Context
  - trackingID: string

Returns:
  - *Shipment: Cached entity
  - error: apperr.NotFound on miss, or connectivity/decoding errors
*/
func (cache *RedisTrackingCache) Get(context context.Context, trackingID string) (*Shipment, error) {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixTracking, trackingID)

	payload, err := cache.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Cached tracking record")
		}
		return nil, fmt.Errorf("redis_tracking_cache_get_failed: %w", err)
	}

	shipment := &Shipment{}
	if err := json.Unmarshal(payload, shipment); err != nil {
		// A corrupt entry behaves like a miss; it will be overwritten.
		return nil, apperr.NotFound("Cached tracking record")
	}

	return shipment, nil
}

/*
Set stores a record under its tracking reference.

Parameters:
  - context: context.Context
  - shipment: *Shipment
  - ttl: time.Duration

Returns:
  - error: Encoding or storage failures
*/
func (cache *RedisTrackingCache) Set(context context.Context, shipment *Shipment, ttl time.Duration) error {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixTracking, shipment.TrackingID)

	payload, err := json.Marshal(shipment)
	if err != nil {
		return fmt.Errorf("redis_tracking_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_tracking_cache_set_failed: %w", err)
	}

	return nil
}

/*
Invalidate drops the cached record for a tracking reference.

Description: Called after every status change so the public lookup never
serves a state older than the cache TTL allows.

Parameters:
  - context: context.Context
  - trackingID: string

Returns:
  - error: Deletion failures
*/
func (cache *RedisTrackingCache) Invalidate(context context.Context, trackingID string) error {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixTracking, trackingID)

	if err := cache.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_tracking_cache_delete_failed: %w", err)
	}

	return nil
}
