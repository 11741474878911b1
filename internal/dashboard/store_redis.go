// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

package dashboard

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

// OverviewCache defines the volatile cache contract for the dashboard.
type OverviewCache interface {

	/*
		Get returns the cached overview.

		Parameters:
		  - context: context.Context

		Returns:
		  - *Overview: Cached aggregate, or an error when absent
		  - error: apperr.NotFound on cache miss, or connectivity errors
	*/
	Get(context context.Context) (*Overview, error)

	/*
		Set stores the overview for the given TTL.

		Parameters:
		  - context: context.Context
		  - overview: *Overview
		  - ttl: time.Duration

		Returns:
		  - error: Storage failures
	*/
	Set(context context.Context, overview *Overview, ttl time.Duration) error
}

// RedisOverviewCache implements [OverviewCache] using Redis.
type RedisOverviewCache struct {
	client *redis.Client
}

// NewOverviewCache creates a new Redis-backed [OverviewCache].
func NewOverviewCache(client *redis.Client) *RedisOverviewCache {
	return &RedisOverviewCache{client: client}
}

// Get returns the cached overview, or apperr.NotFound on a miss.
func (cache *RedisOverviewCache) Get(context context.Context) (*Overview, error) {
	payload, err := cache.client.Get(context, constants.RedisPrefixDashboard).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Cached overview")
		}
		return nil, fmt.Errorf("redis_overview_cache_get_failed: %w", err)
	}

	overview := &Overview{}
	if err := json.Unmarshal(payload, overview); err != nil {
		// A corrupt entry behaves like a miss; it will be overwritten.
		return nil, apperr.NotFound("Cached overview")
	}

	return overview, nil
}

// Set stores the overview under the fixed dashboard key.
func (cache *RedisOverviewCache) Set(context context.Context, overview *Overview, ttl time.Duration) error {
	payload, err := json.Marshal(overview)
	if err != nil {
		return fmt.Errorf("redis_overview_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, constants.RedisPrefixDashboard, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_overview_cache_set_failed: %w", err)
	}

	return nil
}
