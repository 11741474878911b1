// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipora/shipora/internal/dashboard"
	"github.com/shipora/shipora/internal/platform/apperr"
	"github.com/shipora/shipora/internal/tracking"
)

// # Test Doubles

type fakeAggregator struct {
	counts     map[tracking.Status]int64
	recent     []*tracking.Shipment
	countCalls int
}

func (f *fakeAggregator) CountByStatus(_ context.Context) (map[tracking.Status]int64, error) {
	f.countCalls++
	return f.counts, nil
}

func (f *fakeAggregator) Recent(_ context.Context, limit int) ([]*tracking.Shipment, error) {
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

type fakeCounter struct{ users int64 }

func (f *fakeCounter) CountUsers(_ context.Context) (int64, error) { return f.users, nil }

type fakeOverviewCache struct {
	entry *dashboard.Overview
}

func (f *fakeOverviewCache) Get(_ context.Context) (*dashboard.Overview, error) {
	if f.entry == nil {
		return nil, apperr.NotFound("Cached overview")
	}
	return f.entry, nil
}

func (f *fakeOverviewCache) Set(_ context.Context, overview *dashboard.Overview, _ time.Duration) error {
	f.entry = overview
	return nil
}

// # Overview

func TestService_Overview_ZeroFillsStatuses(t *testing.T) {
	t.Parallel()

	aggregator := &fakeAggregator{
		counts: map[tracking.Status]int64{
			tracking.StatusPending:   2,
			tracking.StatusDelivered: 5,
		},
		recent: []*tracking.Shipment{{ID: "s1"}, {ID: "s2"}},
	}
	service := dashboard.NewService(aggregator, &fakeCounter{users: 7}, &fakeOverviewCache{})

	overview, err := service.Overview(context.Background())
	require.NoError(t, err)

	// Every lifecycle state is present, zeros included.
	assert.Len(t, overview.StatusCounts, len(tracking.AllStatuses))
	assert.Equal(t, int64(2), overview.StatusCounts[tracking.StatusPending])
	assert.Equal(t, int64(0), overview.StatusCounts[tracking.StatusInTransit])
	assert.Equal(t, int64(7), overview.TotalShipments)
	assert.Equal(t, int64(7), overview.TotalUsers)
	assert.Len(t, overview.RecentShipments, 2)
	assert.WithinDuration(t, time.Now(), overview.GeneratedAt, 5*time.Second)
}

func TestService_Overview_ServedFromCache(t *testing.T) {
	t.Parallel()

	aggregator := &fakeAggregator{counts: map[tracking.Status]int64{}}
	cache := &fakeOverviewCache{}
	service := dashboard.NewService(aggregator, &fakeCounter{}, cache)

	_, err := service.Overview(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, aggregator.countCalls)

	// Second call must be a cache hit.
	_, err = service.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, aggregator.countCalls, "cache hit must not touch the stores")
}
