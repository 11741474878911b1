// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shipora/shipora/internal/tracking"
)

// # Contracts & Types

// ShipmentAggregator is the slice of the shipment store the dashboard reads.
type ShipmentAggregator interface {
	CountByStatus(context context.Context) (map[tracking.Status]int64, error)
	Recent(context context.Context, limit int) ([]*tracking.Shipment, error)
}

// PrincipalCounter is the slice of the identity layer the dashboard reads.
type PrincipalCounter interface {
	CountUsers(context context.Context) (int64, error)
}

// Service assembles the admin overview.
type Service struct {
	shipments  ShipmentAggregator
	principals PrincipalCounter
	cache      OverviewCache
}

// NewService constructs a new dashboard [Service] with necessary dependencies.
func NewService(shipments ShipmentAggregator, principals PrincipalCounter, cache OverviewCache) *Service {
	return &Service{
		shipments:  shipments,
		principals: principals,
		cache:      cache,
	}
}

// # Overview Assembly

/*
Overview returns the admin console's aggregate snapshot.

Description: Cache-aside. A hit serves the cached snapshot unchanged; a miss
runs the status, recency, and principal aggregates against the stores, fills
in zero counts for absent statuses, and back-fills the cache best-effort.

Parameters:
  - context: context.Context

Returns:
  - *Overview: Aggregate snapshot
  - err: Storage errors from any of the underlying reads
*/
func (service *Service) Overview(context context.Context) (*Overview, error) {

	// Fast path: serve from cache when fresh.
	if cached, err := service.cache.Get(context); err == nil {
		return cached, nil
	}

	statusCounts, err := service.shipments.CountByStatus(context)
	if err != nil {
		return nil, fmt.Errorf("dashboard_service_status_counts_failed: %w", err)
	}

	// Zero-fill so every lifecycle state is present in the payload.
	counts := make(map[tracking.Status]int64, len(tracking.AllStatuses))
	var totalShipments int64
	for _, status := range tracking.AllStatuses {
		counts[status] = statusCounts[status]
		totalShipments += statusCounts[status]
	}

	recentShipments, err := service.shipments.Recent(context, RecentShipmentsLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard_service_recent_failed: %w", err)
	}

	totalUsers, err := service.principals.CountUsers(context)
	if err != nil {
		return nil, fmt.Errorf("dashboard_service_user_count_failed: %w", err)
	}

	overview := &Overview{
		StatusCounts:    counts,
		TotalShipments:  totalShipments,
		TotalUsers:      totalUsers,
		RecentShipments: recentShipments,
		GeneratedAt:     time.Now(),
	}

	// Back-fill is best-effort: a cache outage must not break the console.
	_ = service.cache.Set(context, overview, OverviewCacheTTL)

	return overview, nil
}
