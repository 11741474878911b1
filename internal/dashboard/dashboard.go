// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

/*
Package dashboard assembles the admin overview: live aggregates over the
shipment and principal stores, cached briefly in Redis.

# Architecture

The dashboard owns no tables. It reads through the repositories of the
tracking and identity domains and shapes their aggregates into one response,
trading a short cache TTL for cheap repeated loads of the admin console.
*/
package dashboard

import (
	"time"

	"github.com/shipora/shipora/internal/tracking"
)

// # Overview Shape

// Overview is the admin console's landing payload.
type Overview struct {
	// StatusCounts always contains every lifecycle state, zeros included,
	// so the console never has to guess at missing keys.
	StatusCounts map[tracking.Status]int64 `json:"status_counts"`

	TotalShipments int64 `json:"total_shipments"`
	TotalUsers     int64 `json:"total_users"`

	// RecentShipments are the latest-updated parcels, history omitted.
	RecentShipments []*tracking.Shipment `json:"recent_shipments"`

	GeneratedAt time.Time `json:"generated_at"`
}

// # Cache Policy

const (
	// OverviewCacheTTL bounds dashboard staleness. The console polls, so a
	// long TTL would make status changes look stuck.
	OverviewCacheTTL = 30 * time.Second

	// RecentShipmentsLimit is how many latest-updated parcels the overview carries.
	RecentShipmentsLimit = 10
)
