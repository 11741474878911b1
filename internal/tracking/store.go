// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

package tracking

import (
	"context"
	"time"
)

// # Shipment Data Access

// ShipmentRepository defines the data access contract for shipments and
// their event trails.
type ShipmentRepository interface {

	/*
		Insert persists a new shipment together with its initial history event.

		Parameters:
		  - context: context.Context
		  - shipment: *Shipment (History must hold exactly the initial event)

		Returns:
		  - error: Persistence failures
	*/
	Insert(context context.Context, shipment *Shipment) error

	/*
		FindByTrackingID returns the shipment with the given public reference,
		history included and ordered oldest first.

		Parameters:
		  - context: context.Context
		  - trackingID: string

		Returns:
		  - *Shipment: Hydrated entity with full history
		  - error: Database retrieval failures
	*/
	FindByTrackingID(context context.Context, trackingID string) (*Shipment, error)

	/*
		AppendEvent records a status change: a new history event plus the
		shipment's updated current state, atomically.

		Parameters:
		  - context: context.Context
		  - shipmentID: string
		  - event: *HistoryEvent

		Returns:
		  - error: Persistence failures
	*/
	AppendEvent(context context.Context, shipmentID string, event *HistoryEvent) error

	/*
		List returns a page of shipments without history, newest first,
		optionally filtered by status.

		Parameters:
		  - context: context.Context
		  - status: Status (empty string means no filter)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Shipment: Hydrated entities (History empty)
		  - error: Database retrieval failures
	*/
	List(context context.Context, status Status, limit, offset int) ([]*Shipment, error)

	/*
		Count returns the number of shipments matching the status filter.

		Parameters:
		  - context: context.Context
		  - status: Status (empty string means no filter)

		Returns:
		  - int64: Row count
		  - error: Database retrieval failures
	*/
	Count(context context.Context, status Status) (int64, error)

	/*
		CountByStatus returns shipment totals grouped by lifecycle state.

		Parameters:
		  - context: context.Context

		Returns:
		  - map[Status]int64: Count per status (absent statuses omitted)
		  - error: Database retrieval failures
	*/
	CountByStatus(context context.Context) (map[Status]int64, error)

	/*
		Recent returns the most recently updated shipments without history.

		Parameters:
		  - context: context.Context
		  - limit: int

		Returns:
		  - []*Shipment: Hydrated entities (History empty)
		  - error: Database retrieval failures
	*/
	Recent(context context.Context, limit int) ([]*Shipment, error)
}

// # Tracking Cache

// TrackingCache defines the volatile cache contract for tracking lookups.
type TrackingCache interface {

	/*
		Get returns the cached record for a tracking reference.

		Parameters:
		  - context: context.Context
		  - trackingID: string

		Returns:
		  - *Shipment: Cached entity, or an error when absent
		  - error: apperr.NotFound on cache miss, or connectivity errors
	*/
	Get(context context.Context, trackingID string) (*Shipment, error)

	/*
		Set stores a record under its tracking reference for the given TTL.

		Parameters:
		  - context: context.Context
		  - shipment: *Shipment
		  - ttl: time.Duration

		Returns:
		  - error: Storage failures
	*/
	Set(context context.Context, shipment *Shipment, ttl time.Duration) error

	/*
		Invalidate drops the cached record for a tracking reference.

		Parameters:
		  - context: context.Context
		  - trackingID: string

		Returns:
		  - error: Deletion failures
	*/
	Invalidate(context context.Context, trackingID string) error
}
