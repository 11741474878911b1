// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

/*
Package tracking implements the shipment use cases.

It handles the public tracking lookup (cache-aside over Postgres) and the
admin-side shipment lifecycle (creation, status progression, listing).

Architecture:

  - Service: Orchestrates business logic (Track, Create, AdvanceStatus, List).
  - Repository: Abstracted interface over the Postgres shipment tables.
  - Cache: Short-TTL Redis layer in front of the public lookup path.

The package guarantees that a shipment's history trail is append-only and
that terminal shipments never move again.
*/
package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/shipora/shipora/internal/platform/apperr"
	"github.com/shipora/shipora/pkg/pagination"
	"github.com/shipora/shipora/pkg/slug"
	"github.com/shipora/shipora/pkg/uuidv7"
)

// Service implements shipment tracking use cases.
type Service struct {
	shipmentRepository ShipmentRepository
	cache              TrackingCache
}

// NewService constructs a new tracking [Service] with necessary dependencies.
func NewService(shipmentRepo ShipmentRepository, cache TrackingCache) *Service {
	return &Service{
		shipmentRepository: shipmentRepo,
		cache:              cache,
	}
}

// # Public Lookup

/*
Track resolves a public tracking reference into a full shipment record.

Description: Cache-aside read path. A cache hit skips Postgres entirely; a
miss loads the record with its full history and back-fills the cache on a
best-effort basis. An unknown reference is the contract's 404
("Tracking ID not found") — never an internal error.

Parameters:
  - context: context.Context
  - trackingID: string

Returns:
  - *Shipment: Hydrated record with ordered history
  - err: NOT_FOUND or storage errors
*/
func (service *Service) Track(context context.Context, trackingID string) (*Shipment, error) {

	// Fast path: serve from cache when fresh.
	if cached, err := service.cache.Get(context, trackingID); err == nil {
		return cached, nil
	}

	shipment, err := service.shipmentRepository.FindByTrackingID(context, trackingID)
	if err != nil {
		return nil, err
	}

	// Back-fill is best-effort: a cache outage must not break lookups.
	_ = service.cache.Set(context, shipment, TrackingCacheTTL)

	return shipment, nil
}

// # Admin Lifecycle

// CreateInput holds the data required to register a new shipment.
type CreateInput struct {
	Origin            string
	Destination       string
	EstimatedDelivery *time.Time
}

/*
Create registers a new shipment in the pending state.

Description: Generates a fresh tracking reference, derives normalized
location codes from the free-text origin and destination, and persists the
shipment together with its initial "pending" history event.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Shipment: Created record including the initial event
  - err: Reference generation or persistence failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Shipment, error) {
	trackingID, err := NewTrackingID()
	if err != nil {
		return nil, fmt.Errorf("tracking_service_ref_failed: %w", err)
	}

	now := time.Now()
	shipment := &Shipment{
		ID:                uuidv7.New(),
		TrackingID:        trackingID,
		Origin:            input.Origin,
		Destination:       input.Destination,
		OriginCode:        slug.From(input.Origin),
		DestinationCode:   slug.From(input.Destination),
		CurrentLocation:   input.Origin,
		Status:            StatusPending,
		EstimatedDelivery: input.EstimatedDelivery,
		History: []HistoryEvent{{
			ID:        uuidv7.New(),
			Status:    StatusPending,
			Location:  input.Origin,
			Note:      "Shipment registered",
			Timestamp: now,
		}},
	}

	if err := service.shipmentRepository.Insert(context, shipment); err != nil {
		return nil, fmt.Errorf("tracking_service_create_failed: %w", err)
	}

	return shipment, nil
}

// AdvanceInput holds the data describing a status change.
type AdvanceInput struct {
	Status   Status
	Location string
	Note     string
}

/*
AdvanceStatus appends a status change to a shipment's history.

Description: Loads the current record, rejects moves out of terminal states,
persists the new event atomically with the updated current state, and drops
the stale cache entry.

Parameters:
  - context: context.Context
  - trackingID: string
  - input: AdvanceInput

Returns:
  - *Shipment: Record reflecting the new state, history included
  - err: NOT_FOUND, UNPROCESSABLE (terminal state), or storage errors
*/
func (service *Service) AdvanceStatus(context context.Context, trackingID string, input AdvanceInput) (*Shipment, error) {
	shipment, err := service.shipmentRepository.FindByTrackingID(context, trackingID)
	if err != nil {
		return nil, err
	}

	if shipment.Status.Terminal() {
		return nil, apperr.Unprocessable(fmt.Sprintf("Shipment is already %s and cannot advance", shipment.Status))
	}

	event := &HistoryEvent{
		ID:       uuidv7.New(),
		Status:   input.Status,
		Location: input.Location,
		Note:     input.Note,
	}

	if err := service.shipmentRepository.AppendEvent(context, shipment.ID, event); err != nil {
		return nil, fmt.Errorf("tracking_service_advance_failed: %w", err)
	}

	// Drop the cached snapshot so the public lookup sees the new state.
	_ = service.cache.Invalidate(context, trackingID)

	shipment.Status = event.Status
	shipment.CurrentLocation = event.Location
	shipment.UpdatedAt = event.Timestamp
	shipment.History = append(shipment.History, *event)

	return shipment, nil
}

/*
List returns a page of shipments for the admin console.

Parameters:
  - context: context.Context
  - status: Status (empty string means no filter)
  - params: pagination.Params

Returns:
  - []*Shipment: Page of shipments (History empty)
  - pagination.Meta: Paging metadata
  - err: Storage errors
*/
func (service *Service) List(context context.Context, status Status, params pagination.Params) ([]*Shipment, pagination.Meta, error) {
	shipments, err := service.shipmentRepository.List(context, status, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("tracking_service_list_failed: %w", err)
	}

	total, err := service.shipmentRepository.Count(context, status)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("tracking_service_count_failed: %w", err)
	}

	return shipments, pagination.NewMeta(params.Page, params.Limit, int(total)), nil
}
