// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

// Postgres-backed shipment store.
//
// # Architecture
//
// Implements [ShipmentRepository] over the shipping.shipment and
// shipping.shipment_event tables using the [pgxpool.Pool] connection manager.
//
// # Error Mapping
//
// pgx.ErrNoRows maps to the tracking contract's 404 ("Tracking ID not found")
// so storage details never leak to the client.
package tracking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shipora/shipora/internal/platform/apperr"
)

// # Shipment Repository

// PostgresShipmentRepository implements [ShipmentRepository] using pgx.
type PostgresShipmentRepository struct {
	pool *pgxpool.Pool
}

// NewShipmentRepository creates a new PostgreSQL implementation of [ShipmentRepository].
func NewShipmentRepository(pool *pgxpool.Pool) *PostgresShipmentRepository {
	return &PostgresShipmentRepository{pool: pool}
}

const shipmentColumns = `id, trackingid, origin, destination, origincode, destinationcode,
	currentlocation, status, estimateddelivery, createdat, updatedat`

/*
Insert persists a new shipment and its initial history event in one transaction.

Description: The shipment row and its first event must appear together or not
at all; a shipment without a history trail is unrepresentable.

Parameters:
  - context: context.Context
  - shipment: *Shipment (History must hold exactly the initial event)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresShipmentRepository) Insert(context context.Context, shipment *Shipment) error {
	const insertShipment = `
		INSERT INTO shipping.shipment (
			id, trackingid, origin, destination, origincode, destinationcode,
			currentlocation, status, estimateddelivery, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	const insertEvent = `
		INSERT INTO shipping.shipment_event (
			id, shipmentid, status, location, note, eventtime
		) VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	if shipment.CreatedAt.IsZero() {
		shipment.CreatedAt = now
	}
	shipment.UpdatedAt = now

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_shipment_repo_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	_, err = transaction.Exec(context, insertShipment,
		shipment.ID,
		shipment.TrackingID,
		shipment.Origin,
		shipment.Destination,
		shipment.OriginCode,
		shipment.DestinationCode,
		shipment.CurrentLocation,
		shipment.Status,
		shipment.EstimatedDelivery,
		shipment.CreatedAt,
		shipment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_shipment_repo_insert_failed: %w", err)
	}

	for i := range shipment.History {
		event := &shipment.History[i]
		event.ShipmentID = shipment.ID
		if event.Timestamp.IsZero() {
			event.Timestamp = now
		}

		_, err = transaction.Exec(context, insertEvent,
			event.ID,
			event.ShipmentID,
			event.Status,
			event.Location,
			event.Note,
			event.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("postgres_shipment_repo_insert_event_failed: %w", err)
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_shipment_repo_commit_failed: %w", err)
	}

	return nil
}

/*
FindByTrackingID retrieves a shipment and its full event trail.

Description: The public lookup path. History is ordered oldest first so the
client can render the trail without sorting.

Parameters:
  - context: context.Context
  - trackingID: string

Returns:
  - *Shipment: Hydrated entity with full history
  - error: apperr.NotFound("Tracking ID") or execution errors
*/
func (repository *PostgresShipmentRepository) FindByTrackingID(context context.Context, trackingID string) (*Shipment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM shipping.shipment
		WHERE trackingid = $1`, shipmentColumns)

	shipment := &Shipment{}
	err := repository.pool.QueryRow(context, query, trackingID).Scan(
		&shipment.ID,
		&shipment.TrackingID,
		&shipment.Origin,
		&shipment.Destination,
		&shipment.OriginCode,
		&shipment.DestinationCode,
		&shipment.CurrentLocation,
		&shipment.Status,
		&shipment.EstimatedDelivery,
		&shipment.CreatedAt,
		&shipment.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Tracking ID")
		}
		return nil, fmt.Errorf("postgres_shipment_repo_find_failed: %w", err)
	}

	const eventsQuery = `
		SELECT id, shipmentid, status, location, note, eventtime
		FROM shipping.shipment_event
		WHERE shipmentid = $1
		ORDER BY eventtime ASC, id ASC`

	rows, err := repository.pool.Query(context, eventsQuery, shipment.ID)
	if err != nil {
		return nil, fmt.Errorf("postgres_shipment_repo_events_failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		event := HistoryEvent{}
		if err := rows.Scan(
			&event.ID,
			&event.ShipmentID,
			&event.Status,
			&event.Location,
			&event.Note,
			&event.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("postgres_shipment_repo_events_scan_failed: %w", err)
		}
		shipment.History = append(shipment.History, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_shipment_repo_events_rows_failed: %w", err)
	}

	return shipment, nil
}

/*
AppendEvent records a status change atomically.

Description: Inserts the history event and updates the shipment's current
status, location, and updatedat inside one transaction.

Parameters:
  - context: context.Context
  - shipmentID: string
  - event: *HistoryEvent

Returns:
  - error: Persistence failures
*/
func (repository *PostgresShipmentRepository) AppendEvent(context context.Context, shipmentID string, event *HistoryEvent) error {
	const insertEvent = `
		INSERT INTO shipping.shipment_event (
			id, shipmentid, status, location, note, eventtime
		) VALUES ($1, $2, $3, $4, $5, $6)`

	const updateShipment = `
		UPDATE shipping.shipment
		SET status = $2, currentlocation = $3, updatedat = $4
		WHERE id = $1`

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.ShipmentID = shipmentID

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_shipment_repo_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	_, err = transaction.Exec(context, insertEvent,
		event.ID,
		event.ShipmentID,
		event.Status,
		event.Location,
		event.Note,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("postgres_shipment_repo_append_event_failed: %w", err)
	}

	_, err = transaction.Exec(context, updateShipment,
		shipmentID,
		event.Status,
		event.Location,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("postgres_shipment_repo_update_state_failed: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_shipment_repo_commit_failed: %w", err)
	}

	return nil
}

/*
List returns a page of shipments without their event trails.

Parameters:
  - context: context.Context
  - status: Status (empty string means no filter)
  - limit: int
  - offset: int

Returns:
  - []*Shipment: Hydrated entities (History empty)
  - error: Execution errors
*/
func (repository *PostgresShipmentRepository) List(context context.Context, status Status, limit, offset int) ([]*Shipment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM shipping.shipment
		WHERE ($1 = '' OR status = $1)
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`, shipmentColumns)

	rows, err := repository.pool.Query(context, query, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("postgres_shipment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	return scanShipments(rows, limit)
}

/*
Count returns the number of shipments matching the status filter.

Parameters:
  - context: context.Context
  - status: Status (empty string means no filter)

Returns:
  - int64: Row count
  - error: Execution errors
*/
func (repository *PostgresShipmentRepository) Count(context context.Context, status Status) (int64, error) {
	const query = `SELECT COUNT(*) FROM shipping.shipment WHERE ($1 = '' OR status = $1)`

	var total int64
	if err := repository.pool.QueryRow(context, query, string(status)).Scan(&total); err != nil {
		return 0, fmt.Errorf("postgres_shipment_repo_count_failed: %w", err)
	}

	return total, nil
}

/*
CountByStatus returns shipment totals grouped by lifecycle state.

Description: Feeds the dashboard overview. Statuses with zero shipments are
absent from the map; callers fill in the zeros.

Parameters:
  - context: context.Context

Returns:
  - map[Status]int64: Count per status
  - error: Execution errors
*/
func (repository *PostgresShipmentRepository) CountByStatus(context context.Context) (map[Status]int64, error) {
	const query = `SELECT status, COUNT(*) FROM shipping.shipment GROUP BY status`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_shipment_repo_count_by_status_failed: %w", err)
	}
	defer rows.Close()

	counts := make(map[Status]int64, len(AllStatuses))
	for rows.Next() {
		var status Status
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("postgres_shipment_repo_count_scan_failed: %w", err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_shipment_repo_count_rows_failed: %w", err)
	}

	return counts, nil
}

/*
Recent returns the most recently updated shipments without history.

Parameters:
  - context: context.Context
  - limit: int

Returns:
  - []*Shipment: Hydrated entities (History empty)
  - error: Execution errors
*/
func (repository *PostgresShipmentRepository) Recent(context context.Context, limit int) ([]*Shipment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM shipping.shipment
		ORDER BY updatedat DESC
		LIMIT $1`, shipmentColumns)

	rows, err := repository.pool.Query(context, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres_shipment_repo_recent_failed: %w", err)
	}
	defer rows.Close()

	return scanShipments(rows, limit)
}

// scanShipments drains a shipment row set into hydrated entities.
func scanShipments(rows pgx.Rows, capacityHint int) ([]*Shipment, error) {
	shipments := make([]*Shipment, 0, capacityHint)
	for rows.Next() {
		shipment := &Shipment{}
		if err := rows.Scan(
			&shipment.ID,
			&shipment.TrackingID,
			&shipment.Origin,
			&shipment.Destination,
			&shipment.OriginCode,
			&shipment.DestinationCode,
			&shipment.CurrentLocation,
			&shipment.Status,
			&shipment.EstimatedDelivery,
			&shipment.CreatedAt,
			&shipment.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_shipment_repo_scan_failed: %w", err)
		}
		shipments = append(shipments, shipment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_shipment_repo_rows_failed: %w", err)
	}

	return shipments, nil
}
