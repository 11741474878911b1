// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

package tracking_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipora/shipora/internal/platform/apperr"
	"github.com/shipora/shipora/internal/tracking"
	"github.com/shipora/shipora/pkg/pagination"
)

// # Test Doubles

// fakeShipmentRepository is an in-memory ShipmentRepository for unit tests.
type fakeShipmentRepository struct {
	byTrackingID map[string]*tracking.Shipment
	findCalls    int
}

func newFakeShipmentRepository() *fakeShipmentRepository {
	return &fakeShipmentRepository{byTrackingID: make(map[string]*tracking.Shipment)}
}

func (f *fakeShipmentRepository) Insert(_ context.Context, shipment *tracking.Shipment) error {
	f.byTrackingID[shipment.TrackingID] = shipment
	return nil
}

func (f *fakeShipmentRepository) FindByTrackingID(_ context.Context, trackingID string) (*tracking.Shipment, error) {
	f.findCalls++
	shipment, found := f.byTrackingID[trackingID]
	if !found {
		return nil, apperr.NotFound("Tracking ID")
	}
	return shipment, nil
}

func (f *fakeShipmentRepository) AppendEvent(_ context.Context, shipmentID string, event *tracking.HistoryEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.ShipmentID = shipmentID
	for _, shipment := range f.byTrackingID {
		if shipment.ID == shipmentID {
			shipment.Status = event.Status
			shipment.CurrentLocation = event.Location
			shipment.History = append(shipment.History, *event)
			return nil
		}
	}
	return apperr.NotFound("Tracking ID")
}

func (f *fakeShipmentRepository) List(_ context.Context, status tracking.Status, limit, offset int) ([]*tracking.Shipment, error) {
	shipments := make([]*tracking.Shipment, 0)
	for _, shipment := range f.byTrackingID {
		if status == "" || shipment.Status == status {
			shipments = append(shipments, shipment)
		}
	}
	if offset >= len(shipments) {
		return nil, nil
	}
	end := offset + limit
	if end > len(shipments) {
		end = len(shipments)
	}
	return shipments[offset:end], nil
}

func (f *fakeShipmentRepository) Count(_ context.Context, status tracking.Status) (int64, error) {
	var total int64
	for _, shipment := range f.byTrackingID {
		if status == "" || shipment.Status == status {
			total++
		}
	}
	return total, nil
}

func (f *fakeShipmentRepository) CountByStatus(_ context.Context) (map[tracking.Status]int64, error) {
	counts := make(map[tracking.Status]int64)
	for _, shipment := range f.byTrackingID {
		counts[shipment.Status]++
	}
	return counts, nil
}

func (f *fakeShipmentRepository) Recent(_ context.Context, limit int) ([]*tracking.Shipment, error) {
	return f.List(context.Background(), "", limit, 0)
}

// fakeTrackingCache is an in-memory TrackingCache recording its traffic.
type fakeTrackingCache struct {
	entries     map[string]*tracking.Shipment
	invalidated []string
}

func newFakeTrackingCache() *fakeTrackingCache {
	return &fakeTrackingCache{entries: make(map[string]*tracking.Shipment)}
}

func (f *fakeTrackingCache) Get(_ context.Context, trackingID string) (*tracking.Shipment, error) {
	shipment, found := f.entries[trackingID]
	if !found {
		return nil, apperr.NotFound("Cached tracking record")
	}
	return shipment, nil
}

func (f *fakeTrackingCache) Set(_ context.Context, shipment *tracking.Shipment, _ time.Duration) error {
	f.entries[shipment.TrackingID] = shipment
	return nil
}

func (f *fakeTrackingCache) Invalidate(_ context.Context, trackingID string) error {
	f.invalidated = append(f.invalidated, trackingID)
	delete(f.entries, trackingID)
	return nil
}

// # Reference Generation

func TestNewTrackingID_Format(t *testing.T) {
	t.Parallel()

	pattern := regexp.MustCompile(`^SPR-[0-9A-HJKMNP-TV-Z]{10}$`)
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		trackingID, err := tracking.NewTrackingID()
		require.NoError(t, err)
		assert.Regexp(t, pattern, trackingID)
		assert.False(t, seen[trackingID], "references must not repeat")
		seen[trackingID] = true
	}
}

// # Lookup

func TestService_Track_CacheMissThenBackfill(t *testing.T) {
	t.Parallel()

	repository := newFakeShipmentRepository()
	cache := newFakeTrackingCache()
	service := tracking.NewService(repository, cache)

	created, err := service.Create(context.Background(), tracking.CreateInput{
		Origin: "Hanoi Hub", Destination: "Da Nang Depot",
	})
	require.NoError(t, err)

	// First lookup hits Postgres and back-fills the cache.
	first, err := service.Track(context.Background(), created.TrackingID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, first.ID)
	assert.Equal(t, 1, repository.findCalls)

	// Second lookup is served from cache.
	second, err := service.Track(context.Background(), created.TrackingID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, second.ID)
	assert.Equal(t, 1, repository.findCalls, "cache hit must not touch the repository")
}

func TestService_Track_UnknownReference(t *testing.T) {
	t.Parallel()

	service := tracking.NewService(newFakeShipmentRepository(), newFakeTrackingCache())

	_, err := service.Track(context.Background(), "SPR-ZZZZZZZZZZ")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
	assert.Equal(t, "Tracking ID not found", appError.Message)
	assert.Equal(t, 404, appError.HTTPStatus)
}

// # Lifecycle

func TestService_Create_InitialState(t *testing.T) {
	t.Parallel()

	service := tracking.NewService(newFakeShipmentRepository(), newFakeTrackingCache())

	shipment, err := service.Create(context.Background(), tracking.CreateInput{
		Origin: "Ho Chi Minh City", Destination: "Hải Phòng",
	})
	require.NoError(t, err)

	assert.Regexp(t, `^SPR-[0-9A-HJKMNP-TV-Z]{10}$`, shipment.TrackingID)
	assert.Equal(t, tracking.StatusPending, shipment.Status)
	assert.Equal(t, "Ho Chi Minh City", shipment.CurrentLocation)
	assert.Equal(t, "ho-chi-minh-city", shipment.OriginCode)
	assert.Equal(t, "hai-phong", shipment.DestinationCode, "location codes are ASCII-normalized")

	require.Len(t, shipment.History, 1)
	assert.Equal(t, tracking.StatusPending, shipment.History[0].Status)
}

func TestService_AdvanceStatus_AppendsAndInvalidates(t *testing.T) {
	t.Parallel()

	repository := newFakeShipmentRepository()
	cache := newFakeTrackingCache()
	service := tracking.NewService(repository, cache)

	created, err := service.Create(context.Background(), tracking.CreateInput{
		Origin: "Hanoi Hub", Destination: "Hue Depot",
	})
	require.NoError(t, err)

	// Warm the cache, then advance.
	_, err = service.Track(context.Background(), created.TrackingID)
	require.NoError(t, err)

	updated, err := service.AdvanceStatus(context.Background(), created.TrackingID, tracking.AdvanceInput{
		Status: tracking.StatusInTransit, Location: "Vinh Sorting Center", Note: "Loaded onto truck",
	})
	require.NoError(t, err)

	assert.Equal(t, tracking.StatusInTransit, updated.Status)
	assert.Equal(t, "Vinh Sorting Center", updated.CurrentLocation)
	require.Len(t, updated.History, 2)
	assert.Equal(t, tracking.StatusInTransit, updated.History[1].Status)

	// The stale cached snapshot must be gone.
	assert.Contains(t, cache.invalidated, created.TrackingID)
}

func TestService_AdvanceStatus_TerminalIsFinal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		terminal tracking.Status
	}{
		{"delivered", tracking.StatusDelivered},
		{"failed", tracking.StatusFailed},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repository := newFakeShipmentRepository()
			service := tracking.NewService(repository, newFakeTrackingCache())

			created, err := service.Create(context.Background(), tracking.CreateInput{
				Origin: "A", Destination: "B",
			})
			require.NoError(t, err)

			_, err = service.AdvanceStatus(context.Background(), created.TrackingID, tracking.AdvanceInput{
				Status: tt.terminal, Location: "Destination",
			})
			require.NoError(t, err)

			_, err = service.AdvanceStatus(context.Background(), created.TrackingID, tracking.AdvanceInput{
				Status: tracking.StatusInTransit, Location: "Anywhere",
			})
			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, "UNPROCESSABLE"))
		})
	}
}

// # Listing

func TestService_List_StatusFilter(t *testing.T) {
	t.Parallel()

	repository := newFakeShipmentRepository()
	service := tracking.NewService(repository, newFakeTrackingCache())

	for i := 0; i < 3; i++ {
		_, err := service.Create(context.Background(), tracking.CreateInput{Origin: "A", Destination: "B"})
		require.NoError(t, err)
	}
	delivered, err := service.Create(context.Background(), tracking.CreateInput{Origin: "A", Destination: "B"})
	require.NoError(t, err)
	_, err = service.AdvanceStatus(context.Background(), delivered.TrackingID, tracking.AdvanceInput{
		Status: tracking.StatusDelivered, Location: "B",
	})
	require.NoError(t, err)

	pending, meta, err := service.List(context.Background(), tracking.StatusPending, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, pending, 3)
	assert.Equal(t, 3, meta.Total)

	all, meta, err := service.List(context.Background(), "", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, 4, meta.Total)
}

// # Status Model

func TestStatus_TerminalAndValid(t *testing.T) {
	t.Parallel()

	assert.True(t, tracking.StatusDelivered.Terminal())
	assert.True(t, tracking.StatusFailed.Terminal())
	assert.False(t, tracking.StatusInTransit.Terminal())
	assert.True(t, tracking.StatusOutForDelivery.Valid())
	assert.False(t, tracking.Status("teleported").Valid())
}
