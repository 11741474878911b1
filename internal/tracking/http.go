// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

/*
HTTP delivery layer for shipment tracking.

# Architecture

Two surfaces share this handler:
  - Public: the throttled tracking lookup, no authentication.
  - Admin: shipment creation, listing, and status progression, role-gated
    by the router.

This layer is strictly responsible for transport concerns (status codes,
headers, JSON).
*/
package tracking

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/shipora/shipora/internal/platform/request"
	"github.com/shipora/shipora/internal/platform/respond"
	"github.com/shipora/shipora/internal/platform/validate"
	"github.com/shipora/shipora/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements tracking-related HTTP endpoints.
type Handler struct {
	trackingService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{trackingService: service}
}

// Routes returns a [chi.Router] with the public tracking routes.
//
// # Endpoints
//   - GET /{trackingID} : Public shipment lookup.
//
// The caller mounts the per-IP rate limiter around this router; the lookup
// is the only throttled surface in the API.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/{trackingID}", handler.track)
	return router
}

// # Request Payloads

type createShipmentRequest struct {
	Origin            string     `json:"origin"`
	Destination       string     `json:"destination"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
}

type advanceStatusRequest struct {
	Status   string `json:"status"`
	Location string `json:"location"`
	Note     string `json:"note"`
}

/*
Track performs the public tracking lookup.

GET /api/tracking/{trackingID}

Description: Validates the reference format up front, then resolves it via
the cache-aside read path. A malformed reference never reaches storage.

Response:
  - 200: Shipment: Full record with ordered history
  - 400: VALIDATION_ERROR: Malformed tracking reference
  - 404: NOT_FOUND: "Tracking ID not found"
  - 429: TOO_MANY_REQUESTS: Per-IP rate limit exceeded
*/
func (handler *Handler) track(writer http.ResponseWriter, request *http.Request) {
	trackingID := requestutil.Param(request, "trackingID")

	validator := &validate.Validator{}
	validator.TrackingID(FieldTrackingID, trackingID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	shipment, err := handler.trackingService.Track(request.Context(), trackingID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, shipment)
}

/*
CreateShipment registers a new shipment.

POST /api/admin/shipments

Description: Admin-only. Generates the tracking reference server-side and
returns the full record including the initial pending event.

Request:
  - Body: createShipmentRequest (Origin, Destination, EstimatedDelivery?)

Response:
  - 201: Shipment: Created record
  - 400: VALIDATION_ERROR: Missing or oversized fields
  - 401/403: Missing authentication or insufficient role
*/
func (handler *Handler) CreateShipment(writer http.ResponseWriter, request *http.Request) {
	var input createShipmentRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldOrigin, input.Origin).
		MaxLen(FieldOrigin, input.Origin, LocationMaxLength).
		Required(FieldDestination, input.Destination).
		MaxLen(FieldDestination, input.Destination, LocationMaxLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	shipment, err := handler.trackingService.Create(request.Context(), CreateInput{
		Origin:            input.Origin,
		Destination:       input.Destination,
		EstimatedDelivery: input.EstimatedDelivery,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, shipment)
}

/*
ListShipments returns a page of shipments.

GET /api/admin/shipments?status=&page=&limit=

Description: Admin-only listing, newest first, optionally filtered by status.

Response:
  - 200: []Shipment + pagination meta
  - 400: VALIDATION_ERROR: Unknown status filter
  - 401/403: Missing authentication or insufficient role
*/
func (handler *Handler) ListShipments(writer http.ResponseWriter, request *http.Request) {
	statusFilter := Status(request.URL.Query().Get(FieldStatus))
	if statusFilter != "" && !statusFilter.Valid() {
		respond.Error(writer, request, validate.RequiredError(FieldStatus, "Unknown status filter"))
		return
	}

	params := pagination.FromRequest(request)

	shipments, meta, err := handler.trackingService.List(request.Context(), statusFilter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, shipments, meta)
}

/*
AdvanceStatus moves a shipment to its next lifecycle state.

PATCH /api/admin/shipments/{trackingID}/status

Description: Admin-only. Appends a history event and updates the current
state; shipments in a terminal state are rejected.

Request:
  - Body: advanceStatusRequest (Status, Location, Note?)

Response:
  - 200: Shipment: Record reflecting the new state
  - 400: VALIDATION_ERROR: Unknown status or missing location
  - 404: NOT_FOUND: "Tracking ID not found"
  - 422: UNPROCESSABLE: Shipment already delivered or failed
*/
func (handler *Handler) AdvanceStatus(writer http.ResponseWriter, request *http.Request) {
	trackingID := requestutil.Param(request, "trackingID")

	var input advanceStatusRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	allowed := make([]string, 0, len(AllStatuses))
	for _, status := range AllStatuses {
		allowed = append(allowed, string(status))
	}

	validator := &validate.Validator{}
	validator.TrackingID(FieldTrackingID, trackingID).
		Required(FieldStatus, input.Status).
		OneOf(FieldStatus, input.Status, allowed...).
		Required(FieldLocation, input.Location).
		MaxLen(FieldLocation, input.Location, LocationMaxLength).
		MaxLen(FieldNote, input.Note, NoteMaxLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	shipment, err := handler.trackingService.AdvanceStatus(request.Context(), trackingID, AdvanceInput{
		Status:   Status(input.Status),
		Location: input.Location,
		Note:     input.Note,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, shipment)
}

// AdminRoutes returns a [chi.Router] with the admin shipment routes.
//
// # Endpoints
//   - POST  /                       : Create a shipment.
//   - GET   /                       : Paginated listing.
//   - PATCH /{trackingID}/status    : Advance the lifecycle state.
//
// Role gating happens in the parent router; these routes assume an
// authenticated admin principal.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.CreateShipment)
	router.Get("/", handler.ListShipments)
	router.Patch("/{trackingID}/status", handler.AdvanceStatus)
	return router
}
