// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

package dashboard

import (
	"net/http"

	"github.com/shipora/shipora/internal/platform/respond"
)

// Handler implements the dashboard HTTP endpoint.
type Handler struct {
	dashboardService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{dashboardService: service}
}

/*
Overview serves the admin console's aggregate snapshot.

GET /api/admin/dashboard

Description: Admin-only. Serves the cached snapshot when fresh; otherwise
assembles it from the shipment and principal stores.

Response:
  - 200: Overview: Status counts, totals, and recent shipments
  - 401/403: Missing authentication or insufficient role
*/
func (handler *Handler) Overview(writer http.ResponseWriter, request *http.Request) {
	overview, err := handler.dashboardService.Overview(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, overview)
}
