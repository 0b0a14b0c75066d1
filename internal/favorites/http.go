// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

package favorites

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/byfest/byfest/internal/platform/constants"
	requestutil "github.com/byfest/byfest/internal/platform/request"
	"github.com/byfest/byfest/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for the saved-event list.
type Handler struct {
	service *Service
}

// NewHandler constructs a new favorites [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the favorites endpoints. All routes are
// public; the visitor id header is the only scoping.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Put("/{eventID}", handler.save)
	router.Delete("/{eventID}", handler.unsave)

	return router
}

/*
GET /api/v1/favorites.

Description: Returns the visitor's saved event ids.

Request:
  - X-Visitor-ID: header (required)

Response:
  - 200: []string: Saved event ids
  - 400: Validation: Missing visitor id
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	ids, err := handler.service.List(request.Context(), request.Header.Get(constants.HeaderXVisitorID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ids)
}

/*
PUT /api/v1/favorites/{eventID}.

Description: Adds an event to the visitor's saved list. Idempotent.

Response:
  - 204: No Content: Success
  - 400: Validation: Missing visitor id or malformed event id
*/
func (handler *Handler) save(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.Save(request.Context(),
		request.Header.Get(constants.HeaderXVisitorID),
		requestutil.ID(request, "eventID"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/favorites/{eventID}.

Description: Removes an event from the visitor's saved list. Idempotent.

Response:
  - 204: No Content: Success
  - 400: Validation: Missing visitor id or malformed event id
*/
func (handler *Handler) unsave(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.Unsave(request.Context(),
		request.Header.Get(constants.HeaderXVisitorID),
		requestutil.ID(request, "eventID"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
