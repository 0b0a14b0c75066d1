// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

package events

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/byfest/byfest/internal/catalog"
	"github.com/byfest/byfest/internal/platform/constants"
	"github.com/byfest/byfest/internal/platform/middleware"
	requestutil "github.com/byfest/byfest/internal/platform/request"
	"github.com/byfest/byfest/internal/platform/respond"
	"github.com/byfest/byfest/internal/platform/sec"
	"github.com/byfest/byfest/pkg/convert"
	"github.com/byfest/byfest/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for event discovery, submission, and
// moderation. It translates web requests into domain service calls.
type Handler struct {
	service *Service
}

// NewHandler constructs a new events [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the event domain's endpoints.
//
// # Routing Strategy
//
//   - Discovery (Public): Catalog browsing, option pickers, single lookups.
//   - Submission (Public): Anyone may propose an event; it lands pending.
//   - Moderation (Restricted): Requires [sec.RoleModerator] or above.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.browse)
	router.Get("/options", handler.options)
	router.Get("/next", handler.next)
	router.Get("/{identifier}", handler.get)

	// ## Public Submission
	router.Post("/", handler.submit)

	// ## Moderation (Restricted)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleModerator))

		admin.Get("/all", handler.browseAll)
		admin.Get("/pending", handler.listPending)
		admin.Patch("/{id}/approve", handler.approve)
		admin.Patch("/{id}/reject", handler.reject)
		admin.Patch("/{id}/archive", handler.archive)
		admin.Patch("/{id}/unarchive", handler.unarchive)
		admin.Delete("/{id}", handler.remove)
	})

	return router
}

// # Discovery Endpoints

// browseResponse is the catalog page plus the picker lists the filter panel
// renders alongside it.
type browseResponse struct {
	Items       []catalog.Event  `json:"items"`
	TagOptions  []catalog.Option `json:"tag_options"`
	CityOptions []catalog.Option `json:"city_options"`
}

/*
GET /api/v1/events.

Description: Runs the catalog pipeline over the current event snapshot.
All filter-panel fields arrive as query parameters.

Request:
  - q: string (Free-text search; may implicitly select a city)
  - date-from, date-to: string (Inclusive calendar-date bounds)
  - city, price, format: string (Exact-match criteria)
  - quick-today, quick-tomorrow, quick-weekend, quick-online,
    quick-favorites, show-past: flags
  - tags: []string (OR-matched labels; also accepts one comma-separated value)
  - page: int (1-based; out-of-range values are clamped)
  - X-Visitor-ID: header (Scopes the favorites quick filter)

Response:
  - 200: browseResponse: One catalog page with picker options
*/
func (handler *Handler) browse(writer http.ResponseWriter, request *http.Request) {
	handler.runBrowse(writer, request, false)
}

/*
GET /api/v1/events/all.

Description: Moderator view of the catalog with the archived exclusion
lifted. Accepts the same query parameters as the public listing.

Response:
  - 200: browseResponse: One catalog page, archived events included
  - 401/403: Authentication or role failure
*/
func (handler *Handler) browseAll(writer http.ResponseWriter, request *http.Request) {
	handler.runBrowse(writer, request, true)
}

// runBrowse executes the catalog pipeline for both the public and the
// moderator listing; includeArchived is only ever true behind the role gate.
func (handler *Handler) runBrowse(writer http.ResponseWriter, request *http.Request, includeArchived bool) {
	queryParams := request.URL.Query()

	page := convert.ToIntD(queryParams.Get("page"), 1)
	if page < 1 {
		page = 1
	}

	result, err := handler.service.Browse(request.Context(), BrowseInput{
		Values:          queryParams,
		Query:           queryParams.Get("q"),
		Page:            page,
		VisitorID:       request.Header.Get(constants.HeaderXVisitorID),
		IncludeArchived: includeArchived,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, browseResponse{
		Items:       result.Items,
		TagOptions:  result.TagOptions,
		CityOptions: result.CityOptions,
	}, pagination.Meta{
		Page:       result.CurrentPage,
		Limit:      handler.service.pageSize,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	})
}

// optionsResponse carries the filter-panel picker lists.
type optionsResponse struct {
	Tags   []catalog.Option `json:"tags"`
	Cities []catalog.Option `json:"cities"`
}

/*
GET /api/v1/events/options.

Description: Returns the tag and city picker lists derived from the active
dataset, independent of any filter criteria.

Response:
  - 200: optionsResponse
*/
func (handler *Handler) options(writer http.ResponseWriter, request *http.Request) {
	tags, cities, err := handler.service.Options(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, optionsResponse{Tags: tags, Cities: cities})
}

/*
GET /api/v1/events/next.

Description: Returns the earliest upcoming published event, independent of
the visitor's browse mode.

Response:
  - 200: Event: The next event, or null when nothing is upcoming
*/
func (handler *Handler) next(writer http.ResponseWriter, request *http.Request) {
	next, err := handler.service.Next(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, next)
}

/*
GET /api/v1/events/{identifier}.

Description: Retrieves one event by UUID or URL slug. UUID lookups take
precedence.

Request:
  - identifier: string (UUID or slug)

Response:
  - 200: Event: Success
  - 404: ErrNotFound: Event not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.ID(request, "identifier")

	event, err := handler.service.Get(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, event)
}

// # Submission Endpoint

/*
POST /api/v1/events.

Description: Accepts a proposed event listing. The submission enters the
moderation queue as pending and is invisible in the catalog until approved.

Request (Body):
  - Submission: JSON object

Response:
  - 201: Event: The stored pending event
  - 400: ErrInvalidJSON/Validation: Invalid input data
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var input Submission
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	event, err := handler.service.Submit(request.Context(), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, event)
}

// # Moderation Endpoints

/*
GET /api/v1/events/pending.

Description: Returns one page of the moderation queue, oldest first.

Request:
  - limit: int
  - page: int

Response:
  - 200: []Event: Pending submissions with pagination metadata
  - 401/403: Authentication or role failure
*/
func (handler *Handler) listPending(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	pending, total, err := handler.service.ListPending(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, pending, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
PATCH /api/v1/events/{id}/approve.

Description: Publishes a pending event into the catalog.

Response:
  - 204: No Content: Success
  - 404: ErrNotFound: Event not found
*/
func (handler *Handler) approve(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Approve(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
PATCH /api/v1/events/{id}/reject.

Description: Declines a pending event.

Response:
  - 204: No Content: Success
  - 404: ErrNotFound: Event not found
*/
func (handler *Handler) reject(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Reject(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
PATCH /api/v1/events/{id}/archive.

Description: Retires a published event from the catalog.

Response:
  - 204: No Content: Success
  - 404: ErrNotFound: Event not found
*/
func (handler *Handler) archive(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Archive(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
PATCH /api/v1/events/{id}/unarchive.

Description: Restores an archived event to published.

Response:
  - 204: No Content: Success
  - 404: ErrNotFound: Event not found
*/
func (handler *Handler) unarchive(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Unarchive(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
DELETE /api/v1/events/{id}.

Description: Soft-deletes an event. The record stays in the database for
auditing but disappears from every read path.

Response:
  - 204: No Content: Success
  - 404: ErrNotFound: Event not found
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
