// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

package events

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/byfest/byfest/internal/catalog"
	"github.com/byfest/byfest/internal/platform/validate"
	"github.com/byfest/byfest/pkg/pointer"
	"github.com/byfest/byfest/pkg/slug"
	"github.com/byfest/byfest/pkg/uuidv7"
)

// # Service Layer

// SavedLookup resolves a visitor's saved-event set. The favorites domain
// implements it; the events service only needs the one read.
type SavedLookup interface {
	/*
		SavedSet returns every event id the visitor has saved.

		Parameters:
		  - context: context.Context
		  - visitorID: string

		Returns:
		  - map[string]struct{}: Saved event ids
		  - error: Cache retrieval failures
	*/
	SavedSet(context context.Context, visitorID string) (map[string]struct{}, error)
}

// Service orchestrates event discovery, submission, and moderation.
type Service struct {
	repo     Repository
	saved    SavedLookup
	logger   *slog.Logger
	pageSize int
}

// NewService constructs a new [Service].
//
// saved may be nil, in which case the favorites quick filter always fails
// closed (matches nothing).
func NewService(repo Repository, saved SavedLookup, logger *slog.Logger, pageSize int) *Service {
	return &Service{
		repo:     repo,
		saved:    saved,
		logger:   logger,
		pageSize: pageSize,
	}
}

// # Discovery

// BrowseInput carries one catalog request from the HTTP layer.
type BrowseInput struct {
	// Values are the raw filter-panel form values.
	Values url.Values

	// Query is the free-text search box content.
	Query string

	// Page is the requested 1-based page.
	Page int

	// VisitorID scopes the favorites quick filter; empty means anonymous.
	VisitorID string

	// IncludeArchived lifts the archived exclusion. Only moderation callers
	// may set it.
	IncludeArchived bool
}

/*
Browse executes the full catalog pipeline for one request.

Description: Fetches a fresh event snapshot, folds the raw form input into
filter criteria, and runs the pure engine over it. The visitor's saved set
is prefetched in one cache read so the favorites predicate stays a pure
in-memory lookup.

Parameters:
  - context: context.Context
  - in: BrowseInput

Returns:
  - catalog.QueryResult: Matched page, pagination, and picker options
  - error: Snapshot retrieval failures
*/
func (service *Service) Browse(context context.Context, in BrowseInput) (catalog.QueryResult, error) {
	snapshot, err := service.repo.Snapshot(context)
	if err != nil {
		return catalog.QueryResult{}, err
	}

	now := time.Now()
	helpers := service.helpersFor(context, in.VisitorID)
	filters := catalog.BuildFilters(in.Values, in.Query, helpers)

	// A search like "koncert aarhus" pre-selects the city filter when one of
	// its tokens names a known city and no explicit city filter is set.
	if filters.City == "" && in.Query != "" {
		cities := catalog.CityOptions(snapshot, now, helpers)
		filters.City = catalog.MatchCityFromQuery(in.Query, cities, helpers)

		// A query that is nothing but the city name becomes a pure city
		// filter; otherwise the remaining text still runs through search.
		if filters.City != "" && helpers.FoldCity(in.Query) == filters.City {
			filters.SearchQuery = ""
		}
	}

	return catalog.Run(catalog.QueryInput{
		Events:   snapshot,
		Filters:  filters,
		Now:      now,
		Page:     in.Page,
		PageSize: service.pageSize,
		Helpers:  helpers,
		Options:  catalog.MatchOptions{IncludeArchived: in.IncludeArchived},
	}), nil
}

/*
Options returns the tag and city picker lists without running any filter.

Parameters:
  - context: context.Context

Returns:
  - []catalog.Option: Tag options from the active set
  - []catalog.Option: City options from the active set
  - error: Snapshot retrieval failures
*/
func (service *Service) Options(context context.Context) ([]catalog.Option, []catalog.Option, error) {
	snapshot, err := service.repo.Snapshot(context)
	if err != nil {
		return nil, nil, err
	}

	helpers := catalog.DefaultHelpers()
	now := time.Now()
	active := catalog.ActiveEvents(snapshot, now, helpers)

	return catalog.AvailableTags(active, helpers), catalog.CityOptions(snapshot, now, helpers), nil
}

/*
Next returns the earliest upcoming published event.

Parameters:
  - context: context.Context

Returns:
  - *catalog.Event: The next event, or nil when nothing is upcoming
  - error: Snapshot retrieval failures
*/
func (service *Service) Next(context context.Context) (*catalog.Event, error) {
	snapshot, err := service.repo.Snapshot(context)
	if err != nil {
		return nil, err
	}

	next, ok := catalog.NextUpcoming(snapshot, time.Now(), catalog.DefaultHelpers())
	if !ok {
		return nil, nil
	}
	return &next, nil
}

/*
Get fetches a single event by UUID or URL slug.

Description: UUID-shaped identifiers resolve by primary key; anything else
resolves via the unique slug.

Parameters:
  - context: context.Context
  - identifier: string (UUID or slug)

Returns:
  - *catalog.Event: The hydrated event
  - error: apperr.NotFound when no match exists
*/
func (service *Service) Get(context context.Context, identifier string) (*catalog.Event, error) {
	if isUUID(identifier) {
		return service.repo.FindByID(context, identifier)
	}
	return service.repo.FindBySlug(context, identifier)
}

// # Submission

/*
Submit accepts a proposed event listing into the moderation queue.

Description: Validates the submission, assigns a UUIDv7 identity and a
slug derived from the title, and persists it as pending. Submitted events
never appear in the catalog until a moderator approves them.

Parameters:
  - context: context.Context
  - input: *Submission

Returns:
  - *catalog.Event: The stored pending event
  - error: Validation or persistence errors
*/
func (service *Service) Submit(context context.Context, input *Submission) (*catalog.Event, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 300)
	validator.Required(FieldStart, input.Start)
	validator.MaxLen(FieldDescription, input.Description, 5000)
	validator.MaxLen(FieldCity, input.City, 120)

	if input.PriceType != "" {
		validator.OneOf(FieldPriceType, input.PriceType, "free", "paid", "donation")
	}

	validator.Custom(FieldPriceMin, pointer.Val(input.PriceMin) < 0, "Must not be negative")
	if input.PriceMin != nil && input.PriceMax != nil {
		validator.Custom(FieldPriceMax, *input.PriceMax < *input.PriceMin, "Must not be below the minimum price")
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	event := &catalog.Event{
		ID:          uuidv7.New(),
		Slug:        slug.From(input.Title),
		Status:      catalog.StatusPending,
		Start:       input.Start,
		End:         input.End,
		City:        input.City,
		Venue:       input.Venue,
		Address:     input.Address,
		Format:      input.Format,
		PriceType:   input.PriceType,
		PriceMin:    input.PriceMin,
		PriceMax:    input.PriceMax,
		Title:       input.Title,
		Description: input.Description,
	}

	if err := service.repo.Create(context, event, input.Tags); err != nil {
		return nil, err
	}

	service.logger.Info("event_submitted",
		slog.String("event_id", event.ID),
		slog.String("title", event.Title),
	)

	return event, nil
}

// # Moderation

/*
ListPending returns one page of the moderation queue.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []catalog.Event: Pending submissions, oldest first
  - int: Total queue length
  - error: Retrieval failures
*/
func (service *Service) ListPending(context context.Context, limit, offset int) ([]catalog.Event, int, error) {
	return service.repo.ListPending(context, limit, offset)
}

// Approve publishes a pending event.
func (service *Service) Approve(context context.Context, id string) error {
	if err := service.repo.SetStatus(context, id, catalog.StatusPublished); err != nil {
		return err
	}
	service.logger.Info("event_approved", slog.String("event_id", id))
	return nil
}

// Reject declines a pending event.
func (service *Service) Reject(context context.Context, id string) error {
	if err := service.repo.SetStatus(context, id, catalog.StatusRejected); err != nil {
		return err
	}
	service.logger.Info("event_rejected", slog.String("event_id", id))
	return nil
}

// Archive retires a published event from the catalog.
func (service *Service) Archive(context context.Context, id string) error {
	if err := service.repo.SetArchived(context, id, true); err != nil {
		return err
	}
	service.logger.Info("event_archived", slog.String("event_id", id))
	return nil
}

// Unarchive restores an archived event to published.
func (service *Service) Unarchive(context context.Context, id string) error {
	if err := service.repo.SetArchived(context, id, false); err != nil {
		return err
	}
	service.logger.Info("event_unarchived", slog.String("event_id", id))
	return nil
}

// Delete soft-deletes an event.
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.SoftDelete(context, id); err != nil {
		return err
	}
	service.logger.Warn("event_deleted", slog.String("event_id", id))
	return nil
}

// # Archival

/*
ArchiveEnded archives every published event whose end (or start, when no end
is given) lies more than retention before now.

Description: Date parsing is fail-open and happens in Go, not SQL: events
without a parseable timestamp are never auto-archived. Called by the nightly
archival job.

Parameters:
  - context: context.Context
  - now: time.Time (Job reference instant)
  - retention: time.Duration (Grace period after the event ends)

Returns:
  - int64: Number of events archived
  - error: Snapshot or batch update failures
*/
func (service *Service) ArchiveEnded(context context.Context, now time.Time, retention time.Duration) (int64, error) {
	snapshot, err := service.repo.Snapshot(context)
	if err != nil {
		return 0, err
	}

	cutoff := now.Add(-retention)

	var ids []string
	for _, event := range snapshot {
		if event.Status != catalog.StatusPublished || event.IsArchived() {
			continue
		}
		if catalog.IsPast(event, cutoff) {
			ids = append(ids, event.ID)
		}
	}

	archived, err := service.repo.ArchiveByIDs(context, ids)
	if err != nil {
		return 0, err
	}

	if archived > 0 {
		service.logger.Info("events_auto_archived",
			slog.Int64("count", archived),
			slog.Time("cutoff", cutoff),
		)
	}

	return archived, nil
}

// # Internal Helpers

// helpersFor builds the helper bundle for one request, layering the
// visitor's saved set on top of the defaults. A failed or absent saved
// lookup leaves the favorites predicate failing closed.
func (service *Service) helpersFor(context context.Context, visitorID string) catalog.Helpers {
	helpers := catalog.DefaultHelpers()

	if service.saved == nil || visitorID == "" {
		return helpers
	}

	savedSet, err := service.saved.SavedSet(context, visitorID)
	if err != nil {
		service.logger.Warn("saved_set_unavailable",
			slog.String("visitor_id", visitorID),
			slog.Any("error", err),
		)
		return helpers
	}

	helpers.IsSaved = func(eventID string) bool {
		_, ok := savedSet[eventID]
		return ok
	}
	return helpers
}

// isUUID returns true if the string matches the standard UUID length.
func isUUID(s string) bool {
	return len(s) == 36
}
