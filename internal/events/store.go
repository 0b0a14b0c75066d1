// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

package events

import (
	"context"

	"github.com/byfest/byfest/internal/catalog"
)

// # Event Data Access

// Repository defines the data access contract for the events domain.
type Repository interface {

	/*
		Snapshot returns every non-deleted event with its tags hydrated.

		The catalog engine filters in memory, so this is the single read
		the discovery path performs per request.

		Parameters:
		  - context: context.Context

		Returns:
		  - []catalog.Event: All event records, tags included
		  - error: Database retrieval failures
	*/
	Snapshot(context context.Context) ([]catalog.Event, error)

	/*
		FindByID returns the event with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *catalog.Event: The hydrated event record
		  - error: apperr.NotFound if missing or soft-deleted
	*/
	FindByID(context context.Context, id string) (*catalog.Event, error)

	/*
		FindBySlug returns the event matching the unique URL slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *catalog.Event: The hydrated event record
		  - error: apperr.NotFound if missing
	*/
	FindBySlug(context context.Context, slug string) (*catalog.Event, error)

	/*
		Create persists a new event and resolves its tag labels.

		Tags are upserted by label; unknown labels become pending tag rows.

		Parameters:
		  - context: context.Context
		  - event: *catalog.Event
		  - tagLabels: []string (Plain labels from the submission)

		Returns:
		  - error: Storage or constraint failures
	*/
	Create(context context.Context, event *catalog.Event, tagLabels []string) error

	/*
		ListPending returns a paginated slice of the moderation queue and the
		total queue length.

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []catalog.Event: Pending submissions, oldest first
		  - int: Total pending count
		  - error: Database retrieval failures
	*/
	ListPending(context context.Context, limit, offset int) ([]catalog.Event, int, error)

	/*
		SetStatus transitions an event's moderation state.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)
		  - status: catalog.Status

		Returns:
		  - error: apperr.NotFound if the event does not exist
	*/
	SetStatus(context context.Context, id string, status catalog.Status) error

	/*
		SetArchived flips the archived flag and aligns the status column.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)
		  - archived: bool

		Returns:
		  - error: apperr.NotFound if the event does not exist
	*/
	SetArchived(context context.Context, id string, archived bool) error

	/*
		ArchiveByIDs archives a batch of events in one statement.

		Parameters:
		  - context: context.Context
		  - ids: []string (UUIDs selected by the archival job)

		Returns:
		  - int64: Number of rows actually archived
		  - error: Execution failures
	*/
	ArchiveByIDs(context context.Context, ids []string) (int64, error)

	/*
		SoftDelete hides an event without physical row removal.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - error: apperr.NotFound if missing or already deleted
	*/
	SoftDelete(context context.Context, id string) error
}
