// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

/*
PostgreSQL implementation of the events repository.

It leans on the same Postgres features the rest of the platform uses:
  - JSON Aggregation: Tags are folded into each event row via json_agg,
    avoiding N+1 lookups on snapshot reads.
  - Window Functions: The moderation queue uses COUNT(*) OVER() to return
    page and total in a single round-trip.
  - ACID Transactions: Submissions insert the event row, upsert tags by
    label, and link the junction table atomically.
*/
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/byfest/byfest/internal/catalog"
	"github.com/byfest/byfest/internal/platform/apperr"
	"github.com/byfest/byfest/internal/platform/database/schema"
	"github.com/byfest/byfest/internal/platform/dberr"
	"github.com/byfest/byfest/pkg/uuidv7"
)

// # PostgreSQL Repository

// repository implements the [Repository] interface using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed event store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// selectColumns is the shared projection for event reads: every event column
// plus the aggregated tags JSON.
func selectColumns() string {
	e := schema.EventsEvent
	t := schema.EventsTag
	et := schema.EventsEventTag

	return fmt.Sprintf(`
		e.%s, e.%s, e.%s, e.%s, e.%s, e.%s,
		e.%s, e.%s, e.%s, e.%s, e.%s, e.%s, e.%s,
		e.%s, e.%s, e.%s, e.%s,
		COALESCE((
			SELECT json_agg(json_build_object('label', t.%s, 'status', t.%s))
			FROM %s t
			JOIN %s et ON t.%s = et.%s
			WHERE et.%s = e.%s
		), '[]') AS tags`,
		e.ID, e.Slug, e.Status, e.Archived, e.StartsAt, e.EndsAt,
		e.City, e.Venue, e.Address, e.Format, e.PriceType, e.PriceMin, e.PriceMax,
		e.Title, e.Description, e.CreatedAt, e.UpdatedAt,
		t.Label, t.Status,
		t.Table,
		et.Table, t.ID, et.TagID,
		et.EventID, e.ID,
	)
}

// scanEvent maps one projected row onto a [catalog.Event], decoding the
// aggregated tags JSON. extra receives trailing columns (e.g. the window
// function total) appended after the shared projection.
func scanEvent(row pgx.Row, extra ...any) (catalog.Event, error) {
	var event catalog.Event
	var tagsJSON []byte

	dest := []any{
		&event.ID, &event.Slug, &event.Status, &event.Archived, &event.Start, &event.End,
		&event.City, &event.Venue, &event.Address, &event.Format, &event.PriceType, &event.PriceMin, &event.PriceMax,
		&event.Title, &event.Description, &event.CreatedAt, &event.UpdatedAt,
		&tagsJSON,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return catalog.Event{}, err
	}

	if err := json.Unmarshal(tagsJSON, &event.Tags); err != nil {
		return catalog.Event{}, fmt.Errorf("postgres: failed to unmarshal tags: %w", err)
	}

	return event, nil
}

/*
Snapshot returns every non-deleted event with tags hydrated in one query.

Description: The discovery path filters in memory, so this read carries the
whole table minus soft-deleted rows. Tags come back as a JSON array per row
via json_agg, keeping the query a single round-trip regardless of tag counts.

Parameters:
  - context: context.Context

Returns:
  - []catalog.Event: All event records, creation order
  - error: Database execution errors
*/
func (repository *repository) Snapshot(context context.Context) ([]catalog.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s e WHERE e.%s IS NULL ORDER BY e.%s`,
		selectColumns(),
		schema.EventsEvent.Table,
		schema.EventsEvent.DeletedAt,
		schema.EventsEvent.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to snapshot events: %w", err)
	}
	defer rows.Close()

	var events []catalog.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

/*
FindByID retrieves an event record by its primary key.

Parameters:
  - context: context.Context
  - id: string (UUID primary key)

Returns:
  - *catalog.Event: The hydrated event, tags included
  - error: apperr.NotFound if the event does not exist or is soft-deleted
*/
func (repository *repository) FindByID(context context.Context, id string) (*catalog.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s e WHERE e.%s = $1 AND e.%s IS NULL`,
		selectColumns(),
		schema.EventsEvent.Table,
		schema.EventsEvent.ID,
		schema.EventsEvent.DeletedAt,
	)

	event, err := scanEvent(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("event")
		}
		return nil, fmt.Errorf("postgres: failed to find event by id: %w", err)
	}

	return &event, nil
}

/*
FindBySlug retrieves an event record by its unique URL slug.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *catalog.Event: The hydrated event, tags included
  - error: apperr.NotFound on an unknown slug
*/
func (repository *repository) FindBySlug(context context.Context, slug string) (*catalog.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s e WHERE e.%s = $1 AND e.%s IS NULL`,
		selectColumns(),
		schema.EventsEvent.Table,
		schema.EventsEvent.Slug,
		schema.EventsEvent.DeletedAt,
	)

	event, err := scanEvent(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("event_slug")
		}
		return nil, fmt.Errorf("postgres: failed to find event by slug: %w", err)
	}

	return &event, nil
}

/*
Create persists a new event and its tag associations atomically.

Description: Runs inside a single transaction. The event row is inserted
first; each tag label is then upserted into the tag table (new labels start
as pending tags) and linked through the junction table. Any failure rolls
the whole submission back.

Parameters:
  - context: context.Context
  - event: *catalog.Event (ID, slug, and status already assigned)
  - tagLabels: []string (Plain labels from the submission)

Returns:
  - error: Constraint violations or execution failures
*/
func (repository *repository) Create(context context.Context, event *catalog.Event, tagLabels []string) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	e := schema.EventsEvent
	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s,
			%s, %s, %s, %s, %s, %s, %s,
			%s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`,
		e.Table,
		e.ID, e.Slug, e.Status, e.Archived, e.StartsAt, e.EndsAt,
		e.City, e.Venue, e.Address, e.Format, e.PriceType, e.PriceMin, e.PriceMax,
		e.Title, e.Description,
	)

	_, err = transaction.Exec(context, query,
		event.ID,
		event.Slug,
		event.Status,
		event.Archived,
		event.Start,
		event.End,
		event.City,
		event.Venue,
		event.Address,
		event.Format,
		event.PriceType,
		event.PriceMin,
		event.PriceMax,
		event.Title,
		event.Description,
	)
	if err != nil {
		// Duplicate slugs surface as a unique violation and become a 409.
		return dberr.Wrap(err, "event")
	}

	if err := repository.linkTags(context, transaction, event.ID, tagLabels); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit create transaction: %w", err)
	}

	return nil
}

/*
linkTags upserts tag labels and links them to the given event.

Description: Each label is inserted with ON CONFLICT on the unique label
column; existing tags keep their approval status, new labels start pending.
The RETURNING id feeds the junction insert directly.

Parameters:
  - context: context.Context
  - transaction: pgx.Tx (Active submission transaction)
  - eventID: string (UUID of the parent event)
  - labels: []string (Tag labels to attach)

Returns:
  - error: Execution failures
*/
func (repository *repository) linkTags(context context.Context, transaction pgx.Tx, eventID string, labels []string) error {
	if len(labels) == 0 {
		return nil
	}

	t := schema.EventsTag
	et := schema.EventsEventTag

	upsert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING %s
	`, t.Table, t.ID, t.Label, t.Status, t.Label, t.Label, t.Label, t.ID)

	link := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, et.Table, et.EventID, et.TagID)

	for _, label := range labels {
		var tagID string
		err := transaction.QueryRow(context, upsert, uuidv7.New(), label, catalog.TagPending).Scan(&tagID)
		if err != nil {
			return fmt.Errorf("postgres: failed to upsert tag %q: %w", label, err)
		}

		if _, err := transaction.Exec(context, link, eventID, tagID); err != nil {
			return fmt.Errorf("postgres: failed to link tag %q: %w", label, err)
		}
	}

	return nil
}

/*
ListPending returns one page of the moderation queue plus the total count.

Description: Uses COUNT(*) OVER() so the queue length arrives with the page
itself, sparing the moderation UI a second query. Oldest submissions come
first so the queue drains fairly.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []catalog.Event: Pending submissions, oldest first
  - int: Total pending count
  - error: Database execution errors
*/
func (repository *repository) ListPending(context context.Context, limit, offset int) ([]catalog.Event, int, error) {
	e := schema.EventsEvent
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s e
		WHERE e.%s = $1 AND e.%s IS NULL
		ORDER BY e.%s ASC
		LIMIT $2 OFFSET $3
	`,
		selectColumns(),
		e.Table,
		e.Status, e.DeletedAt,
		e.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, catalog.StatusPending, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list pending events: %w", err)
	}
	defer rows.Close()

	var events []catalog.Event
	var totalCount int
	for rows.Next() {
		event, err := scanEvent(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan pending event: %w", err)
		}
		events = append(events, event)
	}

	return events, totalCount, rows.Err()
}

/*
SetStatus transitions an event's moderation state.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - status: catalog.Status (Target lifecycle state)

Returns:
  - error: apperr.NotFound if the event does not exist or is soft-deleted
*/
func (repository *repository) SetStatus(context context.Context, id string, status catalog.Status) error {
	e := schema.EventsEvent
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2 AND %s IS NULL`,
		e.Table, e.Status, e.UpdatedAt, e.ID, e.DeletedAt,
	)

	result, err := repository.pool.Exec(context, query, status, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to set event status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("event")
	}

	return nil
}

/*
SetArchived flips the archived flag and keeps the status column aligned.

Description: Archiving sets both the flag and the status so the dual check
on the read side can never disagree after this write. Unarchiving restores
the event to published.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - archived: bool

Returns:
  - error: apperr.NotFound if the event does not exist
*/
func (repository *repository) SetArchived(context context.Context, id string, archived bool) error {
	e := schema.EventsEvent

	status := catalog.StatusPublished
	if archived {
		status = catalog.StatusArchived
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = NOW() WHERE %s = $3 AND %s IS NULL`,
		e.Table, e.Archived, e.Status, e.UpdatedAt, e.ID, e.DeletedAt,
	)

	result, err := repository.pool.Exec(context, query, archived, status, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to set archived flag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("event")
	}

	return nil
}

/*
ArchiveByIDs archives a batch of events in a single statement.

Description: The archival job computes the ended set in Go (date parsing is
fail-open and lives outside SQL), then hands the ids here. Already-archived
rows are skipped so the returned count reflects real transitions.

Parameters:
  - context: context.Context
  - ids: []string (UUIDs selected by the job)

Returns:
  - int64: Number of rows archived
  - error: Execution failures
*/
func (repository *repository) ArchiveByIDs(context context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	e := schema.EventsEvent
	query := fmt.Sprintf(`
		UPDATE %s SET %s = TRUE, %s = $1, %s = NOW()
		WHERE %s = ANY($2) AND %s = FALSE AND %s IS NULL
	`,
		e.Table, e.Archived, e.Status, e.UpdatedAt,
		e.ID, e.Archived, e.DeletedAt,
	)

	result, err := repository.pool.Exec(context, query, catalog.StatusArchived, ids)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to archive events: %w", err)
	}

	return result.RowsAffected(), nil
}

/*
SoftDelete hides an event without physical row removal.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: apperr.NotFound if missing or already deleted
*/
func (repository *repository) SoftDelete(context context.Context, id string) error {
	e := schema.EventsEvent
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW(), %s = $1 WHERE %s = $2 AND %s IS NULL`,
		e.Table, e.DeletedAt, e.Status, e.ID, e.DeletedAt,
	)

	result, err := repository.pool.Exec(context, query, catalog.StatusDeleted, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("event")
	}

	return nil
}
