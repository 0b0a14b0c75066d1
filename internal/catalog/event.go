// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

/*
Package catalog implements the event catalog engine: filtering, temporal
classification, tag/city option aggregation, and the query pipeline that
composes them.

The package is deliberately pure. Every function is a synchronous computation
over its arguments: no I/O, no clocks, no storage. "Now" and the visitor's
saved-event set are explicit snapshot inputs, which is what makes the engine
testable without a database and safe to re-run on every request.

Error policy: fail open. Malformed dates, missing fields, and absent helpers
degrade to a safe default (event excluded from date-bounded predicates, empty
option lists) rather than returning errors.
*/
package catalog

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/byfest/byfest/pkg/textnorm"
)

// # Lifecycle

// Status represents the moderation lifecycle state of an event.
type Status string

const (
	// StatusPublished is the only state eligible for catalog display.
	StatusPublished Status = "published"

	// StatusPending awaits admin review after submission.
	StatusPending Status = "pending"

	// StatusRejected was declined by an admin.
	StatusRejected Status = "rejected"

	// StatusArchived has been retired from the catalog.
	StatusArchived Status = "archived"

	// StatusDeleted is soft-deleted and invisible everywhere.
	StatusDeleted Status = "deleted"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case
		StatusPublished,
		StatusPending,
		StatusRejected,
		StatusArchived,
		StatusDeleted:
		return true
	}
	return false
}

// TagStatus is the approval state of a tag attached to an event.
type TagStatus string

const (
	TagApproved TagStatus = "approved"
	TagPending  TagStatus = "pending"
)

// Tag is a label attached to an event, with its own approval state.
type Tag struct {
	Label  string    `json:"label"`
	Status TagStatus `json:"status"`
}

// UnmarshalJSON accepts either a full tag object or a bare string.
// A bare string is treated as an approved tag, which is how legacy event
// documents encoded their tags.
func (t *Tag) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		t.Label = label
		t.Status = TagApproved
		return nil
	}

	type alias Tag
	var full alias
	if err := json.Unmarshal(data, &full); err != nil {
		return err
	}

	*t = Tag(full)
	if t.Status == "" {
		t.Status = TagApproved
	}
	return nil
}

// # Event Record

// Event is the catalog's read model of a community event.
//
// The shape is a boundary contract with the event source (JSON document or
// storage row); the engine treats it as read-only. Start and End stay as
// their raw ISO-8601 strings because the source may carry unparseable values
// and the fail-open policy requires distinguishing "no time" from "zero time".
type Event struct {
	ID       string `json:"id"`
	Slug     string `json:"slug,omitempty"`
	Status   Status `json:"status"`
	Archived bool   `json:"archived"`

	// Start and End are ISO-8601 date-time strings; End is optional.
	Start string `json:"start"`
	End   string `json:"end,omitempty"`

	// Free-text location fields, all optional.
	City    string `json:"city,omitempty"`
	Venue   string `json:"venue,omitempty"`
	Address string `json:"address,omitempty"`

	// Format is free text, e.g. "offline", "online".
	Format string `json:"format,omitempty"`

	// PriceType is "free", "paid", or other free text.
	PriceType string   `json:"priceType,omitempty"`
	PriceMin  *float64 `json:"priceMin"`
	PriceMax  *float64 `json:"priceMax"`

	Tags []Tag `json:"tags,omitempty"`

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// IsArchived reports whether the event is retired. Both the boolean flag and
// the status are checked: they may disagree transiently while a moderation
// write is in flight.
func (e Event) IsArchived() bool {
	return e.Archived || e.Status == StatusArchived
}

// StartTime parses the raw start string. ok is false when the event carries
// no parseable start, in which case the event is excluded from date-bounded
// views.
func (e Event) StartTime() (time.Time, bool) {
	return parseWhen(e.Start)
}

// EndTime parses the raw end string.
func (e Event) EndTime() (time.Time, bool) {
	return parseWhen(e.End)
}

// virtualVenueKeywords flags events held on a meeting platform rather than at
// a physical address.
var virtualVenueKeywords = []string{
	"zoom",
	"teams",
	"webinar",
	"google meet",
	"online",
}

// IsOnline reports whether the event is virtual: either its format mentions
// "online", or its address/venue text names a known meeting platform.
//
// Online events are excluded from city filtering and from city option
// aggregation — a virtual event has no "location" to offer in a city picker.
func (e Event) IsOnline() bool {
	if strings.Contains(textnorm.Fold(e.Format), "online") {
		return true
	}

	location := textnorm.FoldLocation(e.Address + " " + e.Venue)
	if location == "" {
		return false
	}
	for _, keyword := range virtualVenueKeywords {
		if strings.Contains(location, keyword) {
			return true
		}
	}
	return false
}

// whenLayouts are the accepted start/end formats, most specific first.
// Layouts without a zone are resolved in the server-local zone.
var whenLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseWhen parses an ISO-8601-ish timestamp. It never returns an error:
// unparseable input yields ok == false and callers fail open.
func parseWhen(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range whenLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
