// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

/*
Package events manages the lifecycle of community event listings.

It covers the full path from public submission through moderation to catalog
display and eventual archival:

  - Submission: Visitors propose events, which enter the queue as "pending".
  - Moderation: Operators approve, reject, or archive listings.
  - Discovery: Published events are served through the in-memory catalog
    engine ([catalog.Run]) with filtering, search, and option aggregation.

The storage layer holds the canonical event records; every catalog query runs
over a fresh snapshot so the engine itself stays pure and stateless.
*/
package events

import "github.com/byfest/byfest/internal/catalog"

// # Submission

// Submission is the inbound payload for a proposed event listing.
//
// Tags arrive as plain labels; the store resolves them to tag rows when the
// submission is persisted.
type Submission struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	City        string   `json:"city"`
	Venue       string   `json:"venue"`
	Address     string   `json:"address"`
	Format      string   `json:"format"`
	PriceType   string   `json:"price_type"`
	PriceMin    *float64 `json:"price_min"`
	PriceMax    *float64 `json:"price_max"`
	Tags        []string `json:"tags"`
}

// # Field Identifiers

// Field names for validation and dynamic query mapping.
const (
	FieldID          = "id"
	FieldSlug        = "slug"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStart       = "start"
	FieldEnd         = "end"
	FieldCity        = "city"
	FieldVenue       = "venue"
	FieldAddress     = "address"
	FieldFormat      = "format"
	FieldPriceType   = "price_type"
	FieldPriceMin    = "price_min"
	FieldPriceMax    = "price_max"
	FieldTags        = "tags"
	FieldStatus      = "status"
)

// Event re-exports the catalog read model as the domain entity so that the
// storage and HTTP layers share one shape with the engine.
type Event = catalog.Event
