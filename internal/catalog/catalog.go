// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

package catalog

import (
	"sort"
	"time"

	"github.com/byfest/byfest/pkg/pagination"
	"github.com/byfest/byfest/pkg/slice"
)

// # Query Pipeline

// QueryInput carries one complete catalog computation: the event snapshot,
// the visitor's criteria, and the explicit time reference.
type QueryInput struct {
	// Events is the full fetched event list (all statuses).
	Events []Event

	// Filters are the folded criteria built by [BuildFilters].
	Filters Filters

	// Now is the snapshot instant for all temporal predicates.
	Now time.Time

	// Page is 1-based; PageSize is the view's fixed page length.
	Page     int
	PageSize int

	Helpers Helpers
	Options MatchOptions
}

// QueryResult is the fully computed catalog view.
type QueryResult struct {
	// Matched is the complete filtered, date-sorted event list.
	Matched []Event

	// Items is the requested page cut from Matched.
	Items []Event

	CurrentPage int
	TotalPages  int
	Total       int

	// TagOptions and CityOptions are the picker lists derived from the
	// active dataset, independent of the current criteria so that applying
	// a filter never makes its own option disappear.
	TagOptions  []Option
	CityOptions []Option
}

// Run executes the catalog pipeline: filter, sort, aggregate options,
// paginate. It is pure and idempotent — recomputing with the same input
// yields an identical result, which is what allows the HTTP layer to rerun
// it on every request without coordination.
func Run(in QueryInput) QueryResult {
	h := in.Helpers.withDefaults()

	matched := slice.Filter(in.Events, func(e Event) bool {
		return Matches(e, in.Filters, in.Now, h, in.Options)
	})
	SortByStart(matched)

	active := ActiveEvents(in.Events, in.Now, h)
	page := pagination.Slice(matched, in.Page, in.PageSize)

	return QueryResult{
		Matched:     matched,
		Items:       page.Items,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		Total:       len(matched),
		TagOptions:  AvailableTags(active, h),
		CityOptions: CityOptions(in.Events, in.Now, h),
	}
}

// ActiveEvents returns the subset that drives option aggregation and
// highlights: published, not archived, not past.
func ActiveEvents(events []Event, now time.Time, h Helpers) []Event {
	h = h.withDefaults()
	return slice.Filter(events, func(e Event) bool {
		return e.Status == StatusPublished && !h.IsArchived(e) && !h.IsPast(e, now)
	})
}

// NextUpcoming returns the earliest future published event, independent of
// the visitor's browse mode. ok is false when nothing upcoming exists.
func NextUpcoming(events []Event, now time.Time, h Helpers) (Event, bool) {
	h = h.withDefaults()

	upcoming := slice.Filter(events, func(e Event) bool {
		return Matches(e, Filters{}, now, h, MatchOptions{IgnorePastToggle: true})
	})
	if len(upcoming) == 0 {
		return Event{}, false
	}

	SortByStart(upcoming)
	return upcoming[0], true
}

// SortByStart orders events date-ascending by parsed start. Events without a
// parseable start sort last; the sort is stable so their relative order is
// preserved.
func SortByStart(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		si, iok := events[i].StartTime()
		sj, jok := events[j].StartTime()

		if iok && jok {
			return si.Before(sj)
		}
		// Parseable starts come before unparseable ones.
		return iok && !jok
	})
}
