// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

package catalog

import (
	"time"

	"github.com/byfest/byfest/pkg/textnorm"
)

// Helpers is the injectable dependency bundle consumed by the predicate
// engine and the option aggregators.
//
// # Why a struct of functions?
//
// The engine must never reach into global state (storage, translation tables,
// the visitor's saved list). Callers inject the behavior instead, and any
// field left nil is replaced by a safe default, so a zero Helpers value is
// always usable in tests.
type Helpers struct {
	// Fold is the loose comparison folding (format, price, tags, search).
	Fold func(string) string

	// FoldCity is the city-to-city equality folding.
	FoldCity func(string) string

	// IsPast reports whether an event already happened relative to now.
	// Default: nothing is past.
	IsPast func(Event, time.Time) bool

	// IsArchived reports whether an event is retired.
	// Default: nothing is archived.
	IsArchived func(Event) bool

	// TagList returns the tags to match and aggregate for an event.
	// Default: no tags.
	TagList func(Event) []Tag

	// LocalizeTitle returns the display title. Default: the raw title.
	LocalizeTitle func(Event) string

	// LocalizeCity returns the display form of a city name. Default: identity.
	LocalizeCity func(string) string

	// LocalizeTag returns the display form of a tag label. Default: identity.
	LocalizeTag func(string) string

	// Lang returns the BCP-47 language used for locale-aware option sorting.
	// Default: "da".
	Lang func() string

	// IsSaved reports whether the visitor saved the given event id.
	// Default: nothing is saved, so the favorites preset fails closed.
	IsSaved func(string) bool
}

// withDefaults returns a copy of h with every nil field replaced by its safe
// default. The folding defaults are the real textnorm rules (they are pure
// and deterministic); the stateful lookups default to no-ops.
func (h Helpers) withDefaults() Helpers {
	if h.Fold == nil {
		h.Fold = textnorm.Fold
	}
	if h.FoldCity == nil {
		h.FoldCity = textnorm.FoldCity
	}
	if h.IsPast == nil {
		h.IsPast = func(Event, time.Time) bool { return false }
	}
	if h.IsArchived == nil {
		h.IsArchived = func(Event) bool { return false }
	}
	if h.TagList == nil {
		h.TagList = func(Event) []Tag { return nil }
	}
	if h.LocalizeTitle == nil {
		h.LocalizeTitle = func(e Event) string { return e.Title }
	}
	if h.LocalizeCity == nil {
		h.LocalizeCity = func(city string) string { return city }
	}
	if h.LocalizeTag == nil {
		h.LocalizeTag = func(label string) string { return label }
	}
	if h.Lang == nil {
		h.Lang = func() string { return "da" }
	}
	if h.IsSaved == nil {
		h.IsSaved = func(string) bool { return false }
	}
	return h
}

// DefaultHelpers returns the production helper bundle: real temporal
// classification, the dual archived check, and the event's own tag list.
//
// Callers layer visitor-specific behavior on top (IsSaved from the favorites
// store, localization lookups from the translation layer).
func DefaultHelpers() Helpers {
	return Helpers{
		Fold:       textnorm.Fold,
		FoldCity:   textnorm.FoldCity,
		IsPast:     IsPast,
		IsArchived: Event.IsArchived,
		TagList:    func(e Event) []Tag { return e.Tags },
	}.withDefaults()
}
