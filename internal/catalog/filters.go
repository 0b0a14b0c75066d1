// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

package catalog

import (
	"net/url"
	"strings"
	"time"

	"github.com/byfest/byfest/pkg/query"
)

// # Filter Criteria

// Filters holds one set of catalog filter criteria.
//
// Every text field is stored in its folded comparison form; raw user input
// never reaches the predicate engine. A zero value on any field means the
// filter is not applied.
type Filters struct {
	// DateFrom and DateTo are inclusive calendar-date bounds ("2006-01-02").
	DateFrom string
	DateTo   string

	// City, Price, and Format are folded exact-match criteria.
	City   string
	Price  string
	Format string

	// Quick presets: one-click shortcuts that each add a single predicate.
	QuickToday     bool
	QuickTomorrow  bool
	QuickWeekend   bool
	QuickOnline    bool
	QuickFavorites bool

	// ShowPast inverts the catalog into a history view: when set, only past
	// events match.
	ShowPast bool

	// Tags is OR-matched: an event passes if it carries any one of them.
	Tags []string

	// SearchQuery is a folded substring to locate in the event's text.
	SearchQuery string
}

// IsZero reports whether no criteria are set at all.
func (f Filters) IsZero() bool {
	return f.DateFrom == "" && f.DateTo == "" &&
		f.City == "" && f.Price == "" && f.Format == "" &&
		!f.QuickToday && !f.QuickTomorrow && !f.QuickWeekend &&
		!f.QuickOnline && !f.QuickFavorites && !f.ShowPast &&
		len(f.Tags) == 0 && f.SearchQuery == ""
}

// MatchOptions are caller-scoped overrides of the predicate chain.
type MatchOptions struct {
	// IncludeArchived skips the archived exclusion. Admin-only callers use it
	// for moderation listings; the public catalog never sets it.
	IncludeArchived bool

	// IgnorePastToggle forces "exclude past" regardless of ShowPast. Used for
	// next-upcoming lookups that must not flip with the visitor's browse mode.
	IgnorePastToggle bool
}

// BuildFilters maps form-style input (the filter panel's field names) onto a
// folded [Filters] value. The search query is carried separately because the
// search box lives outside the filter form.
func BuildFilters(values url.Values, searchQuery string, h Helpers) Filters {
	h = h.withDefaults()

	f := Filters{
		DateFrom:       strings.TrimSpace(values.Get("date-from")),
		DateTo:         strings.TrimSpace(values.Get("date-to")),
		City:           h.FoldCity(values.Get("city")),
		Price:          h.Fold(strings.TrimSpace(values.Get("price"))),
		Format:         h.Fold(strings.TrimSpace(values.Get("format"))),
		QuickToday:     formFlag(values, "quick-today"),
		QuickTomorrow:  formFlag(values, "quick-tomorrow"),
		QuickWeekend:   formFlag(values, "quick-weekend"),
		QuickOnline:    formFlag(values, "quick-online"),
		QuickFavorites: formFlag(values, "quick-favorites"),
		ShowPast:       formFlag(values, "show-past"),
		SearchQuery:    h.Fold(strings.TrimSpace(searchQuery)),
	}

	// Multi-value tags field; also accepts one comma-separated value.
	raw := values["tags"]
	if len(raw) == 1 && strings.Contains(raw[0], ",") {
		raw = query.StringSlice(raw[0])
	}
	for _, label := range raw {
		folded := h.Fold(strings.TrimSpace(label))
		if folded != "" {
			f.Tags = append(f.Tags, folded)
		}
	}

	return f
}

// formFlag interprets a checkbox-style form value. A present key counts as
// set unless it explicitly says otherwise ("false"/"0"), since HTML
// checkboxes submit "on" and toggle widgets submit "true".
func formFlag(values url.Values, key string) bool {
	if !values.Has(key) {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(values.Get(key))) {
	case "false", "0", "off", "no":
		return false
	}
	return true
}

// # Predicate Engine

// Matches decides whether one event satisfies one set of filter criteria.
//
// Predicates run in a fixed order with AND semantics across groups (any
// failure short-circuits) and OR semantics within the tags group. The order
// matters: lifecycle gates run before user criteria so that an archived event
// can never leak through an otherwise-matching filter set.
func Matches(e Event, f Filters, now time.Time, h Helpers, opts MatchOptions) bool {
	h = h.withDefaults()

	// 1. Archived exclusion — unconditional outside admin listings.
	if !opts.IncludeArchived && h.IsArchived(e) {
		return false
	}

	// 2. Status gate.
	if e.Status != StatusPublished {
		return false
	}

	// 3. Past/future gate.
	past := h.IsPast(e, now)
	switch {
	case opts.IgnorePastToggle:
		if past {
			return false
		}
	case f.ShowPast:
		if !past {
			return false
		}
	default:
		if past {
			return false
		}
	}

	// 4. Date range. Events without a parseable start are excluded from any
	// date-bounded view; an unparseable filter bound is ignored (fail open).
	if f.DateFrom != "" || f.DateTo != "" {
		start, ok := e.StartTime()
		if !ok {
			return false
		}
		if from, ok := parseFilterDate(f.DateFrom); ok && start.Before(from) {
			return false
		}
		if to, ok := parseFilterDate(f.DateTo); ok {
			// End of day from calendar parts, not +24h: the DST fall-back day
			// is 25 hours long and duration arithmetic would cut it short.
			endOfDay := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, int(999*time.Millisecond), to.Location())
			if start.After(endOfDay) {
				return false
			}
		}
	}

	// 5. Quick today / tomorrow: exact calendar-day equality in local time.
	if f.QuickToday || f.QuickTomorrow {
		start, ok := e.StartTime()
		if !ok {
			return false
		}
		if f.QuickToday && !SameCalendarDay(start, now) {
			return false
		}
		if f.QuickTomorrow && !SameCalendarDay(start, now.AddDate(0, 0, 1)) {
			return false
		}
	}

	// 6. Quick weekend.
	if f.QuickWeekend {
		start, ok := e.StartTime()
		if !ok || !IsWeekend(start) {
			return false
		}
	}

	// 7. Quick online. Exact format equality, stricter than Event.IsOnline's
	// venue-keyword heuristic: the preset only shows events that declare
	// themselves online.
	if f.QuickOnline && h.Fold(e.Format) != "online" {
		return false
	}

	// 8. Quick favorites. Fails closed when no saved-set helper is supplied.
	if f.QuickFavorites && !h.IsSaved(e.ID) {
		return false
	}

	// 9. City. Online events never match a city filter, whatever their stated
	// city says; physical events need an exact folded match.
	if f.City != "" {
		if e.IsOnline() {
			return false
		}
		if h.FoldCity(e.City) != f.City {
			return false
		}
	}

	// 10. Price.
	if f.Price != "" && h.Fold(e.PriceType) != f.Price {
		return false
	}

	// 11. Format.
	if f.Format != "" && h.Fold(e.Format) != f.Format {
		return false
	}

	// 12. Tags, OR-matched. An empty filter set always passes.
	if len(f.Tags) > 0 && !matchesAnyTag(e, f.Tags, h) {
		return false
	}

	// 13. Free-text search: plain substring over the folded haystack.
	if f.SearchQuery != "" {
		if !strings.Contains(h.Fold(searchHaystack(e, h)), f.SearchQuery) {
			return false
		}
	}

	return true
}

// matchesAnyTag reports whether any filter tag appears among the event's
// folded tag labels.
func matchesAnyTag(e Event, wanted []string, h Helpers) bool {
	labels := make(map[string]struct{})
	for _, tag := range h.TagList(e) {
		labels[h.Fold(tag.Label)] = struct{}{}
	}

	for _, want := range wanted {
		if _, ok := labels[want]; ok {
			return true
		}
	}
	return false
}

// searchHaystack joins the event's searchable text: localized title, raw
// description, localized city, raw venue, and all localized tag labels.
func searchHaystack(e Event, h Helpers) string {
	parts := []string{
		h.LocalizeTitle(e),
		e.Description,
		h.LocalizeCity(e.City),
		e.Venue,
	}
	for _, tag := range h.TagList(e) {
		parts = append(parts, h.LocalizeTag(tag.Label))
	}
	return strings.Join(parts, " ")
}

// parseFilterDate parses a filter bound as local midnight of the given
// calendar date.
func parseFilterDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
