// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

package catalog

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Option is one selectable entry in a filter picker. Value is the canonical
// folded form used in filter criteria; Label is the localized display form.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// AvailableTags flattens the tag lists of the given events into a
// deduplicated, locale-sorted picker list.
//
// Deduplication is by folded label with first occurrence winning, so the
// output is stable under re-runs over the same input. The caller is expected
// to pass the active set (published, not archived, not past); the aggregator
// does not filter by status itself.
func AvailableTags(events []Event, h Helpers) []Option {
	h = h.withDefaults()

	seen := make(map[string]struct{})
	var options []Option

	for _, e := range events {
		for _, tag := range h.TagList(e) {
			folded := h.Fold(strings.TrimSpace(tag.Label))
			if folded == "" {
				continue
			}
			if _, dup := seen[folded]; dup {
				continue
			}
			seen[folded] = struct{}{}
			options = append(options, Option{
				Value: folded,
				Label: h.LocalizeTag(tag.Label),
			})
		}
	}

	sortOptions(options, h)
	return options
}

// CityOptions builds the city picker list from the given events.
//
// Non-published, archived, past, and online events are skipped — a virtual
// event must never offer a "location". Deduplication is by folded city with
// the first-seen raw name winning as the display label.
func CityOptions(events []Event, now time.Time, h Helpers) []Option {
	h = h.withDefaults()

	seen := make(map[string]struct{})
	var options []Option

	for _, e := range events {
		if e.Status != StatusPublished || h.IsArchived(e) || h.IsPast(e, now) || e.IsOnline() {
			continue
		}

		folded := h.FoldCity(e.City)
		if folded == "" {
			continue
		}
		if _, dup := seen[folded]; dup {
			continue
		}
		seen[folded] = struct{}{}
		options = append(options, Option{
			Value: folded,
			Label: h.LocalizeCity(strings.TrimSpace(e.City)),
		})
	}

	sortOptions(options, h)
	return options
}

// MatchCityFromQuery scans free search text for a token that names a known
// city, letting a search like "jazz copenhagen" implicitly pre-select the
// city filter. It returns the matching option's value, or "" when no token
// matches.
func MatchCityFromQuery(searchQuery string, options []Option, h Helpers) string {
	h = h.withDefaults()

	tokens := strings.FieldsFunc(searchQuery, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	if len(tokens) == 0 {
		return ""
	}

	folded := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if ft := h.FoldCity(token); ft != "" {
			folded = append(folded, ft)
		}
	}

	for _, option := range options {
		label := h.FoldCity(option.Label)
		value := h.FoldCity(option.Value)
		for _, token := range folded {
			if token == label || token == value {
				return option.Value
			}
		}
	}
	return ""
}

// sortOptions orders picker entries by localized label using locale-aware
// collation. language.Make falls back to the root locale on a malformed tag,
// so sorting never fails.
func sortOptions(options []Option, h Helpers) {
	coll := collate.New(language.Make(h.Lang()))
	sort.SliceStable(options, func(i, j int) bool {
		return coll.CompareString(options[i].Label, options[j].Label) < 0
	})
}
