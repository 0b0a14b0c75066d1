// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

package catalog_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byfest/byfest/internal/catalog"
)

// published returns a minimal matchable event starting after now.
func published(id string) catalog.Event {
	return catalog.Event{
		ID:     id,
		Status: catalog.StatusPublished,
		Start:  "2026-06-10T18:00:00",
		City:   "Copenhagen",
		Format: "offline",
	}
}

// testNow is safely before every fixture start.
var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.Local)

func matches(t *testing.T, e catalog.Event, f catalog.Filters) bool {
	t.Helper()
	return catalog.Matches(e, f, testNow, catalog.DefaultHelpers(), catalog.MatchOptions{})
}

/*
TestMatches_LifecycleGates verifies the archived and status predicates that
run before any user criteria.
*/
func TestMatches_LifecycleGates(t *testing.T) {
	t.Run("published_matches", func(t *testing.T) {
		assert.True(t, matches(t, published("e1"), catalog.Filters{}))
	})

	t.Run("archived_flag_never_matches", func(t *testing.T) {
		e := published("e1")
		e.Archived = true
		assert.False(t, matches(t, e, catalog.Filters{}))
	})

	t.Run("archived_status_never_matches", func(t *testing.T) {
		e := published("e1")
		e.Status = catalog.StatusArchived
		assert.False(t, matches(t, e, catalog.Filters{}))
	})

	t.Run("include_archived_override", func(t *testing.T) {
		e := published("e1")
		e.Archived = true
		got := catalog.Matches(e, catalog.Filters{}, testNow, catalog.DefaultHelpers(),
			catalog.MatchOptions{IncludeArchived: true})
		assert.True(t, got)
	})

	t.Run("pending_never_matches_even_for_admins", func(t *testing.T) {
		e := published("e1")
		e.Status = catalog.StatusPending
		got := catalog.Matches(e, catalog.Filters{}, testNow, catalog.DefaultHelpers(),
			catalog.MatchOptions{IncludeArchived: true})
		assert.False(t, got)
	})
}

/*
TestMatches_PastGate verifies the show-past inversion and the
ignore-past-toggle override.
*/
func TestMatches_PastGate(t *testing.T) {
	past := published("past")
	past.Start = "2026-05-01T18:00:00"
	future := published("future")

	t.Run("default_view_excludes_past", func(t *testing.T) {
		assert.False(t, matches(t, past, catalog.Filters{}))
		assert.True(t, matches(t, future, catalog.Filters{}))
	})

	t.Run("show_past_inverts_the_view", func(t *testing.T) {
		assert.True(t, matches(t, past, catalog.Filters{ShowPast: true}))
		assert.False(t, matches(t, future, catalog.Filters{ShowPast: true}))
	})

	t.Run("ignore_past_toggle_overrides_show_past", func(t *testing.T) {
		got := catalog.Matches(past, catalog.Filters{ShowPast: true}, testNow,
			catalog.DefaultHelpers(), catalog.MatchOptions{IgnorePastToggle: true})
		assert.False(t, got)
	})

	t.Run("flipping_show_past_partitions_the_set", func(t *testing.T) {
		events := []catalog.Event{past, future}
		for _, e := range events {
			inDefault := matches(t, e, catalog.Filters{})
			inHistory := matches(t, e, catalog.Filters{ShowPast: true})
			assert.NotEqual(t, inDefault, inHistory, "event %s must be in exactly one view", e.ID)
		}
	})
}

/*
TestMatches_DateRange verifies inclusive bounds, the end-of-day upper bound,
and the exclusion of events without a parseable start.
*/
func TestMatches_DateRange(t *testing.T) {
	e := published("e1") // starts 2026-06-10T18:00 local

	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"inside_range", "2026-06-01", "2026-06-30", true},
		{"from_same_day", "2026-06-10", "", true},
		{"from_after_start", "2026-06-11", "", false},
		{"to_same_day_is_inclusive_until_midnight", "", "2026-06-10", true},
		{"to_day_before", "", "2026-06-09", false},
		{"unparseable_bound_is_ignored", "junk", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := catalog.Filters{DateFrom: tt.from, DateTo: tt.to}
			assert.Equal(t, tt.want, matches(t, e, f))
		})
	}

	t.Run("no_parseable_start_excluded_from_date_views", func(t *testing.T) {
		undated := published("e2")
		undated.Start = "tba"
		assert.False(t, matches(t, undated, catalog.Filters{DateFrom: "2026-01-01"}))
	})

	t.Run("to_bound_holds_on_dst_fall_back_day", func(t *testing.T) {
		// 2026-10-25 is the CET fall-back date, a 25-hour local day. The
		// inclusive bound must still reach 23:59:59.999 of the calendar day,
		// so a late-evening start on the dateTo day stays in range.
		late := published("e3")
		late.Start = "2026-10-25T23:30:00"
		assert.True(t, matches(t, late, catalog.Filters{DateTo: "2026-10-25"}))
	})
}

/*
TestMatches_QuickDayPresets verifies exact local calendar-day matching for
today and tomorrow.
*/
func TestMatches_QuickDayPresets(t *testing.T) {
	today := published("today")
	today.Start = testNow.Add(3 * time.Hour).Format(time.RFC3339)

	tomorrow := published("tomorrow")
	tomorrow.Start = testNow.AddDate(0, 0, 1).Format(time.RFC3339)

	assert.True(t, matches(t, today, catalog.Filters{QuickToday: true}))
	assert.False(t, matches(t, tomorrow, catalog.Filters{QuickToday: true}))

	assert.True(t, matches(t, tomorrow, catalog.Filters{QuickTomorrow: true}))
	assert.False(t, matches(t, today, catalog.Filters{QuickTomorrow: true}))
}

/*
TestMatches_QuickWeekend verifies the Saturday/Sunday weekday check.
*/
func TestMatches_QuickWeekend(t *testing.T) {
	// 2026-06-06 is a Saturday, 2026-06-10 a Wednesday.
	saturday := published("sat")
	saturday.Start = "2026-06-06T15:00:00"

	sunday := published("sun")
	sunday.Start = "2026-06-07T15:00:00"

	weekday := published("wed")

	assert.True(t, matches(t, saturday, catalog.Filters{QuickWeekend: true}))
	assert.True(t, matches(t, sunday, catalog.Filters{QuickWeekend: true}))
	assert.False(t, matches(t, weekday, catalog.Filters{QuickWeekend: true}))
}

/*
TestMatches_QuickOnline verifies that the preset requires the format to equal
exactly "online" — stricter than the venue-keyword online detection.
*/
func TestMatches_QuickOnline(t *testing.T) {
	online := published("online")
	online.Format = "Online"
	assert.True(t, matches(t, online, catalog.Filters{QuickOnline: true}))

	hybrid := published("hybrid")
	hybrid.Format = "Online-Workshop"
	require.True(t, hybrid.IsOnline())
	assert.False(t, matches(t, hybrid, catalog.Filters{QuickOnline: true}))

	zoom := published("zoom")
	zoom.Venue = "Zoom"
	require.True(t, zoom.IsOnline())
	assert.False(t, matches(t, zoom, catalog.Filters{QuickOnline: true}))
}

/*
TestMatches_QuickFavorites verifies the fail-closed default and saved-set
membership.
*/
func TestMatches_QuickFavorites(t *testing.T) {
	e := published("e1")

	t.Run("fails_closed_without_helper", func(t *testing.T) {
		assert.False(t, matches(t, e, catalog.Filters{QuickFavorites: true}))
	})

	t.Run("matches_saved_ids", func(t *testing.T) {
		saved := map[string]struct{}{"e1": {}}
		h := catalog.DefaultHelpers()
		h.IsSaved = func(id string) bool {
			_, ok := saved[id]
			return ok
		}

		assert.True(t, catalog.Matches(e, catalog.Filters{QuickFavorites: true}, testNow, h, catalog.MatchOptions{}))

		other := published("e2")
		assert.False(t, catalog.Matches(other, catalog.Filters{QuickFavorites: true}, testNow, h, catalog.MatchOptions{}))
	})
}

/*
TestMatches_City verifies exact folded equality and the online exclusion.
*/
func TestMatches_City(t *testing.T) {
	e := published("e1")

	tests := []struct {
		name string
		city string
		want bool
	}{
		{"exact_folded_match", "copenhagen", true},
		{"different_city", "aarhus", false},
		{"no_substring_match", "copen", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matches(t, e, catalog.Filters{City: tt.city}))
		})
	}

	t.Run("whitespace_in_event_city_folds_away", func(t *testing.T) {
		spaced := published("e2")
		spaced.City = "  Copenhagen  "
		assert.True(t, matches(t, spaced, catalog.Filters{City: "copenhagen"}))
	})

	t.Run("online_event_never_matches_a_city", func(t *testing.T) {
		online := published("e3")
		online.Format = "online"
		assert.False(t, matches(t, online, catalog.Filters{City: "copenhagen"}))

		zoom := published("e4")
		zoom.Venue = "Zoom"
		assert.False(t, matches(t, zoom, catalog.Filters{City: "copenhagen"}))
	})
}

/*
TestMatches_PriceAndFormat verifies folded exact equality for both fields.
*/
func TestMatches_PriceAndFormat(t *testing.T) {
	e := published("e1")
	e.PriceType = "Free"

	assert.True(t, matches(t, e, catalog.Filters{Price: "free"}))
	assert.False(t, matches(t, e, catalog.Filters{Price: "paid"}))

	assert.True(t, matches(t, e, catalog.Filters{Format: "offline"}))
	assert.False(t, matches(t, e, catalog.Filters{Format: "online"}))
}

/*
TestMatches_Tags verifies OR semantics within the tags group.
*/
func TestMatches_Tags(t *testing.T) {
	e := published("e1")
	e.Tags = []catalog.Tag{
		{Label: "Music", Status: catalog.TagApproved},
		{Label: "community", Status: catalog.TagApproved},
	}

	tests := []struct {
		name string
		tags []string
		want bool
	}{
		{"one_of_two_matches", []string{"music", "art"}, true},
		{"none_match", []string{"sports"}, false},
		{"empty_set_always_passes", nil, true},
		{"all_match", []string{"music", "community"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matches(t, e, catalog.Filters{Tags: tt.tags}))
		})
	}
}

/*
TestMatches_Search verifies substring matching over the combined haystack,
including localized tag labels.
*/
func TestMatches_Search(t *testing.T) {
	e := published("e1")
	e.Title = "Sommerkoncert"
	e.Description = "Jazz i parken med gratis entré"
	e.Venue = "Fælledparken"
	e.Tags = []catalog.Tag{{Label: "music", Status: catalog.TagApproved}}

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"title_substring", "sommer", true},
		{"description_substring", "jazz", true},
		{"venue_substring", "fælled", true},
		{"city_substring", "copenhagen", true},
		{"tag_label", "music", true},
		{"no_match", "teater", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matches(t, e, catalog.Filters{SearchQuery: tt.query}))
		})
	}

	t.Run("localized_tag_labels_are_searchable", func(t *testing.T) {
		h := catalog.DefaultHelpers()
		h.LocalizeTag = func(label string) string {
			if label == "music" {
				return "Musik"
			}
			return label
		}
		got := catalog.Matches(e, catalog.Filters{SearchQuery: "musik"}, testNow, h, catalog.MatchOptions{})
		assert.True(t, got)
	})
}

/*
TestBuildFilters verifies form-field mapping and the normalize-before-compare
invariant.
*/
func TestBuildFilters(t *testing.T) {
	values := url.Values{
		"date-from":    {"2026-06-01"},
		"date-to":      {"2026-06-30"},
		"city":         {"  Copenhagen  "},
		"price":        {"Free"},
		"format":       {"Offline"},
		"quick-today":  {"on"},
		"quick-online": {"false"},
		"show-past":    {"true"},
		"tags":         {"Music", "ART"},
	}

	f := catalog.BuildFilters(values, "  Jazz Koncert ", catalog.Helpers{})

	assert.Equal(t, "2026-06-01", f.DateFrom)
	assert.Equal(t, "2026-06-30", f.DateTo)
	assert.Equal(t, "copenhagen", f.City)
	assert.Equal(t, "free", f.Price)
	assert.Equal(t, "offline", f.Format)
	assert.True(t, f.QuickToday)
	assert.False(t, f.QuickOnline)
	assert.False(t, f.QuickTomorrow)
	assert.True(t, f.ShowPast)
	assert.Equal(t, []string{"music", "art"}, f.Tags)
	assert.Equal(t, "jazz koncert", f.SearchQuery)
}

/*
TestBuildFilters_CommaSeparatedTags verifies the single comma-joined tags
value alternative.
*/
func TestBuildFilters_CommaSeparatedTags(t *testing.T) {
	values := url.Values{"tags": {"music, art , "}}
	f := catalog.BuildFilters(values, "", catalog.Helpers{})
	assert.Equal(t, []string{"music", "art"}, f.Tags)
}

/*
TestBuildFilters_Empty verifies that empty input produces a zero filter set.
*/
func TestBuildFilters_Empty(t *testing.T) {
	f := catalog.BuildFilters(url.Values{}, "", catalog.Helpers{})
	assert.True(t, f.IsZero())
}
