// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

package catalog_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byfest/byfest/internal/catalog"
)

/*
TestTag_UnmarshalJSON verifies that both bare string tags and full tag
objects decode, with bare strings treated as approved.
*/
func TestTag_UnmarshalJSON(t *testing.T) {
	var tags []catalog.Tag
	raw := `["music", {"label": "Art", "status": "pending"}, {"label": "Food"}]`

	require.NoError(t, json.Unmarshal([]byte(raw), &tags))
	require.Len(t, tags, 3)

	assert.Equal(t, catalog.Tag{Label: "music", Status: catalog.TagApproved}, tags[0])
	assert.Equal(t, catalog.Tag{Label: "Art", Status: catalog.TagPending}, tags[1])
	assert.Equal(t, catalog.Tag{Label: "Food", Status: catalog.TagApproved}, tags[2])
}

/*
TestEvent_IsArchived verifies the dual-field archived check: flag and status
may disagree transiently and either one retires the event.
*/
func TestEvent_IsArchived(t *testing.T) {
	tests := []struct {
		name  string
		event catalog.Event
		want  bool
	}{
		{"neither", catalog.Event{Status: catalog.StatusPublished}, false},
		{"flag_only", catalog.Event{Status: catalog.StatusPublished, Archived: true}, true},
		{"status_only", catalog.Event{Status: catalog.StatusArchived}, true},
		{"both", catalog.Event{Status: catalog.StatusArchived, Archived: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.IsArchived())
		})
	}
}

/*
TestEvent_IsOnline verifies both detection paths: the format heuristic and
the virtual-venue keyword scan over address+venue.
*/
func TestEvent_IsOnline(t *testing.T) {
	tests := []struct {
		name  string
		event catalog.Event
		want  bool
	}{
		{"format_exact", catalog.Event{Format: "online"}, true},
		{"format_contains", catalog.Event{Format: "Online-Workshop"}, true},
		{"format_offline", catalog.Event{Format: "offline"}, false},
		{"zoom_address", catalog.Event{Format: "offline", Address: "Zoom link in description"}, true},
		{"teams_venue", catalog.Event{Venue: "Microsoft Teams"}, true},
		{"google_meet", catalog.Event{Venue: "Google Meet"}, true},
		{"webinar", catalog.Event{Address: "Webinar (tilmelding kræves)"}, true},
		{"online_keyword_in_venue", catalog.Event{Venue: "Online"}, true},
		{"physical_venue", catalog.Event{Venue: "Kulturhuset", Address: "Nørre Allé 7"}, false},
		{"empty", catalog.Event{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.IsOnline())
		})
	}
}

/*
TestEvent_StartTime verifies fail-open parsing of the accepted timestamp
layouts.
*/
func TestEvent_StartTime(t *testing.T) {
	tests := []struct {
		name  string
		start string
		ok    bool
	}{
		{"rfc3339", "2026-01-05T10:00:00+01:00", true},
		{"no_zone", "2026-01-05T10:00:00", true},
		{"no_seconds", "2026-01-05T10:00", true},
		{"date_only", "2026-01-05", true},
		{"empty", "", false},
		{"garbage", "next tuesday", false},
		{"whitespace", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, ok := catalog.Event{Start: tt.start}.StartTime()
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, 2026, start.Year())
			}
		})
	}
}

/*
TestStatus_IsValid covers the moderation lifecycle enum.
*/
func TestStatus_IsValid(t *testing.T) {
	for _, s := range []catalog.Status{
		catalog.StatusPublished,
		catalog.StatusPending,
		catalog.StatusRejected,
		catalog.StatusArchived,
		catalog.StatusDeleted,
	} {
		assert.True(t, s.IsValid())
	}
	assert.False(t, catalog.Status("draft").IsValid())
}
