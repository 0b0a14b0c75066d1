// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

package catalog

import "time"

// TargetZone is the fixed reference zone for week-boundary computations.
//
// Weekly presets ("this weekend") must select the same events for every
// visitor regardless of where their browser clock lives, so the boundaries
// are anchored here rather than in the viewer's zone.
const TargetZone = "Europe/Copenhagen"

// targetLocation is resolved once at init. If the tzdata is unavailable the
// classifier degrades to UTC instead of failing startup.
var targetLocation = loadTargetLocation()

func loadTargetLocation() *time.Location {
	loc, err := time.LoadLocation(TargetZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// TargetLocation returns the fixed reference zone used for week boundaries
// and scheduled maintenance jobs.
func TargetLocation() *time.Location {
	return targetLocation
}

// IsPast reports whether the event has already happened relative to now.
//
// If the event has a parseable end, it is past once the end has passed;
// otherwise the start decides. An event with no parseable time at all is
// never considered past (fail open).
func IsPast(e Event, now time.Time) bool {
	if end, ok := e.EndTime(); ok {
		return end.Before(now)
	}
	if start, ok := e.StartTime(); ok {
		return start.Before(now)
	}
	return false
}

// SameCalendarDay reports whether a and b fall on the same calendar date in
// the server-local zone.
//
// This is intentionally looser than the target-zone week math: the
// today/tomorrow presets have always used viewer-local day boundaries, and
// unifying the two would change which events appear under "today" for
// visitors outside the target zone.
func SameCalendarDay(a, b time.Time) bool {
	al, bl := a.In(time.Local), b.In(time.Local)
	ay, am, ad := al.Date()
	by, bm, bd := bl.Date()
	return ay == by && am == bm && ad == bd
}

// WeekRange returns the absolute instants for Monday 00:00:00 through Sunday
// 23:59:59 of the week containing now, with both boundaries resolved in the
// target zone.
//
// Constructing the boundary instants with [time.Date] in the target location
// re-derives the zone offset for the date being built, so the result is
// correct across daylight-saving transitions. A zero now yields a degenerate
// epoch range rather than an error.
func WeekRange(now time.Time) (start, end time.Time) {
	if now.IsZero() {
		epoch := time.Unix(0, 0).UTC()
		return epoch, epoch
	}

	local := now.In(targetLocation)

	// ISO weekday: Monday = 1 .. Sunday = 7.
	weekday := int(local.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	year, month, day := local.Date()
	monday := time.Date(year, month, day, 0, 0, 0, 0, targetLocation).AddDate(0, 0, -(weekday - 1))

	// Re-anchor both boundaries through time.Date so the offset belongs to the
	// boundary's own date, not to now's.
	my, mm, md := monday.Date()
	start = time.Date(my, mm, md, 0, 0, 0, 0, targetLocation)

	sunday := start.AddDate(0, 0, 6)
	sy, sm, sd := sunday.Date()
	end = time.Date(sy, sm, sd, 23, 59, 59, 0, targetLocation)

	return start, end
}

// IsWeekend reports whether t falls on Saturday or Sunday in the server-local
// zone. Used by the quick-weekend preset.
func IsWeekend(t time.Time) bool {
	switch t.In(time.Local).Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}
