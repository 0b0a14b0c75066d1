// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

package events

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byfest/byfest/internal/catalog"
	"github.com/byfest/byfest/internal/platform/apperr"
	"github.com/byfest/byfest/pkg/pointer"
)

// fakeRepository is an in-memory [Repository] for service tests.
type fakeRepository struct {
	events      []catalog.Event
	createdTags map[string][]string
	statuses    map[string]catalog.Status
	archivedIDs []string
}

func newFakeRepository(events ...catalog.Event) *fakeRepository {
	return &fakeRepository{
		events:      events,
		createdTags: make(map[string][]string),
		statuses:    make(map[string]catalog.Status),
	}
}

func (f *fakeRepository) Snapshot(context.Context) ([]catalog.Event, error) {
	return f.events, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*catalog.Event, error) {
	for i := range f.events {
		if f.events[i].ID == id {
			return &f.events[i], nil
		}
	}
	return nil, apperr.NotFound("event")
}

func (f *fakeRepository) FindBySlug(_ context.Context, slug string) (*catalog.Event, error) {
	for i := range f.events {
		if f.events[i].Slug == slug {
			return &f.events[i], nil
		}
	}
	return nil, apperr.NotFound("event_slug")
}

func (f *fakeRepository) Create(_ context.Context, event *catalog.Event, tagLabels []string) error {
	f.events = append(f.events, *event)
	f.createdTags[event.ID] = tagLabels
	return nil
}

func (f *fakeRepository) ListPending(_ context.Context, limit, offset int) ([]catalog.Event, int, error) {
	var pending []catalog.Event
	for _, e := range f.events {
		if e.Status == catalog.StatusPending {
			pending = append(pending, e)
		}
	}
	total := len(pending)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return pending[offset:end], total, nil
}

func (f *fakeRepository) SetStatus(_ context.Context, id string, status catalog.Status) error {
	f.statuses[id] = status
	return nil
}

func (f *fakeRepository) SetArchived(_ context.Context, id string, archived bool) error {
	if archived {
		f.archivedIDs = append(f.archivedIDs, id)
	}
	return nil
}

func (f *fakeRepository) ArchiveByIDs(_ context.Context, ids []string) (int64, error) {
	f.archivedIDs = append(f.archivedIDs, ids...)
	return int64(len(ids)), nil
}

func (f *fakeRepository) SoftDelete(_ context.Context, id string) error {
	f.statuses[id] = catalog.StatusDeleted
	return nil
}

// fakeSaved is a static [SavedLookup].
type fakeSaved struct {
	set map[string]struct{}
}

func (f fakeSaved) SavedSet(context.Context, string) (map[string]struct{}, error) {
	return f.set, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func futureStart() string {
	return time.Now().AddDate(0, 1, 0).Format(time.RFC3339)
}

func TestSubmit(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo, nil, testLogger(), 16)

	t.Run("valid_submission_lands_pending", func(t *testing.T) {
		event, err := service.Submit(context.Background(), &Submission{
			Title: "Café Jazz at the Lakes",
			Start: "2026-07-01T19:00:00+02:00",
			City:  "Copenhagen",
			Tags:  []string{"music", "outdoor"},
		})
		require.NoError(t, err)

		assert.Equal(t, catalog.StatusPending, event.Status)
		assert.Len(t, event.ID, 36)
		assert.Equal(t, "cafe-jazz-at-the-lakes", event.Slug)
		assert.Equal(t, []string{"music", "outdoor"}, repo.createdTags[event.ID])
	})

	t.Run("missing_title_fails_validation", func(t *testing.T) {
		_, err := service.Submit(context.Background(), &Submission{Start: "2026-07-01"})
		require.Error(t, err)

		var appError *apperr.AppError
		require.ErrorAs(t, err, &appError)
		assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	})

	t.Run("missing_start_fails_validation", func(t *testing.T) {
		_, err := service.Submit(context.Background(), &Submission{Title: "No date yet"})
		require.Error(t, err)
	})

	t.Run("unknown_price_type_fails_validation", func(t *testing.T) {
		_, err := service.Submit(context.Background(), &Submission{
			Title:     "Paid thing",
			Start:     "2026-07-01",
			PriceType: "expensive",
		})
		require.Error(t, err)
	})

	t.Run("inverted_price_range_fails_validation", func(t *testing.T) {
		_, err := service.Submit(context.Background(), &Submission{
			Title:     "Overpriced underfloor",
			Start:     "2026-07-01",
			PriceType: "paid",
			PriceMin:  pointer.To(200.0),
			PriceMax:  pointer.To(100.0),
		})
		require.Error(t, err)
	})

	t.Run("price_range_accepted", func(t *testing.T) {
		event, err := service.Submit(context.Background(), &Submission{
			Title:     "Street food market",
			Start:     "2026-07-01",
			PriceType: "paid",
			PriceMin:  pointer.To(50.0),
			PriceMax:  pointer.To(120.0),
		})
		require.NoError(t, err)
		assert.Equal(t, 50.0, pointer.Val(event.PriceMin))
	})
}

func TestBrowse(t *testing.T) {
	start := futureStart()

	repo := newFakeRepository(
		catalog.Event{ID: "e1", Status: catalog.StatusPublished, City: "Copenhagen", Start: start},
		catalog.Event{ID: "e2", Status: catalog.StatusPublished, City: "Aarhus", Start: start},
		catalog.Event{ID: "e3", Status: catalog.StatusPending, City: "Copenhagen", Start: start},
		catalog.Event{ID: "e4", Status: catalog.StatusPublished, City: "Copenhagen", Start: start, Archived: true},
	)
	service := NewService(repo, fakeSaved{set: map[string]struct{}{"e2": {}}}, testLogger(), 16)

	t.Run("city_filter", func(t *testing.T) {
		result, err := service.Browse(context.Background(), BrowseInput{
			Values: url.Values{"city": {"Copenhagen"}},
			Page:   1,
		})
		require.NoError(t, err)

		require.Len(t, result.Items, 1)
		assert.Equal(t, "e1", result.Items[0].ID)
	})

	t.Run("favorites_scoped_to_visitor", func(t *testing.T) {
		result, err := service.Browse(context.Background(), BrowseInput{
			Values:    url.Values{"quick-favorites": {"true"}},
			Page:      1,
			VisitorID: "visitor-1",
		})
		require.NoError(t, err)

		require.Len(t, result.Items, 1)
		assert.Equal(t, "e2", result.Items[0].ID)
	})

	t.Run("favorites_fail_closed_without_visitor", func(t *testing.T) {
		result, err := service.Browse(context.Background(), BrowseInput{
			Values: url.Values{"quick-favorites": {"true"}},
			Page:   1,
		})
		require.NoError(t, err)
		assert.Empty(t, result.Items)
	})

	t.Run("city_preselected_from_search", func(t *testing.T) {
		result, err := service.Browse(context.Background(), BrowseInput{
			Query: "Aarhus",
			Page:  1,
		})
		require.NoError(t, err)

		require.Len(t, result.Items, 1)
		assert.Equal(t, "e2", result.Items[0].ID)
	})

	t.Run("archived_visible_only_with_override", func(t *testing.T) {
		public, err := service.Browse(context.Background(), BrowseInput{Page: 1})
		require.NoError(t, err)
		for _, item := range public.Items {
			assert.NotEqual(t, "e4", item.ID)
		}

		moderation, err := service.Browse(context.Background(), BrowseInput{
			Page:            1,
			IncludeArchived: true,
		})
		require.NoError(t, err)

		ids := make([]string, 0, len(moderation.Items))
		for _, item := range moderation.Items {
			ids = append(ids, item.ID)
		}
		assert.Contains(t, ids, "e4")
	})
}

func TestGet(t *testing.T) {
	repo := newFakeRepository(
		catalog.Event{ID: "0198f2ac-5f3e-7cc1-9d4a-3b2f1e0d9c8b", Slug: "jazz-ved-soerne", Status: catalog.StatusPublished},
	)
	service := NewService(repo, nil, testLogger(), 16)

	t.Run("by_uuid", func(t *testing.T) {
		event, err := service.Get(context.Background(), "0198f2ac-5f3e-7cc1-9d4a-3b2f1e0d9c8b")
		require.NoError(t, err)
		assert.Equal(t, "jazz-ved-soerne", event.Slug)
	})

	t.Run("by_slug", func(t *testing.T) {
		event, err := service.Get(context.Background(), "jazz-ved-soerne")
		require.NoError(t, err)
		assert.Equal(t, "0198f2ac-5f3e-7cc1-9d4a-3b2f1e0d9c8b", event.ID)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := service.Get(context.Background(), "missing-slug")
		require.Error(t, err)
	})
}

func TestModeration(t *testing.T) {
	repo := newFakeRepository(
		catalog.Event{ID: "p1", Status: catalog.StatusPending},
	)
	service := NewService(repo, nil, testLogger(), 16)

	require.NoError(t, service.Approve(context.Background(), "p1"))
	assert.Equal(t, catalog.StatusPublished, repo.statuses["p1"])

	require.NoError(t, service.Reject(context.Background(), "p1"))
	assert.Equal(t, catalog.StatusRejected, repo.statuses["p1"])

	require.NoError(t, service.Archive(context.Background(), "p1"))
	assert.Contains(t, repo.archivedIDs, "p1")

	require.NoError(t, service.Delete(context.Background(), "p1"))
	assert.Equal(t, catalog.StatusDeleted, repo.statuses["p1"])
}

func TestArchiveEnded(t *testing.T) {
	now := time.Now()
	retention := 30 * 24 * time.Hour

	repo := newFakeRepository(
		// Ended well before the cutoff: archived.
		catalog.Event{ID: "old", Status: catalog.StatusPublished, Start: now.AddDate(0, -6, 0).Format(time.RFC3339)},
		// Ended recently, still inside the grace period: kept.
		catalog.Event{ID: "recent", Status: catalog.StatusPublished, Start: now.AddDate(0, 0, -7).Format(time.RFC3339)},
		// Upcoming: kept.
		catalog.Event{ID: "future", Status: catalog.StatusPublished, Start: now.AddDate(0, 1, 0).Format(time.RFC3339)},
		// No parseable date: never auto-archived (fail open).
		catalog.Event{ID: "undated", Status: catalog.StatusPublished, Start: "tba"},
		// Already archived: skipped.
		catalog.Event{ID: "done", Status: catalog.StatusArchived, Archived: true, Start: now.AddDate(-1, 0, 0).Format(time.RFC3339)},
	)
	service := NewService(repo, nil, testLogger(), 16)

	archived, err := service.ArchiveEnded(context.Background(), now, retention)
	require.NoError(t, err)

	assert.Equal(t, int64(1), archived)
	assert.Equal(t, []string{"old"}, repo.archivedIDs)
}
