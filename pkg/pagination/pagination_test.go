// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/byfest/byfest/pkg/pagination"
)

/*
TestTotalPages verifies the ceiling math and its "always at least one page"
floor.
*/
func TestTotalPages(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		pageSize int
		want     int
	}{
		{"empty_list_is_one_page", 0, 16, 1},
		{"exact_fit", 32, 16, 2},
		{"remainder_rounds_up", 33, 16, 3},
		{"single_item", 1, 16, 1},
		{"negative_total", -5, 16, 1},
		{"zero_page_size", 10, 0, 10},
		{"negative_page_size", 10, -3, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.TotalPages(tt.total, tt.pageSize))
		})
	}
}

/*
TestTotalPages_Totality asserts the invariant over a range of inputs: the
result is at least 1 for every total >= 0 and pageSize >= 1.
*/
func TestTotalPages_Totality(t *testing.T) {
	for total := 0; total <= 50; total++ {
		for pageSize := 1; pageSize <= 10; pageSize++ {
			assert.GreaterOrEqual(t, pagination.TotalPages(total, pageSize), 1)
		}
	}
}

/*
TestClampPage verifies the boundary behavior for out-of-range pages.
*/
func TestClampPage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		want       int
	}{
		{"below_range", 0, 5, 1},
		{"above_range", 6, 5, 5},
		{"in_range", 3, 5, 3},
		{"negative", -10, 5, 1},
		{"degenerate_total", 3, 0, 1},
		{"first_page", 1, 5, 1},
		{"last_page", 5, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.ClampPage(tt.page, tt.totalPages))
		})
	}
}

/*
TestSlice verifies page extraction, clamping, and the never-panic contract.
*/
func TestSlice(t *testing.T) {
	list := []string{"a", "b", "c", "d", "e"}

	t.Run("middle_page", func(t *testing.T) {
		page := pagination.Slice(list, 2, 2)
		assert.Equal(t, []string{"c", "d"}, page.Items)
		assert.Equal(t, 2, page.CurrentPage)
		assert.Equal(t, 3, page.TotalPages)
	})

	t.Run("last_partial_page", func(t *testing.T) {
		page := pagination.Slice(list, 3, 2)
		assert.Equal(t, []string{"e"}, page.Items)
	})

	t.Run("out_of_range_clamps_to_last", func(t *testing.T) {
		page := pagination.Slice(list, 99, 2)
		assert.Equal(t, 3, page.CurrentPage)
		assert.Equal(t, []string{"e"}, page.Items)
	})

	t.Run("zero_page_defaults_to_first", func(t *testing.T) {
		page := pagination.Slice(list, 0, 2)
		assert.Equal(t, 1, page.CurrentPage)
		assert.Equal(t, []string{"a", "b"}, page.Items)
	})

	t.Run("empty_list", func(t *testing.T) {
		page := pagination.Slice([]string{}, 1, 16)
		assert.Empty(t, page.Items)
		assert.Equal(t, 1, page.CurrentPage)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("zero_page_size_treated_as_one", func(t *testing.T) {
		page := pagination.Slice(list, 2, 0)
		assert.Equal(t, []string{"b"}, page.Items)
		assert.Equal(t, 5, page.TotalPages)
	})

	t.Run("never_exceeds_page_size", func(t *testing.T) {
		for p := -2; p <= 8; p++ {
			for size := -1; size <= 6; size++ {
				page := pagination.Slice(list, p, size)
				limit := size
				if limit < 1 {
					limit = 1
				}
				assert.LessOrEqual(t, len(page.Items), limit)
			}
		}
	})
}

/*
TestFromRequest verifies query parameter parsing with clamping defaults.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 16},
		{"explicit", "page=3&limit=20", 3, 20},
		{"negative_page", "page=-1", 1, 16},
		{"oversized_limit", "limit=5000", 1, 16},
		{"garbage", "page=abc&limit=xyz", 1, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/events?"+tt.query, nil)
			params := pagination.FromRequest(r)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

/*
TestNewMeta verifies the response metadata block, including page clamping.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(9, 16, 40)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 3, meta.Page)
	assert.Equal(t, 40, meta.Total)
}
