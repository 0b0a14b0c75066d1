// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters,
// how the resulting metadata is delivered in the API response envelope, and
// the page math used by the in-memory catalog engine. The math helpers are
// total: out-of-range pages are clamped, empty lists are "page 1 of 1", and
// degenerate page sizes are treated as 1 rather than producing division
// errors or negative slices.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 16
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the slice/SQL offset value derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
//
// The reported page is clamped into the valid range so clients are never told
// they are on a page that does not exist.
func NewMeta(page, limit, total int) Meta {
	totalPages := TotalPages(total, limit)

	return Meta{
		Page:       ClampPage(page, totalPages),
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultPage], [DefaultLimit], or [MaxLimit].
func FromRequest(r *http.Request) Params {
	page := parseIntParam(r, "page", DefaultPage)
	limit := parseIntParam(r, "limit", DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}

	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: limit}
}

// # Page Math

// TotalPages returns the number of pages needed for total items at pageSize
// per page. It is always at least 1: an empty result set is still "page 1 of
// 1", never "page 0". Negative totals and non-positive page sizes are treated
// as 0 and 1 respectively.
func TotalPages(total, pageSize int) int {
	if total < 0 {
		total = 0
	}
	if pageSize < 1 {
		pageSize = 1
	}

	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// ClampPage clamps a requested 1-based page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Page is one materialized page of a list, with its resolved position.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	TotalPages  int
}

// Slice computes the page count for list, clamps the requested page into
// range, and cuts out that page's items.
//
// It never panics: empty lists, out-of-range pages, and non-positive page
// sizes all degrade to a valid (possibly empty) page.
func Slice[T any](list []T, page, pageSize int) Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}

	totalPages := TotalPages(len(list), pageSize)
	currentPage := ClampPage(page, totalPages)

	start := (currentPage - 1) * pageSize
	end := start + pageSize
	if start > len(list) {
		start = len(list)
	}
	if end > len(list) {
		end = len(list)
	}

	return Page[T]{
		Items:       list[start:end],
		CurrentPage: currentPage,
		TotalPages:  totalPages,
	}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
