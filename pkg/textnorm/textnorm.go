// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

// Package textnorm provides the canonical text folding rules used by the
// catalog filter engine.
//
// # Usage
//
// All filter criteria are folded through this package before they are compared
// against event fields, so the predicate engine never sees raw user input.
// Every function is total: any input string, including the empty string,
// produces a well-defined result and never panics.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases a value. It is the loose comparison form used for format,
// price, tag, and search matching.
func Fold(value string) string {
	return strings.ToLower(value)
}

// FoldCity trims a value, collapses internal whitespace runs to a single
// space, and lowercases. It is the comparison form for city-to-city equality.
func FoldCity(value string) string {
	return strings.ToLower(strings.Join(strings.Fields(value), " "))
}

// FoldLocation is the strict folding form for free-text location fragments
// (venue, address, city) that may refer to the same place with different
// spelling or accents.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
// 4. Replaces any non-letter, non-digit character with a space.
// 5. Collapses whitespace and trims.
//
// It is used only for deduplicating location text, never for filter matching.
func FoldLocation(value string) string {
	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	stripped, _, err := transform.String(t, value)
	if err != nil {
		// Malformed UTF-8 falls back to the raw input rather than failing.
		stripped = value
	}

	// 2. Lowercase
	stripped = strings.ToLower(stripped)

	// 3. Punctuation becomes whitespace
	stripped = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, stripped)

	// 4. Collapse runs and trim
	return strings.Join(strings.Fields(stripped), " ")
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
