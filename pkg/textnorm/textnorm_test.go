// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/byfest/byfest/pkg/textnorm"
)

/*
TestFold verifies the loose lowercase folding used for general comparisons.
*/
func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase_passthrough", "online", "online"},
		{"mixed_case", "Offline", "offline"},
		{"empty", "", ""},
		{"unicode", "KØBENHAVN", "københavn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textnorm.Fold(tt.input))
		})
	}
}

/*
TestFoldCity verifies trimming, whitespace collapsing, and lowercasing.
*/
func TestFoldCity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Copenhagen", "copenhagen"},
		{"surrounding_whitespace", "  Copenhagen  ", "copenhagen"},
		{"internal_runs", "Frederiksberg   C", "frederiksberg c"},
		{"tabs_and_newlines", "Kongens\t\nLyngby", "kongens lyngby"},
		{"empty", "", ""},
		{"only_whitespace", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textnorm.FoldCity(tt.input))
		})
	}
}

/*
TestFoldLocation verifies the diacritic-stripping form used to deduplicate
free-text location fragments.
*/
func TestFoldLocation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"accents_stripped", "Café Krüger", "cafe kruger"},
		{"punctuation_to_space", "Vesterbrogade 3, 2.sal", "vesterbrogade 3 2 sal"},
		{"collapses_runs", "  Store -- Torv  ", "store torv"},
		{"same_place_different_spelling", "Teatret «Zèbu»", "teatret zebu"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textnorm.FoldLocation(tt.input))
		})
	}
}

/*
TestFoldLocation_Equivalence verifies that variant spellings of the same venue
fold to the same canonical fragment.
*/
func TestFoldLocation_Equivalence(t *testing.T) {
	assert.Equal(t,
		textnorm.FoldLocation("Café Stendhal"),
		textnorm.FoldLocation("cafe  stendhal!"),
	)
}
