// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textnorm

import (
	"math"
	"testing"
)

func TestStripAccents(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Treviño", "Trevino"},
		{"García", "Garcia"},
		{"Müller", "Muller"},
		{"Severus Snape", "Severus Snape"},
		{"", ""},
		{"éàüñç", "eaunc"},
	}
	for _, tt := range tests {
		if got := StripAccents(tt.in); got != tt.want {
			t.Errorf("StripAccents(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	// "e" + combining acute accent composes to a single rune.
	decomposed := "García"
	if got := Normalize(decomposed); got != "García" {
		t.Errorf("Normalize(%q) = %q, want %q", decomposed, got, "García")
	}
	if got := Normalize(""); got != "" {
		t.Errorf("Normalize(\"\") = %q, want \"\"", got)
	}
}

func TestSimilarityIdentity(t *testing.T) {
	for _, s := range []string{"a", "Deep learning methods", "García y Márquez"} {
		if got := Similarity(s, s); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestSimilarityEmpty(t *testing.T) {
	if got := Similarity("", "anything"); got != 0 {
		t.Errorf("Similarity(\"\", x) = %v, want 0", got)
	}
	if got := Similarity("anything", ""); got != 0 {
		t.Errorf("Similarity(x, \"\") = %v, want 0", got)
	}
}

func TestSimilarityCaseAndAccentInsensitive(t *testing.T) {
	if got := Similarity("Deep learning methods", "Deep Learning Methods"); got != 1.0 {
		t.Errorf("case-insensitive similarity = %v, want 1.0", got)
	}
	if got := Similarity("García", "garcia"); got != 1.0 {
		t.Errorf("accent-insensitive similarity = %v, want 1.0", got)
	}
}

func TestSimilarityPartial(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		// difflib.SequenceMatcher reference values.
		{"abcd", "bcde", 0.75},
		{"abcabc", "abc", 2.0 * 3 / 9},
		{"xyz", "abc", 0},
	}
	for _, tt := range tests {
		if got := Similarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
