// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textnorm provides Unicode normalization, accent stripping, and
// title similarity for citation matching. Accent stripping is used only for
// comparison, never for display.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns text in canonical-composed (NFC) form. Empty input is
// returned as-is.
func Normalize(text string) string {
	if text == "" {
		return text
	}
	return norm.NFC.String(text)
}

// StripAccents removes combining marks after canonical decomposition, so
// "Treviño" becomes "Trevino" and "García" becomes "Garcia". The output is
// intentionally ASCII-lossy.
func StripAccents(text string) string {
	if text == "" {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range norm.NFD.String(text) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Similarity returns a sequence-match ratio in [0, 1] between two titles.
// Both inputs are accent-stripped, lowercased, and trimmed before
// comparison. Returns 0 if either input is empty.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	ra := []rune(strings.TrimSpace(strings.ToLower(StripAccents(a))))
	rb := []rune(strings.TrimSpace(strings.ToLower(StripAccents(b))))
	return ratio(ra, rb)
}

// ratio computes 2*M/T, where M is the total length of matching blocks and
// T is the combined length of both sequences. Matching blocks are found the
// same way difflib's SequenceMatcher finds them: recursively take the
// longest common block, then match the regions to its left and right.
func ratio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1
	}

	// Positions of each rune in b, for the longest-match scan.
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	matched := 0
	type region struct{ alo, ahi, blo, bhi int }
	queue := []region{{0, len(a), 0, len(b)}}
	for len(queue) > 0 {
		reg := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, k := longestMatch(a, b2j, reg.alo, reg.ahi, reg.blo, reg.bhi)
		if k == 0 {
			continue
		}
		matched += k
		queue = append(queue,
			region{reg.alo, i, reg.blo, j},
			region{i + k, reg.ahi, j + k, reg.bhi},
		)
	}

	return 2 * float64(matched) / float64(total)
}

// longestMatch finds the longest block a[i:i+k] == b[j:j+k] with
// alo <= i < i+k <= ahi and blo <= j < j+k <= bhi. Of all maximal blocks it
// returns the one starting earliest in a, then earliest in b, mirroring
// SequenceMatcher's tie-breaking.
func longestMatch(a []rune, b2j map[rune][]int, alo, ahi, blo, bhi int) (besti, bestj, bestk int) {
	besti, bestj = alo, blo

	// j2len[j] is the length of the longest match ending at a[i], b[j].
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return besti, bestj, bestk
}
