// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse turns free-text bibliography lines into structured citation
// metadata: a conservative line filter, reference-type classification, and a
// regex cascade that extracts authors, years, title, and DOI. Every
// extraction is best-effort; a missing field is recorded in the failure
// registry and processing continues with partial data.
package parse

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// pageFooterRe matches page-number footers like "12 | Page".
	pageFooterRe = regexp.MustCompile(`^\s*\d+\s*\|\s*Page\s*$`)

	// parenYearRe matches a parenthesized 4-digit year.
	parenYearRe = regexp.MustCompile(`\((\d{4})\)`)
)

// IsProbableCitation reports whether a line of source text looks like a
// bibliography entry. The filter is deliberately conservative: dropping a
// real citation is preferred over processing a heading or footer.
func IsProbableCitation(line string) bool {
	if line == "" || isAllDigits(strings.TrimSpace(line)) {
		return false
	}
	if pageFooterRe.MatchString(line) {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(line), "references") {
		return false
	}
	if !strings.Contains(line, "(") || !strings.Contains(line, ")") {
		return false
	}
	if !parenYearRe.MatchString(line) && !strings.Contains(strings.ToUpper(line), "BCE") {
		return false
	}
	return true
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
