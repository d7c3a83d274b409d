// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"regexp"
	"strings"

	"github.com/pdiddy/bibverify/internal/textnorm"
	"github.com/pdiddy/bibverify/pkg/types"
)

var (
	// doiRe matches a DOI like "10.1234/abc.def". The registrant prefix is
	// 4-9 digits per the DOI handbook.
	doiRe = regexp.MustCompile(`(?i)10\.\d{4,9}/[-._;()/:A-Z0-9]+`)

	// originalYearRe matches the APA classic marker
	// "(Original work published 1850)". Three digits allowed for very old works.
	originalYearRe = regexp.MustCompile(`(?i)\(original work published\s+(\d{3,4})\)`)

	// firstAuthorRe matches a leading surname before a comma and an
	// initial. \p{L} keeps accented and non-Latin surnames intact.
	firstAuthorRe = regexp.MustCompile(`^([\p{L}\p{N}_\-']+),\s+[A-Z]`)

	// authorBlockRe captures everything before the first parenthesized year.
	authorBlockRe = regexp.MustCompile(`^(.+?)\s*\(\d{4}\)`)

	// authorSplitRe separates authors joined with ", &" or a standalone "&".
	authorSplitRe = regexp.MustCompile(`,\s*&\s*|\s+&\s+`)

	// surnameRe pulls "<surname>, <Initial>." out of one author segment.
	surnameRe = regexp.MustCompile(`([\p{L}\p{N}_\-']+),\s+[A-Z]\.`)

	// etAlRe detects an "et al" author block, case-insensitive.
	etAlRe = regexp.MustCompile(`(?i)et al`)

	// titleRes are tried in priority order after the "(YYYY)." marker:
	// a sentence ending before a capitalized word, then a run ending before
	// a capitalized venue phrase, then any text ending in a period before a
	// capital letter. The first capture longer than minTitleLen wins.
	titleRes = []*regexp.Regexp{
		regexp.MustCompile(`\(\d{4}\)\.\s*(.+?)[.?!]\s+[A-Z]`),
		regexp.MustCompile(`\(\d{4}\)\.\s*(.+?)\s+[A-Z][A-Za-z&\-\s]+[,(]`),
		regexp.MustCompile(`\(\d{4}\)\.\s*(.+?)\.\s*[A-Z]`),
	}
)

// minTitleLen filters out very short title captures, which are almost
// always punctuation artifacts rather than real titles.
const minTitleLen = 10

// Parse extracts all citation metadata from one citation string. Fields
// that cannot be extracted are left empty.
func Parse(text string, cfg types.MatchConfig) types.ParsedCitation {
	return types.ParsedCitation{
		Type:         DetectType(text, cfg),
		FirstAuthor:  ExtractFirstAuthor(text),
		AllAuthors:   ExtractAllAuthors(text),
		Year:         ExtractYear(text),
		OriginalYear: ExtractOriginalYear(text),
		Title:        ExtractTitle(text),
		DOI:          ExtractDOI(text),
	}
}

// ExtractDOI returns the first DOI in the text, or "".
func ExtractDOI(text string) string {
	return doiRe.FindString(text)
}

// ExtractYear returns the first parenthesized 4-digit year, or "".
func ExtractYear(text string) string {
	if m := parenYearRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// ExtractOriginalYear returns the original publication year for classics
// and translations, or "".
func ExtractOriginalYear(text string) string {
	if m := originalYearRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// ExtractFirstAuthor returns the surname of the first listed author, or "".
func ExtractFirstAuthor(text string) string {
	text = textnorm.Normalize(text)
	if m := firstAuthorRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// ExtractAllAuthors returns every author surname in citation order. An
// "et al" block yields only the first surname; otherwise the author block
// is split on ampersand separators and a surname pulled from each segment.
func ExtractAllAuthors(text string) []string {
	text = textnorm.Normalize(text)
	m := authorBlockRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	block := m[1]

	if etAlRe.MatchString(block) {
		if first := surnameRe.FindStringSubmatch(block); first != nil {
			return []string{first[1]}
		}
		return nil
	}

	var authors []string
	for _, part := range authorSplitRe.Split(block, -1) {
		if sm := surnameRe.FindStringSubmatch(part); sm != nil {
			authors = append(authors, sm[1])
		}
	}
	return authors
}

// ExtractTitle returns the citation title, or "". Patterns are tried in
// priority order; the first capture longer than minTitleLen characters wins.
func ExtractTitle(text string) string {
	for _, re := range titleRes {
		if m := re.FindStringSubmatch(text); m != nil {
			title := strings.TrimSpace(m[1])
			if len(title) > minTitleLen {
				return title
			}
		}
	}
	return ""
}
