// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/bibverify/pkg/types"
)

// bceYearRe matches a parenthesized BCE date like "(400 BCE" on lowercased text.
var bceYearRe = regexp.MustCompile(`\((\d+)\s*bce`)

// DetectType classifies a citation string. Rules are evaluated in order and
// the first match wins: BCE date or pre-cutoff year marks an ancient text,
// a book cue marks a book, a future year or "in press" marks an in-press
// item, and everything else is a journal article.
func DetectType(text string, cfg types.MatchConfig) types.ReferenceType {
	lower := strings.ToLower(text)

	if bceYearRe.MatchString(lower) {
		return types.TypeAncientText
	}

	yearMatch := parenYearRe.FindStringSubmatch(text)
	if yearMatch != nil {
		if year, err := strconv.Atoi(yearMatch[1]); err == nil && year < cfg.AncientCutoff {
			return types.TypeAncientText
		}
	}

	for _, cue := range cfg.BookCues {
		if strings.Contains(lower, cue) {
			return types.TypeBook
		}
	}

	if yearMatch != nil {
		if year, err := strconv.Atoi(yearMatch[1]); err == nil && year > time.Now().Year() {
			return types.TypeInPress
		}
	}
	if strings.Contains(lower, "in press") {
		return types.TypeInPress
	}

	return types.TypeJournalArticle
}
