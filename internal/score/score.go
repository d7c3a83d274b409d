// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score reconciles extracted citation metadata against external
// lookup records and assigns each citation a 0-100 confidence score and a
// final verification status.
//
// The score has three components: title similarity (50/25/0 against
// type-specific thresholds), year closeness (25/15/0, with a flat 20 and an
// informational flag for classics), and first-author overlap (25/0).
package score

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/bibverify/internal/textnorm"
	"github.com/pdiddy/bibverify/pkg/types"
)

const (
	// verifiedFloor is the minimum match score for VERIFIED status.
	verifiedFloor = 50

	// maxVerifiedAuthors caps the verified-author string at the first
	// few names.
	maxVerifiedAuthors = 3
)

// Thresholds returns the (high, low) title-similarity thresholds for a
// reference type. Books get the lenient pair; everything else uses the
// journal-article pair.
func Thresholds(t types.ReferenceType, cfg types.MatchConfig) (high, low float64) {
	if t == types.TypeBook {
		return cfg.BookTitleSimilarityHigh, cfg.BookTitleSimilarityLow
	}
	return cfg.TitleSimilarityHigh, cfg.TitleSimilarityLow
}

// Apply fills the verified fields of res from the lookup record and
// computes the match score. It is only called when a record was found.
func Apply(res *types.VerificationResult, rec *types.ExternalRecord, cfg types.MatchConfig) {
	res.VerifiedDOI = rec.DOI
	res.VerifiedTitle = rec.Title
	res.VerifiedAuthors = rec.FormatAuthors(maxVerifiedAuthors)
	res.VerifiedYear = rec.Year

	high, low := Thresholds(res.Type, cfg)
	score := 0

	// Title component.
	if res.Parsed.Title != "" && res.VerifiedTitle != "" {
		sim := textnorm.Similarity(res.Parsed.Title, res.VerifiedTitle)
		res.TitleSimilarity = math.Round(sim*1000) / 1000
		switch {
		case sim >= high:
			score += 50
		case sim >= low:
			score += 25
		}
	}

	// Year component.
	if extracted, err := strconv.Atoi(res.Parsed.Year); err == nil {
		if verified, err := strconv.Atoi(res.VerifiedYear); err == nil {
			diff := extracted - verified
			if diff < 0 {
				diff = -diff
			}
			if res.Parsed.IsClassic() {
				// Classics and translations: the cited edition year is
				// expected to differ from the database year, so credit
				// the find and flag it for the reviewer.
				res.AddIssue(fmt.Sprintf("CLASSIC_EDITION_(orig_%s_edit_%s_verified_%s)",
					res.Parsed.OriginalYear, res.Parsed.Year, res.VerifiedYear))
				score += 20
			} else {
				switch {
				case diff == 0:
					score += 25
				case diff <= cfg.AllowYearDifference:
					score += 15
				default:
					res.AddIssue(fmt.Sprintf("YEAR_MISMATCH_%dyrs", diff))
				}
			}
		}
	}

	// Author component: accent-stripped, case-insensitive substring test
	// of the extracted surname within the verified author string.
	if res.Parsed.FirstAuthor != "" && res.VerifiedAuthors != "" {
		extracted := textnorm.StripAccents(strings.ToLower(res.Parsed.FirstAuthor))
		verified := textnorm.StripAccents(strings.ToLower(res.VerifiedAuthors))
		if strings.Contains(verified, extracted) {
			score += 25
		}
	}

	res.MatchScore = score
}

// MarkAncient finalizes an ancient-text citation: verification is skipped
// entirely and the status records why.
func MarkAncient(res *types.VerificationResult, cutoff int) {
	res.Status = types.StatusAncientText
	res.AddIssue(fmt.Sprintf("Ancient text (pre-%d) - verification not applicable", cutoff))
}

// Finalize assigns the final status and the trailing issue codes. Called
// once per non-ancient citation, after any lookups and scoring.
func Finalize(res *types.VerificationResult) {
	switch {
	case !res.CrossRefFound && !res.PubMedFound:
		res.AddIssue(types.IssueNotFound)
		res.Status = types.StatusNeedsReview
	case res.MatchScore < verifiedFloor:
		res.AddIssue(types.IssueLowMatch)
		res.Status = types.StatusNeedsReview
	default:
		res.Status = types.StatusVerified
	}

	// Informational: missing DOI never changes the status.
	if res.Parsed.DOI == "" {
		res.AddIssue(types.IssueNoDOI)
	}

	// A missing title makes the title component unverifiable, so the
	// citation always goes to review.
	if res.Parsed.Title == "" {
		res.AddIssue(types.IssueTitleNotExtracted)
		res.Status = types.StatusNeedsReview
	}
}
