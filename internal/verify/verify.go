// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify drives the citation verification pipeline: filter the raw
// document lines, parse each citation, look it up in the external
// databases, and score the match. Citations are processed strictly one at
// a time; the only shared state is the append-only result list and the
// extraction-failure registry.
package verify

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/bibverify/internal/parse"
	"github.com/pdiddy/bibverify/internal/score"
	"github.com/pdiddy/bibverify/pkg/types"
)

// Lookup is the external database surface the pipeline needs. Implemented
// by lookup.Client; tests substitute fakes.
type Lookup interface {
	ByDOI(ctx context.Context, doi string) (*types.ExternalRecord, bool)
	ByTitleAuthor(ctx context.Context, title, author string) (*types.ExternalRecord, bool)
	Secondary(ctx context.Context, title, author string) bool
}

// Pipeline verifies a bibliography one citation at a time.
type Pipeline struct {
	Lookup Lookup
	Config types.VerifyConfig

	// Out receives progress lines; defaults to io.Discard when nil.
	Out io.Writer
}

// Output holds everything a run produces.
type Output struct {
	Results  []types.VerificationResult
	Failures parse.Failures
}

// Filter keeps the paragraphs that look like bibliography entries,
// numbering them in document order.
func Filter(paragraphs []string) []types.RawCitation {
	var refs []types.RawCitation
	for _, p := range paragraphs {
		line := strings.TrimSpace(p)
		if parse.IsProbableCitation(line) {
			refs = append(refs, types.RawCitation{Number: len(refs) + 1, Text: line})
		}
	}
	return refs
}

// Run processes every filtered citation sequentially. Lookup failures
// degrade inside the client, so Run itself cannot fail; the caller only
// sees the finished results and the failure registry.
func (p *Pipeline) Run(ctx context.Context, paragraphs []string) Output {
	out := p.Out
	if out == nil {
		out = io.Discard
	}

	refs := Filter(paragraphs)
	fmt.Fprintf(out, "Found %d reference entries (headers filtered)\n", len(refs))

	output := Output{Failures: make(parse.Failures)}
	for _, ref := range refs {
		fmt.Fprintf(out, "\nProcessing reference %d/%d...\n", ref.Number, len(refs))
		fmt.Fprintf(out, "  %s...\n", truncate(ref.Text, 80))

		res := p.verifyOne(ctx, ref, output.Failures, out)
		output.Results = append(output.Results, res)

		fmt.Fprintf(out, "  %s Status: %s | Score: %d | Sim: %.2f | Type: %s\n",
			statusGlyph(res.Status), res.Status, res.MatchScore, res.TitleSimilarity, res.Type)
	}
	return output
}

// verifyOne runs the parse → lookup → score sequence for one citation.
func (p *Pipeline) verifyOne(ctx context.Context, ref types.RawCitation, failures parse.Failures, out io.Writer) types.VerificationResult {
	parsed := parse.Parse(ref.Text, p.Config.Match)

	res := types.VerificationResult{
		Number:       ref.Number,
		Type:         parsed.Type,
		OriginalText: ref.Text,
		Parsed:       parsed,
		Status:       types.StatusPending,
	}

	if p.Config.Debug {
		p.debugDump(out, parsed)
	}

	// Ancient texts skip verification entirely.
	if parsed.Type == types.TypeAncientText {
		score.MarkAncient(&res, p.Config.Match.AncientCutoff)
		return res
	}

	if parsed.Type == types.TypeInPress {
		res.AddIssue(types.IssueInPress)
	}

	failures.RecordMissing(ref.Number, parsed)

	// Primary lookup: direct DOI fetch when available, otherwise a ranked
	// title/author search.
	if parsed.DOI != "" || parsed.Title != "" {
		var rec *types.ExternalRecord
		if parsed.DOI != "" {
			rec, res.CrossRefFound = p.Lookup.ByDOI(ctx, parsed.DOI)
		} else {
			rec, res.CrossRefFound = p.Lookup.ByTitleAuthor(ctx, parsed.Title, parsed.FirstAuthor)
		}
		if res.CrossRefFound && rec != nil {
			score.Apply(&res, rec, p.Config.Match)
		}
	}

	// Secondary lookup is journal-articles only.
	if parsed.Title != "" && parsed.FirstAuthor != "" && parsed.Type == types.TypeJournalArticle {
		res.PubMedFound = p.Lookup.Secondary(ctx, parsed.Title, parsed.FirstAuthor)
	}

	score.Finalize(&res)
	return res
}

func (p *Pipeline) debugDump(out io.Writer, parsed types.ParsedCitation) {
	fmt.Fprintf(out, "  DEBUG - Type: %s\n", parsed.Type)
	fmt.Fprintf(out, "  DEBUG - Extracted:\n")
	fmt.Fprintf(out, "    First Author: %s\n", parsed.FirstAuthor)
	fmt.Fprintf(out, "    All Authors: %s\n", strings.Join(parsed.AllAuthors, ", "))
	fmt.Fprintf(out, "    Year: %s | Original: %s\n", parsed.Year, parsed.OriginalYear)
	fmt.Fprintf(out, "    Title: %s\n", parsed.Title)
	fmt.Fprintf(out, "    DOI: %s\n", parsed.DOI)
}

func statusGlyph(s types.Status) string {
	switch s {
	case types.StatusAncientText:
		return "⌛"
	case types.StatusVerified:
		return "✓"
	default:
		return "⚠"
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
