// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bibverify/pkg/types"
)

// fakeLookup scripts lookup responses and records which calls were made.
type fakeLookup struct {
	byDOI       map[string]*types.ExternalRecord
	byTitle     map[string]*types.ExternalRecord
	secondary   map[string]bool
	doiCalls    []string
	titleCalls  []string
	secondCalls []string
}

func (f *fakeLookup) ByDOI(_ context.Context, doi string) (*types.ExternalRecord, bool) {
	f.doiCalls = append(f.doiCalls, doi)
	rec, ok := f.byDOI[doi]
	return rec, ok
}

func (f *fakeLookup) ByTitleAuthor(_ context.Context, title, _ string) (*types.ExternalRecord, bool) {
	f.titleCalls = append(f.titleCalls, title)
	rec, ok := f.byTitle[title]
	return rec, ok
}

func (f *fakeLookup) Secondary(_ context.Context, title, _ string) bool {
	f.secondCalls = append(f.secondCalls, title)
	return f.secondary[title]
}

func testPipeline(l Lookup) *Pipeline {
	return &Pipeline{
		Lookup: l,
		Config: types.VerifyConfig{Match: types.DefaultMatchConfig()},
	}
}

func TestFilterNumbersInDocumentOrder(t *testing.T) {
	paragraphs := []string{
		"References",
		"",
		"García, M. (2020). Deep learning methods. Journal of AI, 5(2), 100-120.",
		"12 | Page",
		"Plato. (400 BCE). The Republic (G. M. A. Grube, Trans.).",
	}
	refs := Filter(paragraphs)
	require.Len(t, refs, 2)
	assert.Equal(t, 1, refs[0].Number)
	assert.Contains(t, refs[0].Text, "García")
	assert.Equal(t, 2, refs[1].Number)
	assert.Contains(t, refs[1].Text, "Plato")
}

func TestRunVerifiedJournalArticle(t *testing.T) {
	lk := &fakeLookup{
		byTitle: map[string]*types.ExternalRecord{
			"Deep learning methods": {
				DOI:     "10.1037/amp0000191",
				Title:   "Deep Learning Methods",
				Authors: []types.AuthorName{{Family: "Garcia", Given: "M."}},
				Year:    "2020",
			},
		},
		secondary: map[string]bool{"Deep learning methods": true},
	}

	out := testPipeline(lk).Run(context.Background(), []string{
		"García, M. (2020). Deep learning methods. Journal of AI, 5(2), 100-120.",
	})
	require.Len(t, out.Results, 1)

	res := out.Results[0]
	assert.Equal(t, types.StatusVerified, res.Status)
	assert.Equal(t, 100, res.MatchScore)
	assert.True(t, res.CrossRefFound)
	assert.True(t, res.PubMedFound)
	assert.Equal(t, "10.1037/amp0000191", res.VerifiedDOI)
	assert.Equal(t, []string{"Deep learning methods"}, lk.titleCalls)
	assert.Empty(t, lk.doiCalls, "no DOI extracted, direct fetch should not run")
}

func TestRunDOITakesPriorityOverSearch(t *testing.T) {
	lk := &fakeLookup{
		byDOI: map[string]*types.ExternalRecord{
			"10.1016/j.jbusres.2019.07.039": {
				DOI:   "10.1016/j.jbusres.2019.07.039",
				Title: "Organizational research methods and practice",
				Year:  "2019",
				Authors: []types.AuthorName{
					{Family: "Smith", Given: "J."},
				},
			},
		},
	}

	out := testPipeline(lk).Run(context.Background(), []string{
		"Smith, J. (2019). Organizational research methods and practice. Journal of Business Research, 104, 1-12. 10.1016/j.jbusres.2019.07.039",
	})
	require.Len(t, out.Results, 1)

	assert.Equal(t, []string{"10.1016/j.jbusres.2019.07.039"}, lk.doiCalls)
	assert.Empty(t, lk.titleCalls)
	assert.Equal(t, types.StatusVerified, out.Results[0].Status)
}

func TestRunAncientTextSkipsLookup(t *testing.T) {
	lk := &fakeLookup{}
	out := testPipeline(lk).Run(context.Background(), []string{
		"Plato. (400 BCE). The Republic (G. M. A. Grube, Trans.). Hackett Publishing.",
	})
	require.Len(t, out.Results, 1)

	res := out.Results[0]
	assert.Equal(t, types.TypeAncientText, res.Type)
	assert.Equal(t, types.StatusAncientText, res.Status)
	assert.Empty(t, lk.doiCalls)
	assert.Empty(t, lk.titleCalls)
	assert.Empty(t, lk.secondCalls)
	// Ancient texts never enter the failure registry.
	assert.Empty(t, out.Failures)
}

func TestRunNotFoundAnywhere(t *testing.T) {
	lk := &fakeLookup{}
	out := testPipeline(lk).Run(context.Background(), []string{
		"Nguyen, T. (2018). A thoroughly obscure study. Journal of Obscurity, 3, 4-5.",
	})
	require.Len(t, out.Results, 1)

	res := out.Results[0]
	assert.Equal(t, types.StatusNeedsReview, res.Status)
	assert.Contains(t, res.Issues, types.IssueNotFound)
	assert.False(t, res.CrossRefFound)
	assert.False(t, res.PubMedFound)
}

func TestRunInPressCarriesNote(t *testing.T) {
	lk := &fakeLookup{}
	out := testPipeline(lk).Run(context.Background(), []string{
		"Lee, K. (2050). Anticipated results of upcoming work. Journal of Tomorrow, 1, 1-2.",
	})
	require.Len(t, out.Results, 1)

	res := out.Results[0]
	assert.Equal(t, types.TypeInPress, res.Type)
	assert.Contains(t, res.Issues, types.IssueInPress)
	assert.Contains(t, res.Issues, types.IssueNotFound)
	// The in-press note precedes lookup-derived issues.
	assert.Equal(t, types.IssueInPress, res.Issues[0])
	// Secondary lookup is journal-articles only.
	assert.Empty(t, lk.secondCalls)
}

func TestRunSecondarySkippedForBooks(t *testing.T) {
	lk := &fakeLookup{
		byTitle: map[string]*types.ExternalRecord{
			"Leading change": {Title: "Leading Change", Year: "2012",
				Authors: []types.AuthorName{{Family: "Kotter", Given: "J. P."}}},
		},
	}
	out := testPipeline(lk).Run(context.Background(), []string{
		"Kotter, J. P. (2012). Leading change. Harvard Business Review Press.",
	})
	require.Len(t, out.Results, 1)

	assert.Equal(t, types.TypeBook, out.Results[0].Type)
	assert.Empty(t, lk.secondCalls)
}

func TestRunRecordsExtractionFailures(t *testing.T) {
	lk := &fakeLookup{}
	out := testPipeline(lk).Run(context.Background(), []string{
		// Year present but author and title patterns both fail.
		"UNESCO annual report (2021) without recognizable authors.",
	})
	require.Len(t, out.Results, 1)

	res := out.Results[0]
	assert.Equal(t, types.StatusNeedsReview, res.Status)
	assert.Contains(t, res.Issues, types.IssueTitleNotExtracted)
	require.Contains(t, out.Failures, 1)
	assert.Contains(t, out.Failures.Reasons(1), "Title extraction failed")
	assert.Contains(t, out.Failures.Reasons(1), "Author extraction failed")
}

func TestRunWritesProgress(t *testing.T) {
	var buf bytes.Buffer
	p := testPipeline(&fakeLookup{})
	p.Out = &buf
	p.Run(context.Background(), []string{
		"García, M. (2020). Deep learning methods. Journal of AI, 5(2), 100-120.",
	})

	assert.Contains(t, buf.String(), "Found 1 reference entries")
	assert.Contains(t, buf.String(), "Processing reference 1/1")
	assert.Contains(t, buf.String(), "Status: NEEDS_REVIEW")
}
