// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"sort"
	"strings"

	"github.com/pdiddy/bibverify/pkg/types"
)

// Failure reasons recorded when an extraction comes back empty.
const (
	FailTitle  = "Title extraction failed - pattern may need adjustment"
	FailAuthor = "Author extraction failed"
	FailYear   = "Year extraction failed"
)

// Failures accumulates extraction problems keyed by reference number. It is
// append-only during a run and rendered once at the end for diagnostics.
type Failures map[int][]string

// Record notes one failure reason for a reference.
func (f Failures) Record(refNum int, reason string) {
	f[refNum] = append(f[refNum], reason)
}

// RecordMissing inspects a parsed citation and records a reason for each
// field that came back empty. Missing fields never block processing; this
// registry exists so the extraction patterns can be tuned afterwards.
func (f Failures) RecordMissing(refNum int, p types.ParsedCitation) {
	if p.Title == "" {
		f.Record(refNum, FailTitle)
	}
	if p.FirstAuthor == "" {
		f.Record(refNum, FailAuthor)
	}
	if p.Year == "" {
		f.Record(refNum, FailYear)
	}
}

// Reasons returns the joined reasons for one reference.
func (f Failures) Reasons(refNum int) string {
	return strings.Join(f[refNum], "; ")
}

// Numbers returns the reference numbers with failures in ascending order.
func (f Failures) Numbers() []int {
	nums := make([]int, 0, len(f))
	for n := range f {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}
