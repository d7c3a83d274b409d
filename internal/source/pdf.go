// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFSource reads a bibliography from a PDF, splitting each page's plain
// text into lines. Reference lists exported to PDF keep one entry per
// visual line, which is what the citation filter expects.
type PDFSource struct {
	Path string
}

// Paragraphs returns the trimmed text lines of every page in order. Pages
// whose text cannot be decoded are skipped rather than failing the run.
func (s *PDFSource) Paragraphs() ([]string, error) {
	f, r, err := pdf.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening bibliography %s: %w", s.Path, err)
	}
	defer f.Close()

	var lines []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	return lines, nil
}
