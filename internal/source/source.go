// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source loads bibliography documents and yields their paragraphs
// in document order. A missing or unreadable document is the only fatal
// error in the whole pipeline.
package source

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source yields the ordered paragraph strings of a bibliography document.
type Source interface {
	Paragraphs() ([]string, error)
}

// FromPath selects a source implementation by file extension: .pdf gets
// the PDF reader, everything else is treated as plain text with one
// paragraph per line.
func FromPath(path string) Source {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return &PDFSource{Path: path}
	}
	return &TextSource{Path: path}
}

// TextSource reads a plain-text bibliography, one entry per line.
type TextSource struct {
	Path string
}

// Paragraphs returns the trimmed lines of the file in order.
func (s *TextSource) Paragraphs() ([]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening bibliography %s: %w", s.Path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading bibliography %s: %w", s.Path, err)
	}
	return lines, nil
}
