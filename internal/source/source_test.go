// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextSourceParagraphs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bibliography.txt")
	content := "References\n\nGarcía, M. (2020). Deep learning methods. Journal of AI, 5(2), 100-120.\n  Smith, J. (2019). Another work. Journal, 1, 1-10.  \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lines, err := (&TextSource{Path: path}).Paragraphs()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"References",
		"",
		"García, M. (2020). Deep learning methods. Journal of AI, 5(2), 100-120.",
		"Smith, J. (2019). Another work. Journal, 1, 1-10.",
	}, lines)
}

func TestTextSourceMissingFile(t *testing.T) {
	_, err := (&TextSource{Path: "/nonexistent/bibliography.txt"}).Paragraphs()
	assert.Error(t, err)
}

func TestFromPathSelectsByExtension(t *testing.T) {
	if _, ok := FromPath("refs.pdf").(*PDFSource); !ok {
		t.Error("FromPath(.pdf) should return a PDFSource")
	}
	if _, ok := FromPath("refs.PDF").(*PDFSource); !ok {
		t.Error("FromPath(.PDF) should return a PDFSource")
	}
	if _, ok := FromPath("refs.txt").(*TextSource); !ok {
		t.Error("FromPath(.txt) should return a TextSource")
	}
}
