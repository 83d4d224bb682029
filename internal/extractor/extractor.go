// Package extractor converts uploaded document files into plain text
// suitable for chunking. PDF files are parsed page by page; plain text
// and markdown files are read as-is.
package extractor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxPages caps how many PDF pages are extracted from a single
// document. Pages beyond the cap are skipped.
const DefaultMaxPages = 100

// Extractor reads document files and returns their plain text content.
type Extractor struct {
	// maxPages caps PDF extraction. Zero means DefaultMaxPages.
	maxPages int
}

// New returns an Extractor with the given PDF page cap. A non-positive
// maxPages falls back to DefaultMaxPages.
func New(maxPages int) *Extractor {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &Extractor{maxPages: maxPages}
}

// Supported reports whether the file's extension maps to a known format.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".txt", ".md", ".markdown":
		return true
	}
	return false
}

// ExtractFile returns the plain text content of the file at path,
// dispatching on the file extension.
func (e *Extractor) ExtractFile(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		return e.extractPDF(path)
	case ".txt", ".md", ".markdown":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("extractor: read %s: %w", path, err)
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			return "", fmt.Errorf("extractor: %s contains no text", path)
		}
		return text, nil
	default:
		return "", fmt.Errorf("extractor: unsupported file type %q — supported: .pdf, .txt, .md", ext)
	}
}
