// Package chunker splits raw document text into overlapping chunks and
// assigns each chunk a stable identifier. Both operations are pure: no I/O,
// no state, identical inputs always produce identical outputs, which keeps
// ingestion reproducible and the package trivially testable.
package chunker

import (
	"fmt"
	"strconv"
	"strings"
)

// Defaults used by the ingestion pipeline when the caller does not override
// them. Not tuned — they mirror the values the service has always shipped with.
const (
	// DefaultChunkSize is the maximum number of characters per chunk.
	DefaultChunkSize = 500

	// DefaultChunkOverlap is the number of characters shared between
	// consecutive chunks so that sentences straddling a boundary stay
	// retrievable.
	DefaultChunkOverlap = 100
)

// ValidateParams checks the chunking parameters the pipeline was configured
// with. overlap must be strictly smaller than size or the cursor would never
// advance; callers must reject that configuration before chunking.
func ValidateParams(size, overlap int) error {
	if size <= 0 {
		return fmt.Errorf("chunker: chunk size must be > 0, got %d", size)
	}
	if overlap < 0 {
		return fmt.Errorf("chunker: chunk overlap must be >= 0, got %d", overlap)
	}
	if overlap >= size {
		return fmt.Errorf("chunker: chunk overlap %d must be smaller than chunk size %d", overlap, size)
	}
	return nil
}

// Split partitions text into chunks of at most size characters, each
// consecutive pair sharing overlap characters. Boundaries are rune-aligned,
// so every chunk of a valid UTF-8 document is itself valid UTF-8. Chunks that
// are empty after trimming whitespace are dropped, so whitespace-only input
// yields no chunks. The final chunk may be shorter than size.
//
// Split panics on parameters that ValidateParams rejects — enforcing the
// precondition is the caller's responsibility at the configuration boundary.
func Split(text string, size, overlap int) []string {
	if err := ValidateParams(size, overlap); err != nil {
		panic(err)
	}

	runes := []rune(text)
	var chunks []string
	for start := 0; start < len(runes); start += size - overlap {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		if c := string(runes[start:end]); strings.TrimSpace(c) != "" {
			chunks = append(chunks, c)
		}
		if end == len(runes) {
			break
		}
	}

	return chunks
}

// ChunkID returns the stable identifier for the chunk at position index of
// the named document. The document name is normalized by replacing every
// character outside [A-Za-z0-9] with an underscore, then the zero-based index
// is appended unnormalized.
//
// Uniqueness holds only for exact-identical normalized names: "a.pdf" and
// "a!pdf" both normalize to "a_pdf" and will collide at equal indices. This
// is an accepted property of the scheme, not a defect — the service indexes a
// single active document at a time.
func ChunkID(documentName string, index int) string {
	var b strings.Builder
	b.Grow(len(documentName) + 10)
	for _, r := range documentName {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	b.WriteString("_chunk_")
	b.WriteString(strconv.Itoa(index))
	return b.String()
}
