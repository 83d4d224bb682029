package extractor

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF parses the PDF at path and concatenates the plain text of
// its pages, up to the configured page cap. Pages that fail to decode
// are skipped; the document as a whole only fails when no page yields
// any text.
func (e *Extractor) extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("extractor: open pdf %s: %w", path, err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	if numPages > e.maxPages {
		numPages = e.maxPages
	}

	var sb strings.Builder
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(text)
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("extractor: %s contains no extractable text", path)
	}
	return sb.String(), nil
}
