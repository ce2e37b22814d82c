package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFConverter extracts the plain text of a PDF document, page by page.
// Pages whose text cannot be extracted are skipped rather than failing
// the whole document.
type PDFConverter struct{}

// NewPDFConverter creates a converter for .pdf files.
func NewPDFConverter() *PDFConverter {
	return &PDFConverter{}
}

// Convert opens the PDF at path and returns its concatenated page text.
// The file handle is released before returning.
func (c *PDFConverter) Convert(ctx context.Context, path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	var builder strings.Builder

	totalPages := reader.NumPage()
	for i := 1; i <= totalPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages that fail to extract
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		builder.WriteString(text)
		builder.WriteString("\n\n")
	}

	result := strings.TrimSpace(builder.String())
	if result == "" {
		return "", fmt.Errorf("no extractable text in %s", path)
	}

	return result, nil
}
