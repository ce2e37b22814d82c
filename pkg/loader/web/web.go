package web

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/readeck/go-readability/v2"
)

// HTMLConverter extracts the readable main content of a saved HTML page
// using readability.
type HTMLConverter struct{}

// NewHTMLConverter creates a converter for .html files.
func NewHTMLConverter() *HTMLConverter {
	return &HTMLConverter{}
}

// Convert reads the HTML file at path and returns the extracted
// article text. The file handle is released before parsing begins.
func (c *HTMLConverter) Convert(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open html file: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		f.Close()
		return "", err
	}
	base := &url.URL{Scheme: "file", Path: abs}

	article, err := readability.FromReader(f, base)
	f.Close()
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	var builder strings.Builder
	if err := article.RenderText(&builder); err != nil {
		return "", fmt.Errorf("failed to render article text: %w", err)
	}

	result := strings.TrimSpace(builder.String())
	if result == "" {
		return "", fmt.Errorf("no readable content in %s", path)
	}

	return result, nil
}
