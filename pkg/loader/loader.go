package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// Converter defines the interface for document-to-text converters.
// Implementations turn one source document (PDF, HTML, ...) into
// markdown-ish plain text. Conversion is a blocking call; failures are
// per-document and reported to the caller.
type Converter interface {
	Convert(ctx context.Context, path string) (string, error)
}

// Registry maps lowercased file extensions (including the dot, e.g.
// ".pdf") to the converter responsible for them. It is constructed once
// in main and passed into the batch driver.
type Registry map[string]Converter

// For returns the converter registered for the file's extension, or
// nil if the file type is not handled.
func (r Registry) For(path string) Converter {
	return r[strings.ToLower(filepath.Ext(path))]
}

// MarkdownPath returns the markdown cache path for a source document:
// the same base name with the extension replaced by .md.
func MarkdownPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".md"
}

// HasMarkdownCache reports whether the markdown cache for the given
// source document already exists.
func HasMarkdownCache(path string) bool {
	_, err := os.Stat(MarkdownPath(path))
	return err == nil
}

// WriteMarkdownCache writes the converted text to the document's
// markdown cache, truncating any previous content.
func WriteMarkdownCache(path string, content string) error {
	return os.WriteFile(MarkdownPath(path), []byte(content), 0o644)
}

// ReadMarkdownCache reads the document's markdown cache.
func ReadMarkdownCache(path string) (string, error) {
	content, err := os.ReadFile(MarkdownPath(path))
	if err != nil {
		return "", err
	}
	return string(content), nil
}
