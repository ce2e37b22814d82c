package query

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cartograph-ai/cartograph/pkg/logger"
)

// ContextFromMarkdown builds context by concatenating every markdown
// file in the directory, bypassing the graph entirely. Each file is
// wrapped in a content header carrying its name. A file that cannot be
// read is logged and skipped; zero readable files yields ErrNoContext.
func ContextFromMarkdown(docsDir string) (string, error) {
	entries, err := os.ReadDir(docsDir)
	if err != nil {
		return "", fmt.Errorf("failed to read markdown directory: %w", err)
	}

	var parts []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(docsDir, entry.Name()))
		if err != nil {
			logger.Error("[Query] Failed to read markdown file", "file", entry.Name(), "err", err)
			continue
		}

		parts = append(parts, fmt.Sprintf("\n=== Contenu de %s ===\n%s\n", entry.Name(), content))
	}

	if len(parts) == 0 {
		return "", ErrNoContext
	}

	return strings.Join(parts, "\n"), nil
}
