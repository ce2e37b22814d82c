package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/cartograph-ai/cartograph/pkg/common"
)

// FileGraphStore persists knowledge graphs as GraphML files on the
// local filesystem. It implements GraphStorage.
type FileGraphStore struct{}

// NewFileGraphStore creates a filesystem-backed graph store.
func NewFileGraphStore() *FileGraphStore {
	return &FileGraphStore{}
}

// Load reads and parses the GraphML file at path. A missing file
// returns (nil, nil); any other read or parse failure is an error.
func (s *FileGraphStore) Load(ctx context.Context, path string) (*common.KnowledgeGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read graph store: %w", err)
	}

	graph, err := UnmarshalGraphML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse graph store %s: %w", path, err)
	}

	return graph, nil
}

// Save writes the full graph to path as GraphML, replacing any
// previous content. Persistence is always a full rewrite, never a
// delta.
func (s *FileGraphStore) Save(ctx context.Context, graph *common.KnowledgeGraph, path string) error {
	data, err := MarshalGraphML(graph)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write graph store: %w", err)
	}

	return nil
}
