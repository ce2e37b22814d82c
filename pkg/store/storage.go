package store

import (
	"context"

	"github.com/cartograph-ai/cartograph/pkg/common"
)

// GraphStorage defines the interface for persisting knowledge graphs.
// The persisted graph is read and written wholesale on every
// operation; there are no deltas.
type GraphStorage interface {
	// Load deserializes the persisted graph at path. A missing file is
	// not an error: Load returns (nil, nil) and the caller decides
	// whether absence means "initialize empty" or is fatal.
	Load(ctx context.Context, path string) (*common.KnowledgeGraph, error)

	// Save serializes the full graph to path, overwriting any previous
	// content.
	Save(ctx context.Context, graph *common.KnowledgeGraph, path string) error
}
