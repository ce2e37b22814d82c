package graph

import (
	"github.com/cartograph-ai/cartograph/pkg/annotate"
	"github.com/cartograph-ai/cartograph/pkg/loader"
)

// GraphClient is the main client for building knowledge graphs from a
// document corpus. It holds the annotation provider, the converter
// registry and the chunking configuration.
//
// A GraphClient should be created using NewGraphClient.
type GraphClient struct {
	annotator    annotate.Annotator
	converters   loader.Registry
	tokenEncoder string
	maxTokens    int
}

// NewGraphClientParams defines the configuration parameters for
// creating a new GraphClient.
//
// Annotator is the linguistic-annotation provider used for extraction.
// Converters maps file extensions to document-to-text converters.
// TokenEncoder names the tiktoken encoding used to budget annotation
// units; MaxTokens is the per-unit token budget.
type NewGraphClientParams struct {
	Annotator    annotate.Annotator
	Converters   loader.Registry
	TokenEncoder string
	MaxTokens    int
}

// NewGraphClient creates and returns a new GraphClient configured with
// the provided parameters.
//
// Example:
//
//	params := graph.NewGraphClientParams{
//		Annotator:    annotator,
//		Converters:   loader.Registry{".pdf": pdf.NewPDFConverter()},
//		TokenEncoder: "o200k_base",
//		MaxTokens:    1200,
//	}
//	client := graph.NewGraphClient(params)
func NewGraphClient(params NewGraphClientParams) *GraphClient {
	maxTokens := params.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1200
	}
	encoder := params.TokenEncoder
	if encoder == "" {
		encoder = "o200k_base"
	}

	return &GraphClient{
		annotator:    params.Annotator,
		converters:   params.Converters,
		tokenEncoder: encoder,
		maxTokens:    maxTokens,
	}
}
