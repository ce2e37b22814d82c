package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/cartograph-ai/cartograph/pkg/ai"
	"github.com/cartograph-ai/cartograph/pkg/common"
	"github.com/cartograph-ai/cartograph/pkg/logger"

	"github.com/pkoukk/tiktoken-go"
)

// ErrNoContext is returned when no grounding context is available for
// a question: either no graph node matched the query, or no markdown
// files were found. Generation is never invoked in this case.
var ErrNoContext = errors.New("no relevant information found")

// QueryResult holds the generated answer together with the grounding
// context that was actually used.
type QueryResult struct {
	Answer        string
	Context       string
	ContextTokens int
}

// QueryClient answers questions grounded in a knowledge graph or a
// markdown corpus using the configured generation provider.
//
// A QueryClient should be created using NewQueryClient.
type QueryClient struct {
	aiClient     ai.GenerationClient
	tokenEncoder string
	model        string
}

// NewQueryClientParams defines the configuration parameters for
// creating a new QueryClient. Model overrides the provider's default
// model when non-empty.
type NewQueryClientParams struct {
	AIClient     ai.GenerationClient
	TokenEncoder string
	Model        string
}

// NewQueryClient creates and returns a new QueryClient configured with
// the provided parameters.
func NewQueryClient(params NewQueryClientParams) *QueryClient {
	encoder := params.TokenEncoder
	if encoder == "" {
		encoder = "o200k_base"
	}

	return &QueryClient{
		aiClient:     params.AIClient,
		tokenEncoder: encoder,
		model:        params.Model,
	}
}

// Query matches the question against the graph, assembles the relevant
// subgraph as context, and generates a grounded answer. If no node
// matches, ErrNoContext is returned and generation is never invoked.
func (c *QueryClient) Query(
	ctx context.Context,
	g *common.KnowledgeGraph,
	question string,
) (*QueryResult, error) {
	relevant := RelevantNodes(g, question)
	if len(relevant) == 0 {
		return nil, ErrNoContext
	}

	queryContext := BuildContext(g, relevant)

	logger.Info("[Query] Context assembled", "relevant_nodes", len(relevant))

	return c.generate(ctx, question, queryContext)
}

// QueryMarkdown answers the question grounded in the raw concatenation
// of every markdown file in docsDir, bypassing the graph. Zero markdown
// files yields ErrNoContext without a generation call.
func (c *QueryClient) QueryMarkdown(
	ctx context.Context,
	docsDir string,
	question string,
) (*QueryResult, error) {
	queryContext, err := ContextFromMarkdown(docsDir)
	if err != nil {
		return nil, err
	}

	return c.generate(ctx, question, queryContext)
}

func (c *QueryClient) generate(
	ctx context.Context,
	question string,
	queryContext string,
) (*QueryResult, error) {
	tokens, err := c.countTokens(queryContext)
	if err != nil {
		return nil, err
	}
	logger.Info("[Query] Generating answer", "context_tokens", tokens)

	opts := []ai.GenerateOption{
		ai.WithSystemPrompts(fmt.Sprintf(ai.QueryPrompt, queryContext)),
	}
	if c.model != "" {
		opts = append(opts, ai.WithModel(c.model))
	}

	answer, err := c.aiClient.GenerateCompletion(ctx, question, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	return &QueryResult{
		Answer:        answer,
		Context:       queryContext,
		ContextTokens: tokens,
	}, nil
}

func (c *QueryClient) countTokens(text string) (int, error) {
	enc, err := tiktoken.GetEncoding(c.tokenEncoder)
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}
