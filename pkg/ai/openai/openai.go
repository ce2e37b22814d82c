package openai

import (
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// GenerationOpenAIClient talks to an OpenAI-compatible chat completion
// endpoint. It implements ai.GenerationClient.
//
// A GenerationOpenAIClient should be created using NewGenerationOpenAIClient.
type GenerationOpenAIClient struct {
	model string

	baseURL string
	apiKey  string

	Client *openai.Client
}

// NewGenerationOpenAIClientParams defines the configuration parameters
// for creating a new GenerationOpenAIClient.
//
// Model specifies the default chat model used when a request carries no
// model option. BaseURL and ApiKey configure the endpoint; an empty
// BaseURL uses the official OpenAI API.
type NewGenerationOpenAIClientParams struct {
	Model string

	BaseURL string
	ApiKey  string
}

// NewGenerationOpenAIClient creates and returns a new
// GenerationOpenAIClient configured with the provided parameters.
//
// Example:
//
//	client := openai.NewGenerationOpenAIClient(openai.NewGenerationOpenAIClientParams{
//		Model:  "gpt-4o-mini",
//		ApiKey: os.Getenv("AI_CHAT_KEY"),
//	})
func NewGenerationOpenAIClient(
	params NewGenerationOpenAIClientParams,
) *GenerationOpenAIClient {
	options := []option.RequestOption{
		option.WithAPIKey(params.ApiKey),
	}
	if params.BaseURL != "" {
		options = append(options, option.WithBaseURL(params.BaseURL))
	}

	client := openai.NewClient(options...)

	return &GenerationOpenAIClient{
		model: params.Model,

		baseURL: params.BaseURL,
		apiKey:  params.ApiKey,

		Client: &client,
	}
}
