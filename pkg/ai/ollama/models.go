package ollama

import (
	"context"
)

// ListModels returns the names of the models available on the Ollama server.
func (c *GenerationOllamaClient) ListModels(ctx context.Context) ([]string, error) {
	resp, err := c.Client.List(ctx)
	if err != nil {
		return nil, err
	}

	models := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		models = append(models, m.Name)
	}

	return models, nil
}
