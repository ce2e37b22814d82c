package openai

import (
	"context"
)

// ListModels queries the endpoint for the model identifiers it serves.
func (c *GenerationOpenAIClient) ListModels(ctx context.Context) ([]string, error) {
	var models []string

	page := c.Client.Models.ListAutoPaging(ctx)
	for page.Next() {
		models = append(models, page.Current().ID)
	}
	if err := page.Err(); err != nil {
		return nil, err
	}

	return models, nil
}
