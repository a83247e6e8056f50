package embedding

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIProvider generates embeddings through the OpenAI embeddings API.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

func NewOpenAIProvider(apiKey string, model string) Provider {
	if model == "" {
		model = "text-embedding-3-small"
	}
	return &OpenAIProvider{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (p *OpenAIProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	res, err := p.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model: openai.EmbeddingModel(p.model),
	})
	if err != nil {
		return nil, fmt.Errorf("openai embedding request: %w", err)
	}
	if len(res.Data) != len(texts) {
		return nil, fmt.Errorf("openai embedding response: expected %d vectors, got %d", len(texts), len(res.Data))
	}

	vectors := make([][]float32, len(res.Data))
	for _, d := range res.Data {
		values := make([]float32, len(d.Embedding))
		for i, v := range d.Embedding {
			values[i] = float32(v)
		}
		vectors[d.Index] = normalizeVector(values)
	}
	return vectors, nil
}

func (p *OpenAIProvider) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vectors, err := p.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (p *OpenAIProvider) Model() string {
	return p.model
}
