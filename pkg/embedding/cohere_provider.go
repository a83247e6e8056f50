package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// CohereProvider generates embeddings through Cohere's v2 embed endpoint.
type CohereProvider struct {
	apiKey string
	model  string
	client *http.Client
}

func NewCohereProvider(apiKey string, model string) Provider {
	if model == "" {
		model = "embed-english-v3.0"
	}
	return &CohereProvider{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

type cohereEmbedRequest struct {
	Model          string   `json:"model"`
	Texts          []string `json:"texts"`
	InputType      string   `json:"input_type"`
	EmbeddingTypes []string `json:"embedding_types"`
}

type cohereEmbedResponse struct {
	Embeddings struct {
		Float [][]float32 `json:"float"`
	} `json:"embeddings"`
}

func (p *CohereProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	reqBody := cohereEmbedRequest{
		Model:          p.model,
		Texts:          texts,
		InputType:      "search_document",
		EmbeddingTypes: []string{"float"},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.cohere.com/v2/embed", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resByte, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from cohere response, code %d, body %s", res.StatusCode, string(resByte))
	}

	var embedRes cohereEmbedResponse
	if err := json.Unmarshal(resByte, &embedRes); err != nil {
		return nil, err
	}
	if len(embedRes.Embeddings.Float) != len(texts) {
		return nil, fmt.Errorf("cohere embedding response: expected %d vectors, got %d", len(texts), len(embedRes.Embeddings.Float))
	}

	vectors := make([][]float32, len(embedRes.Embeddings.Float))
	for i, values := range embedRes.Embeddings.Float {
		vectors[i] = normalizeVector(values)
	}
	return vectors, nil
}

func (p *CohereProvider) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vectors, err := p.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (p *CohereProvider) Model() string {
	return p.model
}
