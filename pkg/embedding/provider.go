package embedding

import "context"

// Provider defines the interface for generating text embeddings
type Provider interface {
	// Embed generates one vector per input text, preserving order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedOne is a convenience wrapper for single-text callers.
	EmbedOne(ctx context.Context, text string) ([]float32, error)

	// Model returns the concrete model identifier in use.
	Model() string
}
