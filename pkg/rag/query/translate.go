package query

import (
	"context"

	"wide-toebox-be/internal/pkg/apperr"
	"wide-toebox-be/pkg/llm"
	"wide-toebox-be/pkg/rag/prompt"
)

// Translate asks the model to convert a natural language question into
// structured search conditions. Unusable output comes back as a
// TranslationError so the caller can fall back to keyword extraction.
func Translate(ctx context.Context, provider llm.Provider, queryText string) (*ShoeSearchConditions, error) {
	fullPrompt := prompt.TranslateSystemPrompt + "\n\nUser query: " + queryText

	var conditions ShoeSearchConditions
	err := llm.GenerateStructured(ctx, provider, fullPrompt, &conditions, llm.WithTemperature(0))
	if err != nil {
		return nil, &apperr.TranslationError{Err: err}
	}
	return &conditions, nil
}
