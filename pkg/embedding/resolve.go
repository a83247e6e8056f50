package embedding

import (
	"strings"

	"wide-toebox-be/internal/pkg/apperr"
)

// Settings carries the credentials and endpoints the providers need.
type Settings struct {
	OpenAIAPIKey  string
	CohereAPIKey  string
	OllamaBaseURL string
}

// Resolve parses a "provider/model" specifier and builds the matching
// provider. A bare model name with no slash resolves to OpenAI, so
// "text-embedding-3-small" and "openai/text-embedding-3-small" are
// equivalent.
func Resolve(spec string, settings Settings) (Provider, error) {
	providerName := "openai"
	model := spec
	if idx := strings.Index(spec, "/"); idx >= 0 {
		providerName = spec[:idx]
		model = spec[idx+1:]
	}

	switch providerName {
	case "openai":
		if settings.OpenAIAPIKey == "" {
			return nil, &apperr.ConfigurationError{
				Field:  "OPENAI_API_KEY",
				Reason: "required for openai embeddings",
			}
		}
		return NewOpenAIProvider(settings.OpenAIAPIKey, model), nil
	case "cohere":
		if settings.CohereAPIKey == "" {
			return nil, &apperr.ConfigurationError{
				Field:  "COHERE_API_KEY",
				Reason: "required for cohere embeddings",
			}
		}
		return NewCohereProvider(settings.CohereAPIKey, model), nil
	case "ollama":
		return NewOllamaProvider(settings.OllamaBaseURL, model), nil
	default:
		return nil, &apperr.ConfigurationError{
			Field:  "EMBEDDING_MODEL",
			Reason: "unsupported embedding provider: " + providerName,
		}
	}
}
