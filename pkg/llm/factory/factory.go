package factory

import (
	"strings"

	"wide-toebox-be/internal/pkg/apperr"
	"wide-toebox-be/pkg/llm"
	"wide-toebox-be/pkg/llm/ollama"
	"wide-toebox-be/pkg/llm/openai"
)

// Settings carries the credentials and endpoints providers need.
type Settings struct {
	OpenAIAPIKey  string
	OllamaBaseURL string
}

// Resolve parses a "provider/model" specifier and builds the backend.
// A specifier without a slash defaults to the OpenAI provider.
func Resolve(spec string, settings Settings) (llm.Provider, error) {
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
				Reason: "required for openai chat models",
			}
		}
		return openai.NewOpenAIProvider(settings.OpenAIAPIKey, model), nil
	case "ollama":
		baseURL := settings.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, model), nil
	default:
		return nil, &apperr.ConfigurationError{
			Field:  "RESPONSE_MODEL",
			Reason: "unsupported LLM provider: " + providerName,
		}
	}
}
