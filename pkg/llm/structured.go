package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// GenerateStructured asks the model for a JSON-only response, decodes it
// into out and validates the result against out's struct tags. Models
// sometimes wrap JSON in markdown fences even when told not to, so fences
// are stripped before decoding.
func GenerateStructured(ctx context.Context, provider Provider, prompt string, out any, options ...Option) error {
	options = append(options, WithJSONOutput())
	raw, err := provider.Generate(ctx, prompt, options...)
	if err != nil {
		return err
	}

	cleaned := stripCodeFences(raw)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return fmt.Errorf("decode structured response: %w (raw: %s)", err, truncate(raw, 200))
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("validate structured response: %w", err)
	}
	return nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
