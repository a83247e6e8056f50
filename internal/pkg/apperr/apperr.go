package apperr

import (
	"errors"
	"fmt"
)

// ConfigurationError indicates an invalid or unsupported configuration value.
// It is fatal to the current request and is not retried.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

func NewConfigurationError(field, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason}
}

// SourceUnavailableError marks a single ingestion source (path, URL, sitemap)
// that could not be read. Callers skip the item and continue the batch.
type SourceUnavailableError struct {
	Source string
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source unavailable: %s: %v", e.Source, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

func NewSourceUnavailable(source string, err error) *SourceUnavailableError {
	return &SourceUnavailableError{Source: source, Err: err}
}

// ErrStoreUnavailable is returned when a retrieval is attempted against a
// vector store that was never ingested or holds no documents.
var ErrStoreUnavailable = errors.New("vector store not found or empty, run ingestion first")

// TranslationError indicates the structured natural-language translation step
// failed or produced output that does not conform to the conditions schema.
// It is always recovered via the keyword fallback, never user-visible.
type TranslationError struct {
	Err error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("query translation failed: %v", e.Err)
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}

func NewTranslationError(err error) *TranslationError {
	return &TranslationError{Err: err}
}

// IsConfiguration reports whether err is a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsTranslation reports whether err is a TranslationError.
func IsTranslation(err error) bool {
	var te *TranslationError
	return errors.As(err, &te)
}
