package vectorstore

import (
	"context"
	"time"
)

// Metadata carries the provenance of an indexed chunk.
type Metadata struct {
	Source       string `json:"source" msgpack:"source"`
	Title        string `json:"title" msgpack:"title"`
	UserID       string `json:"user_id" msgpack:"user_id"`
	ContentHash  string `json:"content_hash" msgpack:"content_hash"`
	LastModified string `json:"last_modified,omitempty" msgpack:"last_modified,omitempty"`
}

// ParseTime interprets the LastModified field. Sitemaps carry either full
// RFC 3339 instants or bare dates, both are accepted.
func (m Metadata) ParseTime() (time.Time, bool) {
	if m.LastModified == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, m.LastModified); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Document is a chunk of source content plus its provenance. Immutable
// once stored; the content hash is its identity for de-duplication.
type Document struct {
	PageContent string   `json:"page_content" msgpack:"page_content"`
	Metadata    Metadata `json:"metadata" msgpack:"metadata"`
}

// ScoredDocument pairs a document with its similarity score in [0,1].
type ScoredDocument struct {
	Document
	Score float64
}

// Store is the uniform contract every backend implements. Searches are
// scoped to the owner partition the store was opened with.
type Store interface {
	// AddDocuments embeds and indexes the given chunks.
	AddDocuments(ctx context.Context, docs []Document) error

	// SimilaritySearch returns up to k documents ordered by descending
	// cosine similarity against the query text.
	SimilaritySearch(ctx context.Context, query string, k int) ([]ScoredDocument, error)

	// ContainsHash reports whether any indexed chunk carries the hash.
	ContainsHash(ctx context.Context, contentHash string) (bool, error)

	// DeleteBySource removes every chunk ingested from the given source
	// locator. Used to retract stale chunks before re-ingesting a
	// changed URL.
	DeleteBySource(ctx context.Context, source string) error

	// Persist flushes the index to its backing storage. A no-op for
	// backends that write through.
	Persist(ctx context.Context) error

	// Len reports the number of indexed chunks visible to this handle.
	Len(ctx context.Context) (int, error)
}
