package vectorstore

import (
	"context"
	"math"
	"sort"
	"sync"

	"wide-toebox-be/pkg/embedding"
)

type memoryEntry struct {
	vector []float32
	doc    Document
}

// MemoryStore keeps the whole index in process memory. Useful for tests
// and one-shot runs where persistence is not needed.
type MemoryStore struct {
	mu       sync.RWMutex
	entries  []memoryEntry
	embedder embedding.Provider
	userID   string
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(embedder embedding.Provider, userID string) *MemoryStore {
	return &MemoryStore{
		embedder: embedder,
		userID:   userID,
	}
}

func (s *MemoryStore) AddDocuments(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.PageContent
	}
	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, doc := range docs {
		s.entries = append(s.entries, memoryEntry{vector: vectors[i], doc: doc})
	}
	return nil
}

func (s *MemoryStore) SimilaritySearch(ctx context.Context, query string, k int) ([]ScoredDocument, error) {
	queryVector, err := s.embedder.EmbedOne(ctx, query)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]ScoredDocument, 0, len(s.entries))
	for _, entry := range s.entries {
		if s.userID != "" && entry.doc.Metadata.UserID != s.userID {
			continue
		}
		results = append(results, ScoredDocument{
			Document: entry.doc,
			Score:    cosineSimilarity(queryVector, entry.vector),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

func (s *MemoryStore) ContainsHash(ctx context.Context, contentHash string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.entries {
		if entry.doc.Metadata.ContentHash == contentHash {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) DeleteBySource(ctx context.Context, source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.entries[:0]
	for _, entry := range s.entries {
		if entry.doc.Metadata.Source != source {
			kept = append(kept, entry)
		}
	}
	s.entries = kept
	return nil
}

func (s *MemoryStore) Persist(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) Len(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

// cosineSimilarity computes similarity in [-1,1]. Vectors are unit
// normalized by the embedding providers, the magnitude terms guard
// against hand-built test vectors that are not.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
