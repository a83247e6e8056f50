package retriever

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wide-toebox-be/pkg/vectorstore"
)

// scriptedStore returns its fixed ranking truncated to k, like a real
// store would.
type scriptedStore struct {
	ranked []vectorstore.ScoredDocument
	calls  []int
}

func (s *scriptedStore) SimilaritySearch(ctx context.Context, query string, k int) ([]vectorstore.ScoredDocument, error) {
	s.calls = append(s.calls, k)
	if k > len(s.ranked) {
		k = len(s.ranked)
	}
	return s.ranked[:k], nil
}

func (s *scriptedStore) AddDocuments(ctx context.Context, docs []vectorstore.Document) error {
	return nil
}
func (s *scriptedStore) ContainsHash(ctx context.Context, hash string) (bool, error) {
	return false, nil
}
func (s *scriptedStore) DeleteBySource(ctx context.Context, source string) error { return nil }
func (s *scriptedStore) Persist(ctx context.Context) error                       { return nil }
func (s *scriptedStore) Len(ctx context.Context) (int, error)                    { return len(s.ranked), nil }

func scored(content string, score float64, lastModified string) vectorstore.ScoredDocument {
	return vectorstore.ScoredDocument{
		Document: vectorstore.Document{
			PageContent: content,
			Metadata:    vectorstore.Metadata{LastModified: lastModified},
		},
		Score: score,
	}
}

func TestRetrieveFiltersBelowThreshold(t *testing.T) {
	store := &scriptedStore{ranked: []vectorstore.ScoredDocument{
		scored("a", 0.9, ""),
		scored("b", 0.2, ""),
	}}

	docs, err := Retrieve(context.Background(), store, "query", 0)
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.Equal(t, "a", docs[0].PageContent)
}

func TestRetrieveWidensUntilEnoughQualify(t *testing.T) {
	// first pass of 2 yields only 1 qualifying doc, widening to 4 finds 3
	store := &scriptedStore{ranked: []vectorstore.ScoredDocument{
		scored("a", 0.9, ""),
		scored("b", 0.1, ""),
		scored("c", 0.8, ""),
		scored("d", 0.7, ""),
	}}

	docs, err := Retrieve(context.Background(), store, "query", 0)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 4}, store.calls)
	assert.Len(t, docs, 3)
}

func TestRetrieveStopsWhenStoreExhausted(t *testing.T) {
	store := &scriptedStore{ranked: []vectorstore.ScoredDocument{
		scored("a", 0.1, ""),
	}}

	docs, err := Retrieve(context.Background(), store, "query", 0)
	require.NoError(t, err)

	assert.Equal(t, []int{2}, store.calls, "fewer candidates than k means no wider pass")
	assert.Empty(t, docs)
}

func TestRetrieveCapsAtMaxK(t *testing.T) {
	store := &scriptedStore{ranked: []vectorstore.ScoredDocument{
		scored("a", 0.9, ""),
		scored("b", 0.8, ""),
		scored("c", 0.7, ""),
		scored("d", 0.6, ""),
		scored("e", 0.5, ""),
		scored("f", 0.4, ""),
	}}

	docs, err := Retrieve(context.Background(), store, "query", 0)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(docs), MaxK)
	for _, k := range store.calls {
		assert.LessOrEqual(t, k, MaxK)
	}
}

func TestRecencyBiasReordersNearTies(t *testing.T) {
	store := &scriptedStore{ranked: []vectorstore.ScoredDocument{
		scored("old but similar", 0.82, "2020-01-01"),
		scored("new and close", 0.80, "2024-01-01"),
	}}

	// without recency the higher similarity wins
	docs, err := Retrieve(context.Background(), store, "query", 0)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "old but similar", docs[0].PageContent)

	// with recency the newer near-tie wins
	store.calls = nil
	docs, err = Retrieve(context.Background(), store, "query", 0.3)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "new and close", docs[0].PageContent)
}

func TestRecencyBiasMissingTimestampCountsAsOldest(t *testing.T) {
	docs := applyRecencyBias([]vectorstore.ScoredDocument{
		{Document: vectorstore.Document{PageContent: "undated"}, Score: 0.8},
		scored("old", 0.78, "2020-01-01"),
		scored("new", 0.76, "2024-01-01"),
	}, 0.5)

	require.Len(t, docs, 3)
	assert.Equal(t, "new", docs[0].PageContent)
	assert.Equal(t, "undated", docs[1].PageContent, "undated shares the oldest recency, higher similarity breaks the tie")
	assert.Equal(t, "old", docs[2].PageContent)
}

func TestRecencyBiasSpanIgnoresUndatedDocuments(t *testing.T) {
	// an undated doc must not widen the normalization span; the dated
	// docs' recency still spreads across [0,1]
	docs := applyRecencyBias([]vectorstore.ScoredDocument{
		scored("old but similar", 0.9, "2020-01-01"),
		scored("new and close", 0.80, "2024-01-01"),
		{Document: vectorstore.Document{PageContent: "undated"}, Score: 0.5},
	}, 0.3)

	require.Len(t, docs, 3)
	assert.Equal(t, "new and close", docs[0].PageContent)
}

func TestRecencyBiasOnlyOneDatedDocumentKeepsOrder(t *testing.T) {
	in := []vectorstore.ScoredDocument{
		{Document: vectorstore.Document{PageContent: "undated"}, Score: 0.8},
		scored("dated", 0.78, "2024-01-01"),
	}
	out := applyRecencyBias(in, 0.5)
	assert.Equal(t, in, out, "a single dated document gives no span to normalize over")
}

func TestRecencyBiasZeroSpanKeepsOrder(t *testing.T) {
	in := []vectorstore.ScoredDocument{
		scored("first", 0.9, "2024-01-01"),
		scored("second", 0.8, "2024-01-01"),
	}
	out := applyRecencyBias(in, 0.5)
	assert.Equal(t, in, out)
}

func TestRecencyBiasDisabled(t *testing.T) {
	in := []vectorstore.ScoredDocument{
		scored("first", 0.5, "2020-01-01"),
		scored("second", 0.4, "2024-01-01"),
	}
	out := applyRecencyBias(in, 0)
	assert.Equal(t, in, out)
}
