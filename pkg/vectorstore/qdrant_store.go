package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"wide-toebox-be/pkg/embedding"
)

// QdrantStore is a minimal REST client to a Qdrant collection. It assumes
// cosine distance and creates the collection lazily on the first add.
type QdrantStore struct {
	url        string
	apiKey     string
	collection string
	embedder   embedding.Provider
	userID     string
	client     *http.Client
}

var _ Store = (*QdrantStore)(nil)

func NewQdrantStore(url, apiKey, collection string, embedder embedding.Provider, userID string) *QdrantStore {
	if collection == "" {
		collection = "rag_documents"
	}
	return &QdrantStore{
		url:        url,
		apiKey:     apiKey,
		collection: collection,
		embedder:   embedder,
		userID:     userID,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *QdrantStore) ensureCollection(ctx context.Context, dimension int) error {
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	// Qdrant returns 409 when the collection already exists
	err := s.doJSON(ctx, http.MethodPut, fmt.Sprintf("%s/collections/%s", s.url, s.collection), body, nil)
	if err != nil && !isConflict(err) {
		return err
	}
	return nil
}

func (s *QdrantStore) AddDocuments(ctx context.Context, docs []Document) error {
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

	if err := s.ensureCollection(ctx, len(vectors[0])); err != nil {
		return err
	}

	points := make([]map[string]any, len(docs))
	for i, doc := range docs {
		points[i] = map[string]any{
			"id":     uuid.NewString(),
			"vector": vectors[i],
			"payload": map[string]any{
				"user_id":       doc.Metadata.UserID,
				"source":        doc.Metadata.Source,
				"title":         doc.Metadata.Title,
				"content_hash":  doc.Metadata.ContentHash,
				"last_modified": doc.Metadata.LastModified,
				"text":          doc.PageContent,
			},
		}
	}
	body := map[string]any{"points": points}
	return s.doJSON(ctx, http.MethodPut, fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection), body, nil)
}

func (s *QdrantStore) partitionFilter(extra ...map[string]any) map[string]any {
	must := []map[string]any{
		{"key": "user_id", "match": map[string]any{"value": s.userID}},
	}
	must = append(must, extra...)
	return map[string]any{"must": must}
}

func (s *QdrantStore) SimilaritySearch(ctx context.Context, query string, k int) ([]ScoredDocument, error) {
	queryVector, err := s.embedder.EmbedOne(ctx, query)
	if err != nil {
		return nil, err
	}

	req := map[string]any{
		"vector":       queryVector,
		"limit":        k,
		"with_payload": true,
		"filter":       s.partitionFilter(),
	}
	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := s.doJSON(ctx, http.MethodPost, fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection), req, &resp); err != nil {
		return nil, err
	}

	results := make([]ScoredDocument, 0, len(resp.Result))
	for _, r := range resp.Result {
		doc := Document{}
		if v, ok := r.Payload["text"].(string); ok {
			doc.PageContent = v
		}
		if v, ok := r.Payload["source"].(string); ok {
			doc.Metadata.Source = v
		}
		if v, ok := r.Payload["title"].(string); ok {
			doc.Metadata.Title = v
		}
		if v, ok := r.Payload["user_id"].(string); ok {
			doc.Metadata.UserID = v
		}
		if v, ok := r.Payload["content_hash"].(string); ok {
			doc.Metadata.ContentHash = v
		}
		if v, ok := r.Payload["last_modified"].(string); ok {
			doc.Metadata.LastModified = v
		}
		results = append(results, ScoredDocument{Document: doc, Score: r.Score})
	}
	return results, nil
}

func (s *QdrantStore) ContainsHash(ctx context.Context, contentHash string) (bool, error) {
	req := map[string]any{
		"limit": 1,
		"filter": s.partitionFilter(map[string]any{
			"key": "content_hash", "match": map[string]any{"value": contentHash},
		}),
	}
	var resp struct {
		Result struct {
			Points []json.RawMessage `json:"points"`
		} `json:"result"`
	}
	if err := s.doJSON(ctx, http.MethodPost, fmt.Sprintf("%s/collections/%s/points/scroll", s.url, s.collection), req, &resp); err != nil {
		return false, err
	}
	return len(resp.Result.Points) > 0, nil
}

func (s *QdrantStore) DeleteBySource(ctx context.Context, source string) error {
	req := map[string]any{
		"filter": s.partitionFilter(map[string]any{
			"key": "source", "match": map[string]any{"value": source},
		}),
	}
	return s.doJSON(ctx, http.MethodPost, fmt.Sprintf("%s/collections/%s/points/delete?wait=true", s.url, s.collection), req, nil)
}

func (s *QdrantStore) Persist(ctx context.Context) error {
	return nil
}

func (s *QdrantStore) Len(ctx context.Context) (int, error) {
	req := map[string]any{
		"filter": s.partitionFilter(),
		"exact":  true,
	}
	var resp struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}
	if err := s.doJSON(ctx, http.MethodPost, fmt.Sprintf("%s/collections/%s/points/count", s.url, s.collection), req, &resp); err != nil {
		return 0, err
	}
	return resp.Result.Count, nil
}

type qdrantHTTPError struct {
	status int
	body   string
}

func (e *qdrantHTTPError) Error() string {
	return fmt.Sprintf("qdrant request failed: status %d, body %s", e.status, e.body)
}

func isConflict(err error) bool {
	if qerr, ok := err.(*qdrantHTTPError); ok {
		return qerr.status == http.StatusConflict
	}
	return false
}

func (s *QdrantStore) doJSON(ctx context.Context, method, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		buf.ReadFrom(resp.Body)
		return &qdrantHTTPError{status: resp.StatusCode, body: buf.String()}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
