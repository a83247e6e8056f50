package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"wide-toebox-be/pkg/embedding"
)

const (
	indexFileName    = "store.index"
	docstoreFileName = "docstore.json"
)

type fileRecord struct {
	Vector []float32 `msgpack:"vector"`
	DocID  int       `msgpack:"doc_id"`
}

// FileStore persists a brute-force cosine index on disk. Vectors live in
// a msgpack index file, documents in a JSON docstore that stays readable
// for debugging. Loads fully into memory on open.
type FileStore struct {
	mu       sync.RWMutex
	dir      string
	records  []fileRecord
	docs     map[int]Document
	nextID   int
	embedder embedding.Provider
	userID   string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates an empty file store rooted at dir. Loading an
// existing index happens through LoadFileStore.
func NewFileStore(dir string, embedder embedding.Provider, userID string) *FileStore {
	return &FileStore{
		dir:      dir,
		docs:     map[int]Document{},
		embedder: embedder,
		userID:   userID,
	}
}

// LoadFileStore reads an existing index from dir.
func LoadFileStore(dir string, embedder embedding.Provider, userID string) (*FileStore, error) {
	s := NewFileStore(dir, embedder, userID)

	rawIndex, err := os.ReadFile(filepath.Join(dir, indexFileName))
	if err != nil {
		return nil, fmt.Errorf("read index file: %w", err)
	}
	if err := msgpack.Unmarshal(rawIndex, &s.records); err != nil {
		return nil, fmt.Errorf("decode index file: %w", err)
	}

	rawDocs, err := os.ReadFile(filepath.Join(dir, docstoreFileName))
	if err != nil {
		return nil, fmt.Errorf("read docstore file: %w", err)
	}
	if err := json.Unmarshal(rawDocs, &s.docs); err != nil {
		return nil, fmt.Errorf("decode docstore file: %w", err)
	}

	for id := range s.docs {
		if id >= s.nextID {
			s.nextID = id + 1
		}
	}
	return s, nil
}

// IndexFilesExist reports whether dir holds a persisted index.
func IndexFilesExist(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, indexFileName)); err != nil {
		return false
	}
	if _, err := os.Stat(filepath.Join(dir, docstoreFileName)); err != nil {
		return false
	}
	return true
}

// RemoveIndexFiles deletes the persisted index and docstore, leaving the
// descriptor and sitemap metadata in place.
func RemoveIndexFiles(dir string) {
	os.Remove(filepath.Join(dir, indexFileName))
	os.Remove(filepath.Join(dir, docstoreFileName))
}

func (s *FileStore) AddDocuments(ctx context.Context, docs []Document) error {
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
		id := s.nextID
		s.nextID++
		s.records = append(s.records, fileRecord{Vector: vectors[i], DocID: id})
		s.docs[id] = doc
	}
	return nil
}

func (s *FileStore) SimilaritySearch(ctx context.Context, query string, k int) ([]ScoredDocument, error) {
	queryVector, err := s.embedder.EmbedOne(ctx, query)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]ScoredDocument, 0, len(s.records))
	for _, rec := range s.records {
		doc, ok := s.docs[rec.DocID]
		if !ok {
			continue
		}
		if s.userID != "" && doc.Metadata.UserID != s.userID {
			continue
		}
		results = append(results, ScoredDocument{
			Document: doc,
			Score:    cosineSimilarity(queryVector, rec.Vector),
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

func (s *FileStore) ContainsHash(ctx context.Context, contentHash string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, doc := range s.docs {
		if doc.Metadata.ContentHash == contentHash {
			return true, nil
		}
	}
	return false, nil
}

func (s *FileStore) DeleteBySource(ctx context.Context, source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := map[int]bool{}
	for id, doc := range s.docs {
		if doc.Metadata.Source == source {
			removed[id] = true
			delete(s.docs, id)
		}
	}
	if len(removed) == 0 {
		return nil
	}

	kept := s.records[:0]
	for _, rec := range s.records {
		if !removed[rec.DocID] {
			kept = append(kept, rec)
		}
	}
	s.records = kept
	return nil
}

// Persist writes the index and docstore atomically enough for a single
// writer: temp file then rename. Callers coordinate concurrent persists
// per storage location, see Open.
func (s *FileStore) Persist(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	rawIndex, err := msgpack.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(s.dir, indexFileName), rawIndex); err != nil {
		return err
	}

	rawDocs, err := json.Marshal(s.docs)
	if err != nil {
		return fmt.Errorf("encode docstore: %w", err)
	}
	return writeFileAtomic(filepath.Join(s.dir, docstoreFileName), rawDocs)
}

func (s *FileStore) Len(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
