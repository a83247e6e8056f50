package vectorstore

import (
	"context"
	"os"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"wide-toebox-be/internal/pkg/apperr"
	"wide-toebox-be/pkg/embedding"
)

// OpenConfig selects and parameterizes a backend.
type OpenConfig struct {
	Provider       string // local-memory | local-file | pgvector | qdrant
	BaseDir        string // root for local-file indexes
	UserID         string
	EmbeddingModel string
	SitemapUrls    []string
	DocumentPaths  []string

	DB *gorm.DB // pgvector

	QdrantURL        string
	QdrantAPIKey     string
	QdrantCollection string
}

// handleCache shares open store handles across the fan-out ingestion
// tasks that re-open the same location. Memory stores live here too,
// otherwise each open would start from an empty index.
var handleCache = gocache.New(30*time.Minute, 10*time.Minute)

// persistLocks serializes Persist calls per storage location so sibling
// ingestion tasks cannot interleave partial writes of the same index.
var persistLocks sync.Map

func locationLock(location string) *sync.Mutex {
	mu, _ := persistLocks.LoadOrStore(location, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// persistSerialized wraps a store so concurrent Persist calls on the same
// location queue behind one mutex. Last write wins, never a torn file.
type persistSerialized struct {
	Store
	mu *sync.Mutex
}

func (p *persistSerialized) Persist(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Store.Persist(ctx)
}

// Open loads an existing persisted store for the configuration or creates
// an empty one, applying change detection for file-backed providers.
func Open(cfg OpenConfig, embedder embedding.Provider) (Store, error) {
	if cfg.UserID == "" {
		return nil, &apperr.ConfigurationError{Field: "user_id", Reason: "partition key is required"}
	}

	switch cfg.Provider {
	case "local-memory":
		key := "memory/" + cfg.UserID + "/" + StorageKey(cfg.EmbeddingModel, cfg.SitemapUrls, cfg.DocumentPaths)
		if cached, ok := handleCache.Get(key); ok {
			return cached.(Store), nil
		}
		store := NewMemoryStore(embedder, cfg.UserID)
		handleCache.Set(key, store, gocache.NoExpiration)
		return store, nil

	case "local-file":
		return openFile(cfg, embedder)

	case "pgvector":
		if cfg.DB == nil {
			return nil, &apperr.ConfigurationError{Field: "DB_CONNECTION", Reason: "required for pgvector retriever"}
		}
		return NewPgVectorStore(cfg.DB, embedder, cfg.UserID), nil

	case "qdrant":
		if cfg.QdrantURL == "" {
			return nil, &apperr.ConfigurationError{Field: "QDRANT_URL", Reason: "required for qdrant retriever"}
		}
		return NewQdrantStore(cfg.QdrantURL, cfg.QdrantAPIKey, cfg.QdrantCollection, embedder, cfg.UserID), nil

	default:
		return nil, &apperr.ConfigurationError{
			Field:  "RETRIEVER_PROVIDER",
			Reason: "unrecognized retriever provider: " + cfg.Provider,
		}
	}
}

func openFile(cfg OpenConfig, embedder embedding.Provider) (Store, error) {
	dir := StorageDir(cfg.BaseDir, cfg.UserID, cfg.EmbeddingModel, cfg.SitemapUrls, cfg.DocumentPaths)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	identity := newStoreIdentity(cfg.EmbeddingModel, cfg.SitemapUrls, cfg.DocumentPaths)
	if checkDescriptor(dir, identity) {
		// Index was built under a different configuration scope
		RemoveIndexFiles(dir)
		handleCache.Delete(dir)
	}
	if err := writeDescriptor(dir, identity); err != nil {
		return nil, err
	}

	if cached, ok := handleCache.Get(dir); ok {
		return cached.(Store), nil
	}

	var store *FileStore
	if IndexFilesExist(dir) {
		loaded, err := LoadFileStore(dir, embedder, cfg.UserID)
		if err != nil {
			return nil, err
		}
		store = loaded
	} else {
		store = NewFileStore(dir, embedder, cfg.UserID)
	}

	wrapped := &persistSerialized{Store: store, mu: locationLock(dir)}
	handleCache.Set(dir, wrapped, gocache.NoExpiration)
	return wrapped, nil
}

// OpenExisting loads a store strictly for retrieval. A store that was
// never ingested, or is empty, fails with ErrStoreUnavailable instead of
// silently returning no results.
func OpenExisting(ctx context.Context, cfg OpenConfig, embedder embedding.Provider) (Store, error) {
	switch cfg.Provider {
	case "local-file":
		dir := StorageDir(cfg.BaseDir, cfg.UserID, cfg.EmbeddingModel, cfg.SitemapUrls, cfg.DocumentPaths)
		if !IndexFilesExist(dir) {
			return nil, apperr.ErrStoreUnavailable
		}
	}

	store, err := Open(cfg, embedder)
	if err != nil {
		return nil, err
	}

	count, err := store.Len(ctx)
	if err != nil || count == 0 {
		return nil, apperr.ErrStoreUnavailable
	}
	return store, nil
}
