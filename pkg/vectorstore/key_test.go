package vectorstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageKey(t *testing.T) {
	tests := []struct {
		name   string
		modelA string
		urlsA  []string
		pathsA []string
		modelB string
		urlsB  []string
		pathsB []string
		same   bool
	}{
		{
			name:   "identical configurations",
			modelA: "openai/text-embedding-3-small",
			urlsA:  []string{"https://a.com/sitemap.xml"},
			modelB: "openai/text-embedding-3-small",
			urlsB:  []string{"https://a.com/sitemap.xml"},
			same:   true,
		},
		{
			name:   "sitemap order does not matter",
			modelA: "openai/text-embedding-3-small",
			urlsA:  []string{"https://b.com/s.xml", "https://a.com/s.xml"},
			modelB: "openai/text-embedding-3-small",
			urlsB:  []string{"https://a.com/s.xml", "https://b.com/s.xml"},
			same:   true,
		},
		{
			name:   "document path order does not matter",
			modelA: "openai/text-embedding-3-small",
			pathsA: []string{"docs/b", "docs/a"},
			modelB: "openai/text-embedding-3-small",
			pathsB: []string{"docs/a", "docs/b"},
			same:   true,
		},
		{
			name:   "nil and empty sitemap list are the same scope",
			modelA: "openai/text-embedding-3-small",
			urlsA:  nil,
			modelB: "openai/text-embedding-3-small",
			urlsB:  []string{},
			same:   true,
		},
		{
			name:   "different embedding model changes the key",
			modelA: "openai/text-embedding-3-small",
			urlsA:  []string{"https://a.com/s.xml"},
			modelB: "cohere/embed-english-v3.0",
			urlsB:  []string{"https://a.com/s.xml"},
			same:   false,
		},
		{
			name:   "extra sitemap changes the key",
			modelA: "openai/text-embedding-3-small",
			urlsA:  []string{"https://a.com/s.xml"},
			modelB: "openai/text-embedding-3-small",
			urlsB:  []string{"https://a.com/s.xml", "https://b.com/s.xml"},
			same:   false,
		},
		{
			name:   "document paths change the key",
			modelA: "openai/text-embedding-3-small",
			modelB: "openai/text-embedding-3-small",
			pathsB: []string{"docs/reviews"},
			same:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keyA := StorageKey(tt.modelA, tt.urlsA, tt.pathsA)
			keyB := StorageKey(tt.modelB, tt.urlsB, tt.pathsB)

			assert.Len(t, keyA, 10)
			assert.Len(t, keyB, 10)
			if tt.same {
				assert.Equal(t, keyA, keyB)
			} else {
				assert.NotEqual(t, keyA, keyB)
			}
		})
	}
}

func TestStorageKeyIgnoresInputMutation(t *testing.T) {
	urls := []string{"https://b.com/s.xml", "https://a.com/s.xml"}
	StorageKey("m", urls, nil)
	// hashing sorts a copy, the caller's slice keeps its order
	assert.Equal(t, []string{"https://b.com/s.xml", "https://a.com/s.xml"}, urls)
}

func TestStorageDir(t *testing.T) {
	key := StorageKey("openai/text-embedding-3-small", []string{"https://a.com/s.xml"}, nil)
	dir := StorageDir("vector_store", "alice", "openai/text-embedding-3-small", []string{"https://a.com/s.xml"}, nil)
	assert.Equal(t, filepath.Join("vector_store", "alice", key), dir)
}
