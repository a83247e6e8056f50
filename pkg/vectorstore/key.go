package vectorstore

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"path/filepath"
	"sort"
)

// storeIdentity is the canonical form of the configuration fields that
// decide where an index lives. Arrays are sorted before encoding so two
// configurations differing only in element order hash identically.
type storeIdentity struct {
	DocumentPaths  []string `json:"documentPaths,omitempty"`
	EmbeddingModel string   `json:"embeddingModel"`
	SitemapUrls    []string `json:"sitemapUrls"`
}

func newStoreIdentity(embeddingModel string, sitemapUrls, documentPaths []string) storeIdentity {
	sortedUrls := append([]string(nil), sitemapUrls...)
	sort.Strings(sortedUrls)
	if sortedUrls == nil {
		sortedUrls = []string{}
	}

	var sortedPaths []string
	if len(documentPaths) > 0 {
		sortedPaths = append([]string(nil), documentPaths...)
		sort.Strings(sortedPaths)
	}

	return storeIdentity{
		DocumentPaths:  sortedPaths,
		EmbeddingModel: embeddingModel,
		SitemapUrls:    sortedUrls,
	}
}

func (id storeIdentity) hash() string {
	encoded, _ := json.Marshal(id)
	sum := md5.Sum(encoded)
	return hex.EncodeToString(sum[:])[:10]
}

// StorageKey derives the deterministic short key for a configuration.
func StorageKey(embeddingModel string, sitemapUrls, documentPaths []string) string {
	return newStoreIdentity(embeddingModel, sitemapUrls, documentPaths).hash()
}

// StorageDir resolves the on-disk directory for a configuration, nested
// under the owner partition in the base directory.
func StorageDir(baseDir, userID, embeddingModel string, sitemapUrls, documentPaths []string) string {
	return filepath.Join(baseDir, userID, StorageKey(embeddingModel, sitemapUrls, documentPaths))
}
