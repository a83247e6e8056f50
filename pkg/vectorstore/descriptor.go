package vectorstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const descriptorFileName = "config.json"

// descriptor is the sidecar file recording which configuration produced
// the index next to it. On open, a hash mismatch against the live
// configuration means the index was built under a different scope and
// must be discarded.
type descriptor struct {
	DocumentPaths  []string `json:"documentPaths,omitempty"`
	EmbeddingModel string   `json:"embeddingModel"`
	SitemapUrls    []string `json:"sitemapUrls"`
	Created        string   `json:"created"`
}

func (d descriptor) identity() storeIdentity {
	return storeIdentity{
		DocumentPaths:  d.DocumentPaths,
		EmbeddingModel: d.EmbeddingModel,
		SitemapUrls:    d.SitemapUrls,
	}
}

// checkDescriptor reports whether the recorded configuration differs from
// the live one. Missing descriptor means nothing to invalidate. An
// unreadable descriptor is treated as changed so the index is rebuilt
// rather than trusted.
func checkDescriptor(dir string, id storeIdentity) bool {
	raw, err := os.ReadFile(filepath.Join(dir, descriptorFileName))
	if err != nil {
		return false
	}

	var recorded descriptor
	if err := json.Unmarshal(raw, &recorded); err != nil {
		return true
	}
	return recorded.identity().hash() != id.hash()
}

func writeDescriptor(dir string, id storeIdentity) error {
	d := descriptor{
		DocumentPaths:  id.DocumentPaths,
		EmbeddingModel: id.EmbeddingModel,
		SitemapUrls:    id.SitemapUrls,
		Created:        time.Now().UTC().Format(time.RFC3339),
	}
	encoded, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, descriptorFileName), encoded, 0o644)
}
