package vectorstore

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const sitemapMetadataFileName = "sitemap_metadata.json"

// SitemapRecord tracks the last observed state of one sitemap URL.
// LastModified holds a hash of the fetched sitemap body, not an HTTP
// header value.
type SitemapRecord struct {
	LastModified      string `json:"lastModified"`
	LastIngestionDate string `json:"lastIngestionDate"`
}

// SitemapMetadata maps sitemap URL to its last ingestion record.
type SitemapMetadata map[string]SitemapRecord

// LoadSitemapMetadata reads the metadata sidecar from a storage
// directory. Missing or unreadable files yield an empty map so a fresh
// ingestion run starts cleanly.
func LoadSitemapMetadata(dir string) SitemapMetadata {
	raw, err := os.ReadFile(filepath.Join(dir, sitemapMetadataFileName))
	if err != nil {
		return SitemapMetadata{}
	}
	var meta SitemapMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return SitemapMetadata{}
	}
	return meta
}

// SaveSitemapMetadata writes the metadata sidecar.
func SaveSitemapMetadata(dir string, meta SitemapMetadata) error {
	encoded, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(dir, sitemapMetadataFileName), encoded)
}
