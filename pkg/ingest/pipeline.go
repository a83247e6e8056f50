package ingest

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"path"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"wide-toebox-be/internal/pkg/logger"
	"wide-toebox-be/pkg/embedding"
	"wide-toebox-be/pkg/events"
	"wide-toebox-be/pkg/vectorstore"
)

// Summary reports what one ingestion run did.
type Summary struct {
	DocumentsAdded  int
	SourcesSkipped  int
	SourcesFailed   int
	SitemapsSkipped int
}

// Pipeline ingests sitemap URLs and local document paths into a vector
// store. Per-item failures are logged and skipped; the batch always runs
// to completion.
type Pipeline struct {
	openCfg  vectorstore.OpenConfig
	embedder embedding.Provider
	log      logger.ILogger
	bus      *Bus
}

func NewPipeline(openCfg vectorstore.OpenConfig, embedder embedding.Provider, log logger.ILogger, bus *Bus) *Pipeline {
	return &Pipeline{
		openCfg:  openCfg,
		embedder: embedder,
		log:      log,
		bus:      bus,
	}
}

func (p *Pipeline) publish(event events.Event) {
	if p.bus == nil {
		return
	}
	if err := p.bus.Publish(event); err != nil {
		p.log.Warn("ingest", "failed to publish ingestion event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}

// Run ingests every configured source and returns a summary.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	if len(p.openCfg.DocumentPaths) > 0 {
		p.ingestLocalPaths(ctx, &summary)
	}
	if len(p.openCfg.SitemapUrls) > 0 {
		if err := p.ingestSitemaps(ctx, &summary); err != nil {
			return summary, err
		}
	}

	p.publish(events.NewIngestionCompleted(p.openCfg.UserID, summary.DocumentsAdded, summary.SourcesSkipped))
	return summary, nil
}

func (p *Pipeline) ingestLocalPaths(ctx context.Context, summary *Summary) {
	store, err := vectorstore.Open(p.openCfg, p.embedder)
	if err != nil {
		p.log.Error("ingest", "failed to open vector store for local ingestion", map[string]interface{}{
			"error": err.Error(),
		})
		summary.SourcesFailed += len(p.openCfg.DocumentPaths)
		return
	}

	files := ExpandDocumentPaths(p.openCfg.DocumentPaths, func(skipped, reason string) {
		p.log.Warn("ingest", "skipping local path", map[string]interface{}{
			"path":   skipped,
			"reason": reason,
		})
		summary.SourcesSkipped++
	})

	for _, filePath := range files {
		added, err := p.ingestLocalFile(ctx, store, filePath)
		if err != nil {
			p.log.Error("ingest", "failed to ingest local file", map[string]interface{}{
				"path":  filePath,
				"error": err.Error(),
			})
			summary.SourcesFailed++
			continue
		}
		if added == 0 {
			summary.SourcesSkipped++
			continue
		}
		summary.DocumentsAdded += added
	}

	if err := store.Persist(ctx); err != nil {
		p.log.Error("ingest", "failed to persist vector store", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (p *Pipeline) ingestLocalFile(ctx context.Context, store vectorstore.Store, filePath string) (int, error) {
	text, err := LoadDocxText(filePath)
	if err != nil {
		return 0, err
	}

	contentHash := BytesContentHash([]byte(text))
	exists, err := store.ContainsHash(ctx, contentHash)
	if err == nil && exists {
		p.log.Info("ingest", "skipping unchanged local file", map[string]interface{}{
			"path": filePath,
		})
		return 0, nil
	}

	title := strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
	docs := p.buildChunks(text, vectorstore.Metadata{
		Source:      filePath,
		Title:       title,
		UserID:      p.openCfg.UserID,
		ContentHash: contentHash,
	})
	if len(docs) == 0 {
		return 0, nil
	}

	if err := store.AddDocuments(ctx, docs); err != nil {
		return 0, err
	}
	p.publish(events.NewDocumentIndexed(filePath, contentHash, p.openCfg.UserID, len(docs)))
	return len(docs), nil
}

func (p *Pipeline) ingestSitemaps(ctx context.Context, summary *Summary) error {
	storageDir := vectorstore.StorageDir(
		p.openCfg.BaseDir, p.openCfg.UserID,
		p.openCfg.EmbeddingModel, p.openCfg.SitemapUrls, p.openCfg.DocumentPaths,
	)
	meta := vectorstore.LoadSitemapMetadata(storageDir)

	for _, sitemapURL := range p.openCfg.SitemapUrls {
		if err := p.ingestSitemap(ctx, sitemapURL, meta, summary); err != nil {
			p.log.Error("ingest", "failed to process sitemap", map[string]interface{}{
				"sitemap": sitemapURL,
				"error":   err.Error(),
			})
			summary.SourcesFailed++
			// Continue with other sitemaps even if one fails
		}
	}

	if err := vectorstore.SaveSitemapMetadata(storageDir, meta); err != nil {
		p.log.Warn("ingest", "failed to save sitemap metadata", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return nil
}

func (p *Pipeline) ingestSitemap(ctx context.Context, sitemapURL string, meta vectorstore.SitemapMetadata, summary *Summary) error {
	content, err := FetchURL(ctx, sitemapURL)
	if err != nil {
		return err
	}

	bodySum := md5.Sum([]byte(content))
	bodyHash := hex.EncodeToString(bodySum[:])

	if record, ok := meta[sitemapURL]; ok && record.LastModified == bodyHash {
		p.log.Info("ingest", "sitemap unchanged since last ingestion, skipping", map[string]interface{}{
			"sitemap":        sitemapURL,
			"last_ingestion": record.LastIngestionDate,
		})
		summary.SitemapsSkipped++
		return nil
	}

	entries := p.collectEntries(ctx, sitemapURL, content, 0)
	p.log.Info("ingest", "processing sitemap", map[string]interface{}{
		"sitemap": sitemapURL,
		"urls":    len(entries),
	})

	var added, skipped, failed atomic.Int64
	var wg sync.WaitGroup
	for _, entry := range entries {
		wg.Add(1)
		go func(entry URLEntry) {
			defer wg.Done()
			n, wasSkipped, err := p.ingestURL(ctx, entry)
			switch {
			case err != nil:
				p.log.Error("ingest", "failed to ingest url", map[string]interface{}{
					"url":   entry.URL,
					"error": err.Error(),
				})
				failed.Add(1)
			case wasSkipped:
				skipped.Add(1)
			default:
				added.Add(int64(n))
			}
		}(entry)
	}
	wg.Wait()

	summary.DocumentsAdded += int(added.Load())
	summary.SourcesSkipped += int(skipped.Load())
	summary.SourcesFailed += int(failed.Load())

	meta[sitemapURL] = vectorstore.SitemapRecord{
		LastModified:      bodyHash,
		LastIngestionDate: time.Now().UTC().Format(time.RFC3339),
	}
	return nil
}

// collectEntries flattens a sitemap, recursing one level at a time into
// sitemap-of-sitemaps structures. A child sitemap that fails to fetch
// contributes zero URLs.
func (p *Pipeline) collectEntries(ctx context.Context, sitemapURL, content string, depth int) []URLEntry {
	if !IsSitemapIndex(content) {
		return ParseSitemap(content)
	}
	if depth >= 3 {
		p.log.Warn("ingest", "sitemap index nesting too deep, stopping recursion", map[string]interface{}{
			"sitemap": sitemapURL,
		})
		return nil
	}

	var entries []URLEntry
	for _, childURL := range ParseSitemapIndex(content) {
		childContent, err := FetchURL(ctx, childURL)
		if err != nil {
			p.log.Warn("ingest", "failed to fetch child sitemap", map[string]interface{}{
				"sitemap": childURL,
				"error":   err.Error(),
			})
			continue
		}
		entries = append(entries, p.collectEntries(ctx, childURL, childContent, depth+1)...)
	}
	return entries
}

// ingestURL processes one page. Each call re-opens the store; the open
// cache hands sibling goroutines the same handle, and persists serialize
// per storage location.
func (p *Pipeline) ingestURL(ctx context.Context, entry URLEntry) (int, bool, error) {
	store, err := vectorstore.Open(p.openCfg, p.embedder)
	if err != nil {
		return 0, false, err
	}

	contentHash := URLContentHash(entry.URL, entry.LastMod)
	exists, err := store.ContainsHash(ctx, contentHash)
	if err != nil {
		p.log.Warn("ingest", "error checking for existing document, will process url", map[string]interface{}{
			"url":   entry.URL,
			"error": err.Error(),
		})
	}
	if exists {
		p.log.Debug("ingest", "skipping url, content hash already indexed", map[string]interface{}{
			"url": entry.URL,
		})
		return 0, true, nil
	}

	content, err := FetchURL(ctx, entry.URL)
	if err != nil {
		return 0, false, err
	}
	text := NormalizeContent(entry.URL, content)

	title := path.Base(entry.URL)
	if title == "." || title == "/" {
		title = entry.URL
	}
	docs := p.buildChunks(text, vectorstore.Metadata{
		Source:       entry.URL,
		Title:        title,
		UserID:       p.openCfg.UserID,
		ContentHash:  contentHash,
		LastModified: entry.LastMod,
	})
	if len(docs) == 0 {
		return 0, true, nil
	}

	// Retract chunks from a previous version of this URL before adding
	// the new hash's chunk set.
	if err := store.DeleteBySource(ctx, entry.URL); err != nil {
		p.log.Warn("ingest", "failed to delete stale chunks for url", map[string]interface{}{
			"url":   entry.URL,
			"error": err.Error(),
		})
	}

	if err := store.AddDocuments(ctx, docs); err != nil {
		return 0, false, err
	}
	if err := store.Persist(ctx); err != nil {
		return 0, false, err
	}

	p.publish(events.NewDocumentIndexed(entry.URL, contentHash, p.openCfg.UserID, len(docs)))
	p.log.Info("ingest", "indexed url", map[string]interface{}{
		"url":    entry.URL,
		"chunks": len(docs),
	})
	return len(docs), false, nil
}

func (p *Pipeline) buildChunks(text string, meta vectorstore.Metadata) []vectorstore.Document {
	chunks := SplitText(text, ChunkSize, ChunkOverlap)
	docs := make([]vectorstore.Document, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk == "" {
			continue
		}
		docs = append(docs, vectorstore.Document{
			PageContent: chunk,
			Metadata:    meta,
		})
	}
	return docs
}
