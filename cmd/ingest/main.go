package main

import (
	"context"
	"log"

	"github.com/fatih/color"
	"gorm.io/gorm"

	"wide-toebox-be/internal/config"
	"wide-toebox-be/internal/pkg/logger"
	"wide-toebox-be/pkg/database"
	"wide-toebox-be/pkg/embedding"
	"wide-toebox-be/pkg/events"
	"wide-toebox-be/pkg/ingest"
	"wide-toebox-be/pkg/rag"
	"wide-toebox-be/pkg/vectorstore"
)

// One-shot indexing run over the configured document paths and
// sitemaps. Safe to re-run: unchanged sources are skipped.
func main() {
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer sysLogger.Sync()

	options := rag.EnsureConfiguration(rag.Options{
		EmbeddingModel:    cfg.Retrieval.EmbeddingModel,
		RetrieverProvider: cfg.Retrieval.RetrieverProvider,
		DocumentPaths:     cfg.Retrieval.DocumentPaths,
		SitemapUrls:       cfg.Retrieval.SitemapUrls,
	})

	embedder, err := embedding.Resolve(options.EmbeddingModel, embedding.Settings{
		OpenAIAPIKey:  cfg.Keys.OpenAI,
		CohereAPIKey:  cfg.Keys.Cohere,
		OllamaBaseURL: cfg.Retrieval.OllamaBaseURL,
	})
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	var db *gorm.DB
	if options.RetrieverProvider == "pgvector" {
		db, err = database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Fatalf("Error: Failed to connect to database: %v", err)
		}
		if err := vectorstore.MigrateRagDocuments(db); err != nil {
			log.Fatalf("Error: rag_documents migration failed: %v", err)
		}
	}

	openCfg := vectorstore.OpenConfig{
		Provider:         options.RetrieverProvider,
		BaseDir:          cfg.App.VectorStoreBaseDir,
		UserID:           options.UserID,
		EmbeddingModel:   options.EmbeddingModel,
		SitemapUrls:      options.SitemapUrls,
		DocumentPaths:    options.DocumentPaths,
		DB:               db,
		QdrantURL:        cfg.Retrieval.QdrantURL,
		QdrantAPIKey:     cfg.Keys.Qdrant,
		QdrantCollection: cfg.Retrieval.QdrantCollection,
	}

	bus := ingest.NewBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go bus.Subscribe(ctx, func(ctx context.Context, event events.Event) {
		switch event.EventType() {
		case events.TypeDocumentIndexed:
			color.Green("  indexed: %v (%v chunks)", event.Payload()["source"], event.Payload()["chunk_count"])
		case events.TypeIngestionCompleted:
			color.Cyan("done: %v documents added, %v sources skipped",
				event.Payload()["documents_added"], event.Payload()["sources_skipped"])
		}
	})

	color.Yellow("Indexing %d document path(s) and %d sitemap(s) into %s store...",
		len(options.DocumentPaths), len(options.SitemapUrls), options.RetrieverProvider)

	pipeline := ingest.NewPipeline(openCfg, embedder, sysLogger, bus)
	summary, err := pipeline.Run(ctx)
	if err != nil {
		color.Red("Ingestion failed: %v", err)
		log.Fatal(err)
	}

	color.Green("✅ %d added, %d skipped, %d failed, %d sitemaps unchanged",
		summary.DocumentsAdded, summary.SourcesSkipped, summary.SourcesFailed, summary.SitemapsSkipped)
}
