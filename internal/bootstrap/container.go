package bootstrap

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"wide-toebox-be/internal/config"
	"wide-toebox-be/internal/controller"
	"wide-toebox-be/internal/pkg/logger"
	"wide-toebox-be/internal/repository/implementation"
	"wide-toebox-be/internal/service"
	"wide-toebox-be/pkg/database"
	"wide-toebox-be/pkg/embedding"
	"wide-toebox-be/pkg/events"
	"wide-toebox-be/pkg/ingest"
	"wide-toebox-be/pkg/llm/factory"
	pkgNats "wide-toebox-be/pkg/nats"
	"wide-toebox-be/pkg/rag"
	"wide-toebox-be/pkg/rag/query"
	"wide-toebox-be/pkg/vectorstore"
)

type Container struct {
	// Controllers
	ShoeController   controller.IShoeController
	ExpertController controller.IExpertController

	// Background plumbing, run by main.go
	IngestionPipeline *ingest.Pipeline
	EventBus          *ingest.Bus
	NatsPublisher     *pkgNats.Publisher

	Logger logger.ILogger
	DB     *gorm.DB
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	embedder, err := embedding.Resolve(cfg.Retrieval.EmbeddingModel, embedding.Settings{
		OpenAIAPIKey:  cfg.Keys.OpenAI,
		CohereAPIKey:  cfg.Keys.Cohere,
		OllamaBaseURL: cfg.Retrieval.OllamaBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("resolve embedding provider: %w", err)
	}

	llmSettings := factory.Settings{
		OpenAIAPIKey:  cfg.Keys.OpenAI,
		OllamaBaseURL: cfg.Retrieval.OllamaBaseURL,
	}
	responseProvider, err := factory.Resolve(cfg.Retrieval.ResponseModel, llmSettings)
	if err != nil {
		return nil, fmt.Errorf("resolve response model: %w", err)
	}
	queryProvider, err := factory.Resolve(cfg.Retrieval.QueryModel, llmSettings)
	if err != nil {
		return nil, fmt.Errorf("resolve query model: %w", err)
	}

	baseOptions := rag.EnsureConfiguration(rag.Options{
		EmbeddingModel:    cfg.Retrieval.EmbeddingModel,
		RetrieverProvider: cfg.Retrieval.RetrieverProvider,
		ResponseModel:     cfg.Retrieval.ResponseModel,
		QueryModel:        cfg.Retrieval.QueryModel,
		DocumentPaths:     cfg.Retrieval.DocumentPaths,
		SitemapUrls:       cfg.Retrieval.SitemapUrls,
		RecencyWeight:     cfg.Retrieval.RecencyWeight,
		RecencyWeightZero: cfg.Retrieval.RecencyWeight == 0,
	})

	openCfg := vectorstore.OpenConfig{
		Provider:         baseOptions.RetrieverProvider,
		BaseDir:          cfg.App.VectorStoreBaseDir,
		UserID:           baseOptions.UserID,
		EmbeddingModel:   baseOptions.EmbeddingModel,
		SitemapUrls:      baseOptions.SitemapUrls,
		DocumentPaths:    baseOptions.DocumentPaths,
		DB:               db,
		QdrantURL:        cfg.Retrieval.QdrantURL,
		QdrantAPIKey:     cfg.Keys.Qdrant,
		QdrantCollection: cfg.Retrieval.QdrantCollection,
	}

	if baseOptions.RetrieverProvider == "pgvector" {
		if db == nil {
			return nil, fmt.Errorf("pgvector retriever requires a database connection")
		}
		if err := vectorstore.MigrateRagDocuments(db); err != nil {
			return nil, fmt.Errorf("migrate rag documents: %w", err)
		}
	}

	shoeRepository := implementation.NewShoeRepository(db)
	searcher := query.NewSearcher(shoeRepository, queryProvider, sysLogger)

	shoeService := service.NewShoeService(shoeRepository, searcher)
	expertService := service.NewExpertService(
		baseOptions, openCfg, searcher, responseProvider, queryProvider, embedder, sysLogger,
	)

	eventBus := ingest.NewBus()
	pipeline := ingest.NewPipeline(openCfg, embedder, sysLogger, eventBus)

	var natsPublisher *pkgNats.Publisher
	if cfg.App.NatsURL != "" {
		natsPublisher, err = pkgNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("bootstrap", "nats unavailable, events stay in-process", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &Container{
		ShoeController:    controller.NewShoeController(shoeService),
		ExpertController:  controller.NewExpertController(expertService),
		IngestionPipeline: pipeline,
		EventBus:          eventBus,
		NatsPublisher:     natsPublisher,
		Logger:            sysLogger,
		DB:                db,
	}, nil
}

// StartEventForwarder bridges in-process ingestion events onto NATS.
// No-op when NATS is not configured. Blocks until ctx is done.
func (c *Container) StartEventForwarder(ctx context.Context) error {
	if c.NatsPublisher == nil {
		return nil
	}
	return c.EventBus.Subscribe(ctx, func(ctx context.Context, event events.Event) {
		if err := c.NatsPublisher.Publish(ctx, event); err != nil {
			c.Logger.Warn("bootstrap", "failed to forward event to nats", map[string]interface{}{
				"event": event.EventType(),
				"error": err.Error(),
			})
		}
	})
}

// NewDatabase opens the configured Postgres connection and runs the
// shoe catalog migrations.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	if cfg.Database.Connection == "" {
		return nil, fmt.Errorf("DB_CONNECTION_STRING is not set")
	}
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		return nil, err
	}
	if err := database.MigrateShoeCatalog(db); err != nil {
		return nil, err
	}
	return db, nil
}
