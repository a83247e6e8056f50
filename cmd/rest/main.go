package main

import (
	"context"
	"log"

	"wide-toebox-be/internal/bootstrap"
	"wide-toebox-be/internal/config"
	"wide-toebox-be/internal/server"
	"wide-toebox-be/internal/tracer"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := bootstrap.NewDatabase(cfg)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container, err := bootstrap.NewContainer(gormDB, cfg)
	if err != nil {
		log.Panicf("Unable to bootstrap container: %v", err)
	}
	defer container.Logger.Sync()

	// Forward ingestion events to NATS when configured
	go func() {
		if err := container.StartEventForwarder(context.Background()); err != nil {
			log.Printf("Background event forwarder error: %v", err)
		}
	}()

	// Index configured documents and sitemaps before serving
	go func() {
		summary, err := container.IngestionPipeline.Run(context.Background())
		if err != nil {
			log.Printf("Background ingestion error: %v", err)
			return
		}
		log.Printf("Ingestion finished: %d documents added, %d sources skipped",
			summary.DocumentsAdded, summary.SourcesSkipped)
	}()

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
