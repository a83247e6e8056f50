package main

import (
	"log"
	"os"

	"wide-toebox-be/pkg/database"
	"wide-toebox-be/pkg/vectorstore"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Migrating shoe catalog tables...")
	if err := database.MigrateShoeCatalog(db); err != nil {
		log.Fatalf("Error: shoe catalog migration failed: %v", err)
	}

	// The pgvector table is migrated even when the file store is the
	// active provider, so switching providers needs no extra step.
	log.Println("Step 2: Migrating rag_documents (pgvector)...")
	if err := vectorstore.MigrateRagDocuments(db); err != nil {
		log.Printf("Warn: rag_documents migration failed (is the vector extension installed?): %v", err)
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
