package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Keys      APIKeys
	Retrieval RetrievalConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	VectorStoreBaseDir string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	OpenAI string
	Cohere string
	Qdrant string
}

type RetrievalConfig struct {
	EmbeddingModel    string // "provider/model" e.g. "openai/text-embedding-3-small"
	RetrieverProvider string // "local-memory", "local-file", "pgvector", "qdrant"
	ResponseModel     string
	QueryModel        string
	DocumentPaths     []string
	SitemapUrls       []string
	RecencyWeight     float64
	OllamaBaseURL     string
	QdrantURL         string
	QdrantCollection  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			VectorStoreBaseDir: getEnv("VECTOR_STORE_DIR", "vector_store"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			OpenAI: getEnv("OPENAI_API_KEY", ""),
			Cohere: getEnv("COHERE_API_KEY", ""),
			Qdrant: getEnv("QDRANT_API_KEY", ""),
		},
		Retrieval: RetrievalConfig{
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "openai/text-embedding-3-small"),
			RetrieverProvider: getEnv("RETRIEVER_PROVIDER", "local-file"),
			ResponseModel:     getEnv("RESPONSE_MODEL", "openai/gpt-4o-mini"),
			QueryModel:        getEnv("QUERY_MODEL", "openai/gpt-4o-mini"),
			DocumentPaths:     getEnvAsList("DOCUMENT_PATHS"),
			SitemapUrls:       getEnvAsList("SITEMAP_URLS"),
			RecencyWeight:     getEnvAsFloat("RECENCY_WEIGHT", 0.3),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			QdrantURL:         getEnv("QDRANT_URL", "http://localhost:6333"),
			QdrantCollection:  getEnv("QDRANT_COLLECTION", "shoe_reviews"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return nil
	}
	parts := strings.Split(strValue, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
