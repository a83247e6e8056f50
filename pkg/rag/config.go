package rag

import "wide-toebox-be/pkg/rag/prompt"

// Options is the immutable per-invocation configuration snapshot.
// Constructed once through EnsureConfiguration, never mutated afterwards.
type Options struct {
	UserID            string
	EmbeddingModel    string // provider/model
	RetrieverProvider string // local-memory | local-file | pgvector | qdrant
	ResponseModel     string // provider/model
	QueryModel        string // provider/model
	DocumentPaths     []string
	SitemapUrls       []string
	RecencyWeight     float64

	// RecencyWeightZero marks an explicit request for no recency
	// blending, since a zero RecencyWeight is otherwise read as unset.
	RecencyWeightZero bool

	ResponsePromptTemplate string
	QueryPromptTemplate    string
}

// EnsureConfiguration merges caller overrides onto the defaults. The
// zero value of every field means "not provided".
func EnsureConfiguration(overrides Options) Options {
	cfg := overrides

	if cfg.UserID == "" {
		cfg.UserID = "default"
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = "openai/text-embedding-3-small"
	}
	if cfg.RetrieverProvider == "" {
		cfg.RetrieverProvider = "local-file"
	}
	if cfg.ResponseModel == "" {
		cfg.ResponseModel = "openai/gpt-4o-mini"
	}
	if cfg.QueryModel == "" {
		cfg.QueryModel = cfg.ResponseModel
	}
	if cfg.RecencyWeight == 0 && !cfg.RecencyWeightZero {
		cfg.RecencyWeight = 0.3
	}
	if cfg.ResponsePromptTemplate == "" {
		cfg.ResponsePromptTemplate = prompt.ResponseSystemPromptTemplate
	}
	if cfg.QueryPromptTemplate == "" {
		cfg.QueryPromptTemplate = prompt.QuerySystemPromptTemplate
	}
	return cfg
}
