package vectorstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"wide-toebox-be/pkg/embedding"
)

type ragDocumentModel struct {
	Id          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      string          `gorm:"column:user_id;type:varchar(255);index"`
	Source      string          `gorm:"column:source;type:text;index"`
	Title       string          `gorm:"column:title;type:text"`
	ContentHash string          `gorm:"column:content_hash;type:varchar(64);index"`
	LastMod     string          `gorm:"column:last_modified;type:varchar(64)"`
	Content     string          `gorm:"column:content;type:text"`
	Embedding   pgvector.Vector `gorm:"column:embedding;type:vector(1536)"`
	CreatedAt   *time.Time      `gorm:"column:created_at;autoCreateTime"`
}

func (ragDocumentModel) TableName() string {
	return "rag_documents"
}

// PgVectorStore backs the index with a pgvector-enabled Postgres table.
// Writes go straight to the database, Persist is a no-op.
type PgVectorStore struct {
	db       *gorm.DB
	embedder embedding.Provider
	userID   string
}

var _ Store = (*PgVectorStore)(nil)

func NewPgVectorStore(db *gorm.DB, embedder embedding.Provider, userID string) *PgVectorStore {
	return &PgVectorStore{
		db:       db,
		embedder: embedder,
		userID:   userID,
	}
}

func (s *PgVectorStore) AddDocuments(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.PageContent
	}
	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return err
	}

	models := make([]*ragDocumentModel, len(docs))
	for i, doc := range docs {
		models[i] = &ragDocumentModel{
			UserId:      doc.Metadata.UserID,
			Source:      doc.Metadata.Source,
			Title:       doc.Metadata.Title,
			ContentHash: doc.Metadata.ContentHash,
			LastMod:     doc.Metadata.LastModified,
			Content:     doc.PageContent,
			Embedding:   pgvector.NewVector(vectors[i]),
		}
	}
	return s.db.WithContext(ctx).CreateInBatches(models, 100).Error
}

func (s *PgVectorStore) SimilaritySearch(ctx context.Context, query string, k int) ([]ScoredDocument, error) {
	queryVector, err := s.embedder.EmbedOne(ctx, query)
	if err != nil {
		return nil, err
	}

	// Cosine distance in pgvector is 1 - cosine_similarity
	type row struct {
		ragDocumentModel
		Similarity float64
	}
	var rows []row

	vec := pgvector.NewVector(queryVector)
	err = s.db.WithContext(ctx).
		Table("rag_documents").
		Select("rag_documents.*, 1 - (embedding <=> ?) as similarity", vec).
		Where("user_id = ?", s.userID).
		Order("similarity DESC").
		Limit(k).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]ScoredDocument, len(rows))
	for i, r := range rows {
		results[i] = ScoredDocument{
			Document: Document{
				PageContent: r.Content,
				Metadata: Metadata{
					Source:       r.Source,
					Title:        r.Title,
					UserID:       r.UserId,
					ContentHash:  r.ContentHash,
					LastModified: r.LastMod,
				},
			},
			Score: r.Similarity,
		}
	}
	return results, nil
}

func (s *PgVectorStore) ContainsHash(ctx context.Context, contentHash string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&ragDocumentModel{}).
		Where("user_id = ? AND content_hash = ?", s.userID, contentHash).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *PgVectorStore) DeleteBySource(ctx context.Context, source string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND source = ?", s.userID, source).
		Delete(&ragDocumentModel{}).Error
}

func (s *PgVectorStore) Persist(ctx context.Context) error {
	return nil
}

func (s *PgVectorStore) Len(ctx context.Context) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&ragDocumentModel{}).
		Where("user_id = ?", s.userID).
		Count(&count).Error
	return int(count), err
}

// MigrateRagDocuments creates the backing table. Callers run this once at
// startup when the pgvector provider is selected.
func MigrateRagDocuments(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return err
	}
	return db.AutoMigrate(&ragDocumentModel{})
}
