// Package pg implements the knowledge store on Postgres with the
// pgvector extension.
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"secretary/internal/knowledge"
)

// Document is one stored chunk row.
type Document struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SourceTag string          `gorm:"index"`
	Content   string          `gorm:"type:text"`
	Embedding pgvector.Vector `gorm:"type:vector(768)"` // text-embedding-004 dimensions
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (Document) TableName() string {
	return "documents"
}

type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore connects to Postgres with the given DSN.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Initialize enables the vector extension and creates the documents
// table.
func (s *PostgresStore) Initialize(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("failed to enable pgvector: %w", err)
	}
	if err := s.db.WithContext(ctx).AutoMigrate(&Document{}); err != nil {
		return fmt.Errorf("failed to migrate documents table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Insert(ctx context.Context, chunks []knowledge.EmbeddedChunk) error {
	docs := make([]Document, 0, len(chunks))
	for _, c := range chunks {
		docs = append(docs, Document{
			ID:        c.ID,
			SourceTag: c.Source,
			Content:   c.Content,
			Embedding: pgvector.NewVector(c.Vector),
		})
	}
	if err := s.db.WithContext(ctx).Create(&docs).Error; err != nil {
		return fmt.Errorf("failed to insert chunks: %w", err)
	}
	return nil
}

func (s *PostgresStore) Search(ctx context.Context, vector []float32, k int) ([]string, error) {
	if k <= 0 {
		k = 4
	}
	var docs []Document
	err := s.db.WithContext(ctx).
		Order(gorm.Expr("embedding <=> ?", pgvector.NewVector(vector))).
		Limit(k).
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}

	contents := make([]string, 0, len(docs))
	for _, d := range docs {
		contents = append(contents, d.Content)
	}
	return contents, nil
}

func (s *PostgresStore) DeleteBySource(ctx context.Context, source string) error {
	if err := s.db.WithContext(ctx).Where("source_tag = ?", source).Delete(&Document{}).Error; err != nil {
		return fmt.Errorf("failed to delete source %q: %w", source, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
