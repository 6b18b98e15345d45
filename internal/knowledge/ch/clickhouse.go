// Package ch implements the knowledge store on ClickHouse, using
// cosineDistance over Array(Float32) columns.
package ch

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"secretary/internal/knowledge"
)

type ClickHouseStore struct {
	conn clickhouse.Conn
}

// NewClickHouseStore opens a native-protocol connection to ClickHouse.
func NewClickHouseStore(host string, port int, database, user, password string, useTLS bool) (*ClickHouseStore, error) {
	addr := fmt.Sprintf("%s:%d", host, port)

	options := &clickhouse.Options{
		Addr:     []string{addr},
		Protocol: clickhouse.Native,
		Auth: clickhouse.Auth{
			Database: database,
			Username: user,
			Password: password,
		},
	}
	if useTLS {
		options.TLS = &tls.Config{}
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}
	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &ClickHouseStore{conn: conn}, nil
}

// Initialize creates the documents table if it does not exist yet. The
// schema is also managed by the goose migrations; this keeps ad-hoc and
// containerized runs working without a separate migrate step.
func (s *ClickHouseStore) Initialize(ctx context.Context) error {
	err := s.conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			id UUID,
			source_tag String,
			content String,
			embedding Array(Float32),
			created_at DateTime
		) ENGINE = MergeTree()
		ORDER BY (source_tag, id)
	`)
	if err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}
	return nil
}

func (s *ClickHouseStore) Insert(ctx context.Context, chunks []knowledge.EmbeddedChunk) error {
	batch, err := s.conn.PrepareBatch(ctx,
		`INSERT INTO documents (id, source_tag, content, embedding, created_at)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	now := time.Now()
	for _, c := range chunks {
		if err := batch.Append(c.ID, c.Source, c.Content, c.Vector, now); err != nil {
			return fmt.Errorf("failed to append chunk: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to insert chunks: %w", err)
	}
	return nil
}

func (s *ClickHouseStore) Search(ctx context.Context, vector []float32, k int) ([]string, error) {
	if k <= 0 {
		k = 4
	}
	rows, err := s.conn.Query(ctx,
		`SELECT content FROM documents ORDER BY cosineDistance(embedding, ?) ASC LIMIT ?`,
		vector, k)
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}
	defer rows.Close()

	var contents []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		contents = append(contents, content)
	}
	return contents, rows.Err()
}

func (s *ClickHouseStore) DeleteBySource(ctx context.Context, source string) error {
	err := s.conn.Exec(ctx, `ALTER TABLE documents DELETE WHERE source_tag = ?`, source)
	if err != nil {
		return fmt.Errorf("failed to delete source %q: %w", source, err)
	}
	return nil
}

func (s *ClickHouseStore) Close() error {
	return s.conn.Close()
}
