package knowledge

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"secretary/internal/embedding"
)

// Service ties the chunker, the embedding provider and a Store together
// into the retrieval and ingestion operations the navigator consumes.
type Service struct {
	store    Store
	embedder embedding.Provider
	fetcher  *Fetcher
	logger   *zap.Logger
}

func NewService(store Store, embedder embedding.Provider, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		embedder: embedder,
		fetcher:  NewFetcher(),
		logger:   logger,
	}
}

// Search embeds the query and returns the contents of the k nearest
// chunks. An empty result is valid.
func (s *Service) Search(ctx context.Context, query string, k int) ([]string, error) {
	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	return s.store.Search(ctx, vec, k)
}

// Ingest fetches a URL, extracts its readable text and stores it under
// the given source tag.
func (s *Service) Ingest(ctx context.Context, sourceRef, tag string) error {
	if !strings.HasPrefix(sourceRef, "http://") && !strings.HasPrefix(sourceRef, "https://") {
		return fmt.Errorf("unsupported source reference %q", sourceRef)
	}
	text, err := s.fetcher.Extract(ctx, sourceRef)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", sourceRef, err)
	}
	return s.IngestText(ctx, text, tag)
}

// IngestText chunks, embeds and stores raw text under a source tag.
// Used for file uploads, where the transport has already extracted the
// text.
func (s *Service) IngestText(ctx context.Context, text, tag string) error {
	pieces := SplitText(text, DefaultChunkSize, DefaultChunkOverlap)
	if len(pieces) == 0 {
		return fmt.Errorf("no text to ingest for %q", tag)
	}

	chunks := make([]EmbeddedChunk, 0, len(pieces))
	for _, p := range pieces {
		vec, err := s.embedder.Embed(ctx, p)
		if err != nil {
			return fmt.Errorf("embedding chunk: %w", err)
		}
		chunks = append(chunks, EmbeddedChunk{
			ID:      uuid.New(),
			Source:  tag,
			Content: p,
			Vector:  vec,
		})
	}

	if err := s.store.Insert(ctx, chunks); err != nil {
		return fmt.Errorf("storing chunks: %w", err)
	}

	s.logger.Info("source ingested",
		zap.String("source", tag),
		zap.Int("chunks", len(chunks)),
	)
	return nil
}

// DeleteBySource removes everything previously ingested under a tag.
func (s *Service) DeleteBySource(ctx context.Context, tag string) error {
	if err := s.store.DeleteBySource(ctx, tag); err != nil {
		return fmt.Errorf("deleting source %q: %w", tag, err)
	}
	s.logger.Info("source deleted", zap.String("source", tag))
	return nil
}
