package navigator

import "context"

// ChatService produces generated text from a prompt.
type ChatService interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// RetrievalService returns the top-k stored snippets relevant to a query.
// An empty result is valid and means the model answers from general
// knowledge.
type RetrievalService interface {
	Search(ctx context.Context, query string, k int) ([]string, error)
}

// IngestionService persists searchable content from a source reference
// (currently a URL) and deletes previously ingested content by source tag.
type IngestionService interface {
	Ingest(ctx context.Context, sourceRef, tag string) error
	DeleteBySource(ctx context.Context, tag string) error
}

// WeatherService returns a short human-readable current-weather report
// for a city.
type WeatherService interface {
	Current(ctx context.Context, city string) (string, error)
}

// RateService exposes the process-wide market exchange rate setting.
type RateService interface {
	Current() int
	Set(rate int)
}
