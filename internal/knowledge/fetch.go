package knowledge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/markusmobius/go-trafilatura"
)

const maxFetchBytes = 10 << 20

// Fetcher downloads a web page and extracts its readable text.
type Fetcher struct {
	http *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{http: &http.Client{Timeout: 30 * time.Second}}
}

// Extract fetches pageURL and returns its main content as plain text,
// with the page title prepended when one was found.
func (f *Fetcher) Extract(ctx context.Context, pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "MySecretaryBot/1.0")

	resp, err := f.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return "", err
	}

	result, err := trafilatura.Extract(bytes.NewReader(body), trafilatura.Options{
		OriginalURL: parsed,
	})
	if err != nil {
		return "", fmt.Errorf("extracting content: %w", err)
	}
	if result == nil || result.ContentText == "" {
		return "", fmt.Errorf("no readable content found")
	}

	if result.Metadata.Title != "" {
		return result.Metadata.Title + "\n\n" + result.ContentText, nil
	}
	return result.ContentText, nil
}
