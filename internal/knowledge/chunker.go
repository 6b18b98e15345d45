package knowledge

import "strings"

const (
	// DefaultChunkSize and DefaultChunkOverlap are in runes, not bytes,
	// so multi-byte scripts split cleanly.
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// SplitText splits text into chunks of at most size runes, overlapping
// by roughly overlap runes so sentences cut at a boundary still appear
// whole in one chunk. Cuts prefer paragraph breaks, then line breaks,
// then spaces.
func SplitText(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
	}

	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= size {
		return []string{string(runes)}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			if chunk := strings.TrimSpace(string(runes[start:])); chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		cut := start + findCut(runes[start:end])
		chunk := strings.TrimSpace(string(runes[start:cut]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := cut - overlap
		if next <= start {
			next = cut
		}
		start = next
	}
	return chunks
}

// findCut returns where to end a chunk within window: after the last
// paragraph break if any, else the last line break, else the last
// space, else the full window.
func findCut(window []rune) int {
	s := string(window)
	for _, sep := range []string{"\n\n", "\n", " "} {
		if i := strings.LastIndex(s, sep); i > 0 {
			return len([]rune(s[:i+len(sep)]))
		}
	}
	return len(window)
}
