// Package stubs provides in-memory stand-ins for the knowledge store
// and the embedding provider, used in tests and mock-backend runs.
package stubs

import (
	"context"
	"hash/fnv"
	"math"
	"sort"
	"strings"
	"sync"

	"secretary/internal/knowledge"
)

// MockStore is an in-memory knowledge store with brute-force cosine
// search.
type MockStore struct {
	mu     sync.RWMutex
	chunks []knowledge.EmbeddedChunk
}

func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Initialize(ctx context.Context) error { return nil }
func (m *MockStore) Close() error                         { return nil }

func (m *MockStore) Insert(ctx context.Context, chunks []knowledge.EmbeddedChunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunks = append(m.chunks, chunks...)
	return nil
}

func (m *MockStore) Search(ctx context.Context, vector []float32, k int) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type scored struct {
		content string
		score   float64
	}
	var candidates []scored
	for _, c := range m.chunks {
		candidates = append(candidates, scored{c.Content, cosine(vector, c.Vector)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if k > len(candidates) {
		k = len(candidates)
	}
	results := make([]string, 0, k)
	for _, c := range candidates[:k] {
		results = append(results, c.content)
	}
	return results, nil
}

func (m *MockStore) DeleteBySource(ctx context.Context, source string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.chunks[:0]
	for _, c := range m.chunks {
		if c.Source != source {
			kept = append(kept, c)
		}
	}
	m.chunks = kept
	return nil
}

// Len returns the number of stored chunks.
func (m *MockStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.chunks)
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// HashEmbedder is a deterministic embedding provider: bag-of-words
// hashed into a fixed number of buckets. Similar texts get similar
// vectors, which is enough for tests and local mock runs.
type HashEmbedder struct {
	Dim int
}

func (h HashEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	dim := h.Dim
	if dim <= 0 {
		dim = 256
	}
	vec := make([]float32, dim)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		hash := fnv.New32a()
		hash.Write([]byte(word))
		vec[hash.Sum32()%uint32(dim)]++
	}
	return vec, nil
}
