package stubs

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secretary/internal/knowledge"
)

func embed(t *testing.T, text string) []float32 {
	t.Helper()
	vec, err := HashEmbedder{Dim: 64}.Embed(context.Background(), text)
	require.NoError(t, err)
	return vec
}

func chunk(t *testing.T, source, content string) knowledge.EmbeddedChunk {
	t.Helper()
	return knowledge.EmbeddedChunk{
		ID:      uuid.New(),
		Source:  source,
		Content: content,
		Vector:  embed(t, content),
	}
}

func TestMockStoreSearchRanksBySimilarity(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()

	require.NoError(t, store.Insert(ctx, []knowledge.EmbeddedChunk{
		chunk(t, "a", "refunds are processed within fourteen days"),
		chunk(t, "a", "the office cat is named Whiskers"),
		chunk(t, "b", "annual leave must be requested in advance"),
	}))

	results, err := store.Search(ctx, embed(t, "how are refunds processed"), 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "refunds are processed within fourteen days", results[0])
}

func TestMockStoreSearchEmptyStore(t *testing.T) {
	store := NewMockStore()
	results, err := store.Search(context.Background(), embed(t, "anything"), 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMockStoreDeleteBySource(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()

	require.NoError(t, store.Insert(ctx, []knowledge.EmbeddedChunk{
		chunk(t, "keep", "content one"),
		chunk(t, "drop", "content two"),
		chunk(t, "drop", "content three"),
	}))
	require.Equal(t, 3, store.Len())

	require.NoError(t, store.DeleteBySource(ctx, "drop"))
	assert.Equal(t, 1, store.Len())

	// Deleting an unknown source is a no-op, not an error.
	require.NoError(t, store.DeleteBySource(ctx, "never-existed"))
	assert.Equal(t, 1, store.Len())
}

func TestHashEmbedderDeterministic(t *testing.T) {
	a := embed(t, "same text")
	b := embed(t, "same text")
	assert.Equal(t, a, b)
}
