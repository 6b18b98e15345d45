package ch

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clickhouseTC "github.com/testcontainers/testcontainers-go/modules/clickhouse"

	"secretary/internal/knowledge"
)

// setupTestStore starts a ClickHouse container and connects to it.
func setupTestStore(t *testing.T) (*ClickHouseStore, func()) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	container, err := clickhouseTC.Run(ctx,
		"clickhouse/clickhouse-server:24.3.3.102-alpine",
		clickhouseTC.WithUsername("default"),
		clickhouseTC.WithPassword(""),
		clickhouseTC.WithDatabase("default"),
	)
	require.NoError(t, err, "Failed to start ClickHouse container")

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "9000/tcp")
	require.NoError(t, err)

	store, err := NewClickHouseStore(host, port.Int(), "default", "default", "", false)
	require.NoError(t, err, "Failed to connect to ClickHouse")

	require.NoError(t, store.Initialize(ctx))

	cleanup := func() {
		store.Close()
		container.Terminate(ctx)
	}
	return store, cleanup
}

func testChunk(source, content string, vector []float32) knowledge.EmbeddedChunk {
	return knowledge.EmbeddedChunk{
		ID:      uuid.New(),
		Source:  source,
		Content: content,
		Vector:  vector,
	}
}

func TestClickHouseStore_InsertSearchDelete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	err := store.Insert(ctx, []knowledge.EmbeddedChunk{
		testChunk("policies", "refunds take fourteen days", []float32{1, 0, 0}),
		testChunk("policies", "leave requests need approval", []float32{0, 1, 0}),
		testChunk("misc", "the printer is on the second floor", []float32{0, 0, 1}),
	})
	require.NoError(t, err)

	// Nearest neighbours to a vector close to the first chunk.
	results, err := store.Search(ctx, []float32{0.9, 0.1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "refunds take fourteen days", results[0])

	// Delete one source and verify its chunks are gone.
	require.NoError(t, store.DeleteBySource(ctx, "policies"))

	// ClickHouse mutations are async; poll until applied.
	require.Eventually(t, func() bool {
		results, err := store.Search(ctx, []float32{0.9, 0.1, 0}, 10)
		return err == nil && len(results) == 1
	}, 30*time.Second, 500*time.Millisecond, "mutation did not apply")

	results, err = store.Search(ctx, []float32{0, 0, 1}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "the printer is on the second floor", results[0])
}

func TestClickHouseStore_SearchEmptyTable(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	results, err := store.Search(context.Background(), []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}
