package badger

import (
	"context"
	"fmt"
	"testing"

	"github.com/poiesic/seekr/core"
	"github.com/poiesic/seekr/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) storage.SnippetRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func TestUpsertCountsNewIDs(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	added, err := repo.Upsert(ctx,
		&core.Snippet{ID: "a", Title: "A"},
		&core.Snippet{ID: "b", Title: "B"},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	added, err = repo.Upsert(ctx,
		&core.Snippet{ID: "b", Title: "B2"},
		&core.Snippet{ID: "c", Title: "C"},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestUpsertOverwritesInPlace(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Upsert(ctx,
		&core.Snippet{ID: "a", Title: "A", SeeksMeta: 1},
		&core.Snippet{ID: "b", Title: "B"},
	)
	require.NoError(t, err)

	added, err := repo.Upsert(ctx, &core.Snippet{ID: "a", Title: "A2", SeeksMeta: 9})
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Title)
	assert.Equal(t, core.Number(9), got.SeeksMeta)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, core.ID("a"), all[0].ID)
	assert.Equal(t, core.ID("b"), all[1].ID)
}

func TestUpsertDuplicateWithinBatch(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	added, err := repo.Upsert(ctx,
		&core.Snippet{ID: "a", Title: "first"},
		&core.Snippet{ID: "a", Title: "second"},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Title)
}

func TestUpsertRejectsMissingID(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Upsert(context.Background(), &core.Snippet{Title: "orphan"})
	assert.ErrorIs(t, err, core.ErrMissingIdentity)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAllPreservesInsertionOrder(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	// ids chosen so lexical order differs from insertion order
	ids := []core.ID{"z", "m", "a", "q", "b"}
	for _, id := range ids {
		_, err := repo.Upsert(ctx, &core.Snippet{ID: id})
		require.NoError(t, err)
	}

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(ids))
	for i, s := range all {
		assert.Equal(t, ids[i], s.ID)
	}
}

func TestGetNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestClear(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		_, err := repo.Upsert(ctx, &core.Snippet{ID: core.ID(fmt.Sprintf("s%02d", i))})
		require.NoError(t, err)
	}

	require.NoError(t, repo.Clear(ctx))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// a cleared id counts as new again
	added, err := repo.Upsert(ctx, &core.Snippet{ID: "s01"})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	repo, err := NewSnippetRepository(backend)
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, &core.Snippet{ID: "a", Title: "kept"}, &core.Snippet{ID: "b"})
	require.NoError(t, err)
	require.NoError(t, repo.Close())
	require.NoError(t, backend.Close())

	backend, err = OpenBackend(dir, false)
	require.NoError(t, err)
	defer backend.Close()
	repo, err = NewSnippetRepository(backend)
	require.NoError(t, err)
	defer repo.Close()

	added, err := repo.Upsert(ctx, &core.Snippet{ID: "c"})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "kept", all[0].Title)
	assert.Equal(t, core.ID("c"), all[2].ID)
}
