package item

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestMemoryRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	saved, err := repo.Save(ctx, NewItem("itemA", 15000, 5))
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)

	found, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, found)

	require.NoError(t, repo.Update(ctx, saved.ID, NewItem("itemB", 25000, 15)))
	found, err = repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, Item{ID: saved.ID, ItemName: "itemB", Price: 25000, Quantity: 15}, found)

	second, err := repo.Save(ctx, NewItem("itemC", 100, 1))
	require.NoError(t, err)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Item{found, second}, all)

	require.NoError(t, repo.ClearStore(ctx))
	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// ids are not reused after a clear
	third, err := repo.Save(ctx, NewItem("itemD", 1, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(3), third.ID)
}

func TestMemoryRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrItemNotFound)

	err = repo.Update(ctx, 9999, NewItem("x", 1, 1))
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestMemoryRepositoryConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	var g errgroup.Group
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			_, err := repo.Save(ctx, NewItem(fmt.Sprintf("item-%d", i), i, i))
			return err
		})
	}
	require.NoError(t, g.Wait())

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 50)
	for i, item := range all {
		assert.Equal(t, int64(i+1), item.ID)
	}
}

func TestMemoryRepositoryDataSource(t *testing.T) {
	repo := NewMemoryRepository()

	assert.Equal(t, MemoryProviderName, repo.ProviderName())
	assert.NoError(t, repo.Ping(context.Background()))
	_, err := repo.Stats()
	assert.ErrorIs(t, err, ErrNoPoolStats)
}
