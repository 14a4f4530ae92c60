// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/animetrack/internal/library"
)

const userID = "0190a6d2-7c1e-7b3a-9f00-000000000001"

func newFavorites(store *memoryStore) *library.Favorites {
	return library.NewFavorites(library.Session{UserID: userID}, store, store, discardLogger(), nil)
}

/*
TestFavorites_AddTwice verifies that favoriting twice leaves exactly one mark without error.
*/
func TestFavorites_AddTwice(t *testing.T) {
	store := newMemoryStore(title("frieren", "Fantasy"))
	favorites := newFavorites(store)
	ctx := context.Background()

	first, err := favorites.Add(ctx, "frieren")
	require.NoError(t, err)
	require.NotNil(t, first.Anime)
	assert.Equal(t, "frieren", first.Anime.Title)

	_, err = favorites.Add(ctx, "frieren")
	require.NoError(t, err)

	assert.Equal(t, 1, favorites.Count())
	assert.Equal(t, 1, store.inserts)
	assert.True(t, favorites.IsFavorite("frieren"))
}

/*
TestFavorites_AddExistingPatchesCache covers a mark stored by another client.
*/
func TestFavorites_AddExistingPatchesCache(t *testing.T) {
	store := newMemoryStore(title("mob"))
	ctx := context.Background()

	// 1. Another device favorites the title
	_, err := newFavorites(store).Add(ctx, "mob")
	require.NoError(t, err)

	// 2. This repository never fetched, so its cache is empty
	favorites := newFavorites(store)
	assert.False(t, favorites.IsFavorite("mob"))

	_, err = favorites.Add(ctx, "mob")
	require.NoError(t, err)

	assert.True(t, favorites.IsFavorite("mob"))
	assert.Equal(t, 1, store.inserts)
}

/*
TestFavorites_RemoveMissing verifies removing an absent mark is a successful no-op.
*/
func TestFavorites_RemoveMissing(t *testing.T) {
	favorites := newFavorites(newMemoryStore())

	require.NoError(t, favorites.Remove(context.Background(), "never-added"))
	assert.Zero(t, favorites.Count())
}

func TestFavorites_Remove(t *testing.T) {
	store := newMemoryStore(title("a"), title("b"))
	favorites := newFavorites(store)
	ctx := context.Background()

	_, err := favorites.Add(ctx, "a")
	require.NoError(t, err)
	_, err = favorites.Add(ctx, "b")
	require.NoError(t, err)

	require.NoError(t, favorites.Remove(ctx, "a"))

	assert.False(t, favorites.IsFavorite("a"))
	assert.True(t, favorites.IsFavorite("b"))
	assert.Equal(t, 1, favorites.Count())
}

/*
TestFavorites_FetchOrderAndMetadata checks newest-first ordering and metadata joins.
*/
func TestFavorites_FetchOrderAndMetadata(t *testing.T) {
	store := newMemoryStore(title("old"), title("new"))
	ctx := context.Background()

	writer := newFavorites(store)
	_, err := writer.Add(ctx, "old")
	require.NoError(t, err)
	_, err = writer.Add(ctx, "new")
	require.NoError(t, err)

	// A mark whose title has since left the catalog is kept without metadata
	delete(store.titles, "old")

	favorites := newFavorites(store)
	require.NoError(t, favorites.Fetch(ctx))

	list := favorites.List()
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].AnimeID)
	assert.NotNil(t, list[0].Anime)
	assert.Equal(t, "old", list[1].AnimeID)
	assert.Nil(t, list[1].Anime)
}

/*
TestFavorites_FailureLeavesCache ensures a failed store call keeps the last good cache.
*/
func TestFavorites_FailureLeavesCache(t *testing.T) {
	store := newMemoryStore(title("a"))
	favorites := newFavorites(store)
	ctx := context.Background()

	_, err := favorites.Add(ctx, "a")
	require.NoError(t, err)

	store.setFail(true)

	err = favorites.Fetch(ctx)
	var storeErr *library.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "fetch_favorites", storeErr.Op)
	assert.ErrorIs(t, err, errStoreDown)

	require.Error(t, favorites.Remove(ctx, "a"))
	_, err = favorites.Add(ctx, "b")
	require.ErrorAs(t, err, &storeErr)

	assert.True(t, favorites.IsFavorite("a"))
	assert.Equal(t, 1, favorites.Count())
}

/*
TestFavorites_AuthRequired verifies every operation rejects an anonymous session.
*/
func TestFavorites_AuthRequired(t *testing.T) {
	store := newMemoryStore(title("a"))
	favorites := library.NewFavorites(library.Session{}, store, store, discardLogger(), nil)
	ctx := context.Background()

	assert.ErrorIs(t, favorites.Fetch(ctx), library.ErrAuthRequired)
	_, err := favorites.Add(ctx, "a")
	assert.ErrorIs(t, err, library.ErrAuthRequired)
	assert.ErrorIs(t, favorites.Remove(ctx, "a"), library.ErrAuthRequired)

	assert.Zero(t, store.inserts)
}

/*
TestFavorites_ListIsCopy ensures callers cannot reach into the cache.
*/
func TestFavorites_ListIsCopy(t *testing.T) {
	store := newMemoryStore(title("a", "Action"))
	favorites := newFavorites(store)

	_, err := favorites.Add(context.Background(), "a")
	require.NoError(t, err)

	list := favorites.List()
	list[0].Anime.Genres[0] = "Mutated"
	list[0].AnimeID = "other"

	fresh := favorites.List()
	assert.Equal(t, "a", fresh[0].AnimeID)
	assert.Equal(t, []string{"Action"}, fresh[0].Anime.Genres)
}

/*
TestFavorites_OnChange fires only when the store actually changed.
*/
func TestFavorites_OnChange(t *testing.T) {
	store := newMemoryStore(title("a"))
	calls := 0
	favorites := library.NewFavorites(library.Session{UserID: userID}, store, store, discardLogger(),
		func(context.Context) { calls++ })
	ctx := context.Background()

	_, _ = favorites.Add(ctx, "a")
	_, _ = favorites.Add(ctx, "a")
	_ = favorites.Remove(ctx, "a")
	_ = favorites.Remove(ctx, "a")

	assert.Equal(t, 2, calls)
}

/*
TestFavorites_Concurrent exercises the cache under the race detector.
*/
func TestFavorites_Concurrent(t *testing.T) {
	store := newMemoryStore(title("a"), title("b"), title("c"))
	favorites := newFavorites(store)
	ctx := context.Background()

	var group sync.WaitGroup
	for _, id := range []string{"a", "b", "c", "a", "b", "c"} {
		group.Add(2)
		go func(id string) {
			defer group.Done()
			_, _ = favorites.Add(ctx, id)
		}(id)
		go func(id string) {
			defer group.Done()
			_ = favorites.IsFavorite(id)
			_ = favorites.List()
		}(id)
	}
	group.Wait()

	assert.Equal(t, 3, favorites.Count())
}
