// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/animetrack/internal/achievement"
	"github.com/taibuivan/animetrack/internal/anime"
	"github.com/taibuivan/animetrack/internal/library"
	"github.com/taibuivan/animetrack/internal/platform/apperr"
)

// errStoreDown simulates a lost connection.
var errStoreDown = errors.New("connection refused")

// discardLogger keeps test output quiet.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memoryStore is an in-memory [library.Store] with failure injection.
type memoryStore struct {
	mutex sync.Mutex

	titles      map[string]*anime.Anime
	memberships map[string]*library.Membership
	favorites   map[string]*library.Favorite // userID + "/" + animeID
	clock       time.Time

	// fail makes every call return errStoreDown.
	fail bool

	// found replaces FindMembership results by anime id, standing in for rows written elsewhere.
	found map[string]*library.Membership

	inserts, updates int
}

func newMemoryStore(titles ...*anime.Anime) *memoryStore {
	store := &memoryStore{
		titles:      make(map[string]*anime.Anime),
		memberships: make(map[string]*library.Membership),
		favorites:   make(map[string]*library.Favorite),
		found:       make(map[string]*library.Membership),
		clock:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, title := range titles {
		store.titles[title.ID] = title
	}
	return store
}

func (store *memoryStore) setFail(fail bool) {
	store.mutex.Lock()
	store.fail = fail
	store.mutex.Unlock()
}

func (store *memoryStore) tick() time.Time {
	store.clock = store.clock.Add(time.Second)
	return store.clock
}

func (store *memoryStore) joined(membership *library.Membership) *library.Membership {
	clone := membership.Clone()
	clone.Anime = store.titles[membership.AnimeID].Clone()
	return clone
}

func (store *memoryStore) ListMemberships(_ context.Context, userID string) ([]*library.Membership, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	if store.fail {
		return nil, errStoreDown
	}

	var result []*library.Membership
	for _, membership := range store.memberships {
		if membership.UserID == userID {
			result = append(result, store.joined(membership))
		}
	}
	return result, nil
}

func (store *memoryStore) FindMembership(_ context.Context, userID, animeID string) (*library.Membership, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	if store.fail {
		return nil, errStoreDown
	}

	if membership, ok := store.found[animeID]; ok {
		return store.joined(membership), nil
	}

	for _, membership := range store.memberships {
		if membership.UserID == userID && membership.AnimeID == animeID {
			return store.joined(membership), nil
		}
	}
	return nil, apperr.NotFound("Resource")
}

func (store *memoryStore) InsertMembership(_ context.Context, membership *library.Membership) (*library.Membership, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	if store.fail {
		return nil, errStoreDown
	}

	for _, existing := range store.memberships {
		if existing.UserID == membership.UserID && existing.AnimeID == membership.AnimeID {
			return nil, apperr.Conflict("Resource already exists")
		}
	}

	stored := membership.Clone()
	stored.CreatedAt = store.tick()
	stored.UpdatedAt = stored.CreatedAt
	stored.Anime = nil
	store.memberships[stored.ID] = stored
	store.inserts++

	return store.joined(stored), nil
}

func (store *memoryStore) UpdateMembership(_ context.Context, userID, id string, patch library.Patch) (*library.Membership, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	if store.fail {
		return nil, errStoreDown
	}

	stored, found := store.memberships[id]
	if !found || stored.UserID != userID {
		return nil, apperr.NotFound("Resource")
	}

	if patch.Category != nil {
		stored.Category = *patch.Category
	}
	if patch.Progress != nil {
		stored.Progress = *patch.Progress
	}
	if patch.Rating != nil {
		rating := *patch.Rating
		stored.Rating = &rating
	}
	if patch.Notes != nil {
		stored.Notes = *patch.Notes
	}
	stored.UpdatedAt = store.tick()
	store.updates++

	return store.joined(stored), nil
}

func (store *memoryStore) DeleteMembership(_ context.Context, userID, id string) (bool, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	if store.fail {
		return false, errStoreDown
	}

	stored, found := store.memberships[id]
	if !found || stored.UserID != userID {
		return false, nil
	}
	delete(store.memberships, id)
	return true, nil
}

func (store *memoryStore) ListFavorites(_ context.Context, userID string) ([]*library.Favorite, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	if store.fail {
		return nil, errStoreDown
	}

	var result []*library.Favorite
	for _, favorite := range store.favorites {
		if favorite.UserID == userID {
			result = append(result, favorite.Clone())
		}
	}
	return result, nil
}

func (store *memoryStore) FindFavorite(_ context.Context, userID, animeID string) (*library.Favorite, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	if store.fail {
		return nil, errStoreDown
	}

	favorite, found := store.favorites[userID+"/"+animeID]
	if !found {
		return nil, apperr.NotFound("Resource")
	}
	return favorite.Clone(), nil
}

func (store *memoryStore) InsertFavorite(_ context.Context, favorite *library.Favorite) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	if store.fail {
		return errStoreDown
	}

	favorite.CreatedAt = store.tick()
	store.favorites[favorite.UserID+"/"+favorite.AnimeID] = &library.Favorite{
		UserID: favorite.UserID, AnimeID: favorite.AnimeID, CreatedAt: favorite.CreatedAt,
	}
	store.inserts++
	return nil
}

func (store *memoryStore) DeleteFavorite(_ context.Context, userID, animeID string) (bool, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	if store.fail {
		return false, errStoreDown
	}

	key := userID + "/" + animeID
	_, found := store.favorites[key]
	delete(store.favorites, key)
	return found, nil
}

// FindByIDs implements [library.AnimeLookup].
func (store *memoryStore) FindByIDs(_ context.Context, ids []string) ([]*anime.Anime, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	if store.fail {
		return nil, errStoreDown
	}

	result := make([]*anime.Anime, 0, len(ids))
	for _, id := range ids {
		if title, found := store.titles[id]; found {
			result = append(result, title.Clone())
		}
	}
	return result, nil
}

// memoryCache is an in-memory [achievement.Cache] that records invalidations.
type memoryCache struct {
	mutex         sync.Mutex
	sets          map[string]achievement.Set
	generations   map[string]int64
	invalidations int

	// beforePut runs once at the start of the next Put.
	beforePut func()
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		sets:        make(map[string]achievement.Set),
		generations: make(map[string]int64),
	}
}

func (cache *memoryCache) Get(_ context.Context, userID string) (achievement.Set, bool, error) {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	set, found := cache.sets[userID]
	return set, found, nil
}

func (cache *memoryCache) Generation(_ context.Context, userID string) (int64, error) {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	return cache.generations[userID], nil
}

func (cache *memoryCache) Put(_ context.Context, userID string, generation int64, set achievement.Set) error {
	cache.mutex.Lock()
	hook := cache.beforePut
	cache.beforePut = nil
	cache.mutex.Unlock()

	if hook != nil {
		hook()
	}

	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	if cache.generations[userID] != generation {
		return nil
	}
	cache.sets[userID] = set
	return nil
}

func (cache *memoryCache) Invalidate(_ context.Context, userID string) error {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	delete(cache.sets, userID)
	cache.generations[userID]++
	cache.invalidations++
	return nil
}

// title builds a catalog row.
func title(id string, genres ...string) *anime.Anime {
	return &anime.Anime{ID: id, Slug: id, Title: id, Genres: genres}
}
