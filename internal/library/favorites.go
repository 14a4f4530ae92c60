// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/taibuivan/animetrack/internal/anime"
	"github.com/taibuivan/animetrack/internal/platform/apperr"
	"github.com/taibuivan/animetrack/internal/platform/validate"
)

// Favorites mirrors the favorite marks of one session.
//
// # Concurrency
//
// Safe for concurrent use. The cache is guarded by an RWMutex and store calls
// are made without holding it.
type Favorites struct {
	session  Session
	store    FavoriteStore
	catalog  AnimeLookup
	logger   *slog.Logger
	onChange func(context.Context)

	mutex   sync.RWMutex
	entries map[string]*Favorite // keyed by anime id
}

// NewFavorites creates an empty repository. onChange, when set, runs after every successful mutation.
func NewFavorites(session Session, store FavoriteStore, catalog AnimeLookup, logger *slog.Logger, onChange func(context.Context)) *Favorites {
	return &Favorites{
		session:  session,
		store:    store,
		catalog:  catalog,
		logger:   logger,
		onChange: onChange,
		entries:  make(map[string]*Favorite),
	}
}

/*
Fetch replaces the cache with the marks held by the store.

Description: Marks are loaded first, then their titles in one batch. A mark
whose title no longer resolves is kept without metadata.

Returns:
  - error: ErrAuthRequired, or *StoreError with the cache left untouched
*/
func (repository *Favorites) Fetch(context context.Context) error {
	if !repository.session.Authenticated() {
		return ErrAuthRequired
	}

	favorites, err := repository.store.ListFavorites(context, repository.session.UserID)
	if err != nil {
		return storeError("fetch_favorites", err)
	}

	ids := make([]string, 0, len(favorites))
	for _, favorite := range favorites {
		ids = append(ids, favorite.AnimeID)
	}

	titles, err := repository.catalog.FindByIDs(context, ids)
	if err != nil {
		return storeError("fetch_favorites", err)
	}

	byID := make(map[string]int, len(titles))
	for index, title := range titles {
		byID[title.ID] = index
	}

	entries := make(map[string]*Favorite, len(favorites))
	for _, favorite := range favorites {
		entry := favorite.Clone()
		if index, found := byID[entry.AnimeID]; found {
			entry.Anime = titles[index].Clone()
		}
		entries[entry.AnimeID] = entry
	}

	repository.mutex.Lock()
	repository.entries = entries
	repository.mutex.Unlock()

	return nil
}

/*
Add favorites a title.

Description: The store is checked first. An existing mark is a successful
no-op; the cache is patched if it had not seen the mark yet.

Returns:
  - *Favorite: The mark as stored
  - error: ErrAuthRequired, validation errors, or *StoreError
*/
func (repository *Favorites) Add(context context.Context, animeID string) (*Favorite, error) {
	if !repository.session.Authenticated() {
		return nil, ErrAuthRequired
	}

	validator := &validate.Validator{}
	if err := validator.Required("anime_id", animeID).Err(); err != nil {
		return nil, err
	}

	// 1. Idempotency guard
	existing, err := repository.store.FindFavorite(context, repository.session.UserID, animeID)
	switch {
	case err == nil:
		existing.Anime = repository.lookupTitle(context, animeID)
		repository.put(existing)
		return existing.Clone(), nil
	case !apperr.IsNotFound(err):
		return nil, storeError("add_favorite", err)
	}

	// 2. Insert
	favorite := &Favorite{UserID: repository.session.UserID, AnimeID: animeID}
	if err := repository.store.InsertFavorite(context, favorite); err != nil {
		return nil, storeError("add_favorite", err)
	}
	favorite.Anime = repository.lookupTitle(context, animeID)

	// 3. Patch cache
	repository.put(favorite)
	repository.changed(context)

	repository.logger.Info("favorite_added",
		slog.String("user_id", repository.session.UserID),
		slog.String("anime_id", animeID),
	)

	return favorite.Clone(), nil
}

/*
Remove unfavorites a title. Removing a mark that does not exist succeeds.
*/
func (repository *Favorites) Remove(context context.Context, animeID string) error {
	if !repository.session.Authenticated() {
		return ErrAuthRequired
	}

	removed, err := repository.store.DeleteFavorite(context, repository.session.UserID, animeID)
	if err != nil {
		return storeError("remove_favorite", err)
	}

	repository.mutex.Lock()
	delete(repository.entries, animeID)
	repository.mutex.Unlock()

	if removed {
		repository.changed(context)
	}

	return nil
}

// IsFavorite reports whether the cache holds a mark for the title.
func (repository *Favorites) IsFavorite(animeID string) bool {
	repository.mutex.RLock()
	defer repository.mutex.RUnlock()

	_, found := repository.entries[animeID]
	return found
}

// List returns copies of the cached marks, newest first.
func (repository *Favorites) List() []*Favorite {
	repository.mutex.RLock()
	result := make([]*Favorite, 0, len(repository.entries))
	for _, favorite := range repository.entries {
		result = append(result, favorite.Clone())
	}
	repository.mutex.RUnlock()

	slices.SortFunc(result, func(a, b *Favorite) int {
		if byTime := b.CreatedAt.Compare(a.CreatedAt); byTime != 0 {
			return byTime
		}
		return cmp.Compare(a.AnimeID, b.AnimeID)
	})

	return result
}

// Count returns the number of cached marks.
func (repository *Favorites) Count() int {
	repository.mutex.RLock()
	defer repository.mutex.RUnlock()

	return len(repository.entries)
}

// put stores a copy of favorite in the cache.
func (repository *Favorites) put(favorite *Favorite) {
	entry := favorite.Clone()

	repository.mutex.Lock()
	repository.entries[entry.AnimeID] = entry
	repository.mutex.Unlock()
}

// lookupTitle loads the catalog row of a freshly written mark.
// The write already succeeded, so a failed lookup only leaves the metadata empty.
func (repository *Favorites) lookupTitle(context context.Context, animeID string) *anime.Anime {
	titles, err := repository.catalog.FindByIDs(context, []string{animeID})
	if err != nil {
		repository.logger.Warn("favorite_title_lookup_failed",
			slog.String("anime_id", animeID),
			slog.Any("error", err),
		)
		return nil
	}
	if len(titles) == 0 {
		return nil
	}
	return titles[0]
}

func (repository *Favorites) changed(context context.Context) {
	if repository.onChange != nil {
		repository.onChange(context)
	}
}
