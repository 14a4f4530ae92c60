// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/animetrack/internal/achievement"
)

// # Service Layer

// Service builds session-scoped repositories and derives achievements from them.
type Service struct {
	store        Store
	catalog      AnimeLookup
	achievements *achievement.Catalog
	cache        achievement.Cache
	logger       *slog.Logger
}

// NewService constructs a new [Service]. A nil cache disables achievement caching.
func NewService(store Store, catalog AnimeLookup, achievements *achievement.Catalog, cache achievement.Cache, logger *slog.Logger) *Service {
	if cache == nil {
		cache = achievement.NopCache{}
	}
	return &Service{
		store:        store,
		catalog:      catalog,
		achievements: achievements,
		cache:        cache,
		logger:       logger,
	}
}

// Favorites returns an empty favorites repository bound to session.
func (service *Service) Favorites(session Session) *Favorites {
	return NewFavorites(session, service.store, service.catalog, service.logger, service.invalidator(session))
}

// Lists returns an empty lists repository bound to session.
func (service *Service) Lists(session Session) *Lists {
	return NewLists(session, service.store, service.logger, service.invalidator(session))
}

/*
Load fetches both repositories of a session concurrently.

Returns:
  - *Lists, *Favorites: Populated repositories
  - error: ErrAuthRequired or the first *StoreError
*/
func (service *Service) Load(context context.Context, session Session) (*Lists, *Favorites, error) {
	if !session.Authenticated() {
		return nil, nil, ErrAuthRequired
	}

	lists := service.Lists(session)
	favorites := service.Favorites(session)

	group, groupContext := errgroup.WithContext(context)
	group.Go(func() error { return lists.Fetch(groupContext) })
	group.Go(func() error { return favorites.Fetch(groupContext) })

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	return lists, favorites, nil
}

/*
Achievements returns the achievement set of a session.

Description: A cached set is returned when present. Otherwise the library is
loaded, the set derived and cached. The write is dropped when a mutation
invalidated the user after the generation was read. Cache failures are
logged and bypassed.
*/
func (service *Service) Achievements(context context.Context, session Session) (achievement.Set, error) {
	if !session.Authenticated() {
		return nil, ErrAuthRequired
	}

	set, found, err := service.cache.Get(context, session.UserID)
	if err != nil {
		service.logger.Warn("achievement_cache_read_failed",
			slog.String("user_id", session.UserID),
			slog.Any("error", err),
		)
	}
	if found {
		return set, nil
	}

	// 1. Generation before loading
	generation, err := service.cache.Generation(context, session.UserID)
	cacheable := err == nil
	if err != nil {
		service.logger.Warn("achievement_cache_generation_failed",
			slog.String("user_id", session.UserID),
			slog.Any("error", err),
		)
	}

	// 2. Derive from the store
	lists, favorites, err := service.Load(context, session)
	if err != nil {
		return nil, err
	}

	set = Derive(service.achievements, lists, favorites)

	// 3. Cache unless the generation moved
	if !cacheable {
		return set, nil
	}
	if err := service.cache.Put(context, session.UserID, generation, set); err != nil {
		service.logger.Warn("achievement_cache_write_failed",
			slog.String("user_id", session.UserID),
			slog.Any("error", err),
		)
	}

	return set, nil
}

// Invalidate drops the cached achievement set of a session.
func (service *Service) Invalidate(context context.Context, session Session) {
	if err := service.cache.Invalidate(context, session.UserID); err != nil {
		service.logger.Warn("achievement_cache_invalidate_failed",
			slog.String("user_id", session.UserID),
			slog.Any("error", err),
		)
	}
}

func (service *Service) invalidator(session Session) func(context.Context) {
	return func(context context.Context) {
		service.Invalidate(context, session)
	}
}

// Derive projects loaded repositories onto the achievement catalog.
func Derive(catalog *achievement.Catalog, lists *Lists, favorites *Favorites) achievement.Set {
	counts := lists.Counts()

	return achievement.Compute(catalog, achievement.Inputs{
		Watching:  counts[CategoryWatching],
		Completed: counts[CategoryCompleted],
		Favorites: favorites.Count(),
		Genres:    achievement.CountGenres(lists.Genres()),
	})
}
