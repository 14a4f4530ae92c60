// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/taibuivan/animetrack/internal/platform/apperr"
	"github.com/taibuivan/animetrack/internal/platform/constants"
	"github.com/taibuivan/animetrack/internal/platform/validate"
	"github.com/taibuivan/animetrack/pkg/uuid"
)

// Lists mirrors the list memberships of one session, grouped by category.
//
// # Concurrency
//
// Safe for concurrent use. Store calls run outside the lock, so two writers to
// the same row resolve by the store's last write; the cache keeps whichever
// returned row carries the newer UpdatedAt.
type Lists struct {
	session  Session
	store    MembershipStore
	logger   *slog.Logger
	onChange func(context.Context)

	mutex   sync.RWMutex
	entries map[string]*Membership // keyed by membership id
	byAnime map[string]string      // anime id -> membership id
}

// NewLists creates an empty repository. onChange, when set, runs after every successful mutation.
func NewLists(session Session, store MembershipStore, logger *slog.Logger, onChange func(context.Context)) *Lists {
	return &Lists{
		session:  session,
		store:    store,
		logger:   logger,
		onChange: onChange,
		entries:  make(map[string]*Membership),
		byAnime:  make(map[string]string),
	}
}

/*
Fetch replaces the cache with the memberships held by the store.

Description: Rows whose title did not resolve are dropped and logged, since
they are a data-quality issue rather than a caller failure.

Returns:
  - error: ErrAuthRequired, or *StoreError with the cache left untouched
*/
func (repository *Lists) Fetch(context context.Context) error {
	if !repository.session.Authenticated() {
		return ErrAuthRequired
	}

	memberships, err := repository.store.ListMemberships(context, repository.session.UserID)
	if err != nil {
		return storeError("fetch_lists", err)
	}

	entries := make(map[string]*Membership, len(memberships))
	byAnime := make(map[string]string, len(memberships))

	for _, membership := range memberships {
		if membership.Anime == nil {
			repository.logger.Warn("membership_dropped_unresolved_anime",
				slog.String("user_id", repository.session.UserID),
				slog.String("membership_id", membership.ID),
				slog.String("anime_id", membership.AnimeID),
			)
			continue
		}
		if !membership.Category.Valid() {
			repository.logger.Warn("membership_dropped_unknown_category",
				slog.String("membership_id", membership.ID),
				slog.String("category", string(membership.Category)),
			)
			continue
		}

		entry := membership.Clone()
		entries[entry.ID] = entry
		byAnime[entry.AnimeID] = entry.ID
	}

	repository.mutex.Lock()
	repository.entries = entries
	repository.byAnime = byAnime
	repository.mutex.Unlock()

	return nil
}

/*
Add places a title in a list.

Description: The store is checked for an existing membership of the title.
  - Absent: a new membership is inserted.
  - Other category: one update moves it, writing the requested progress and
    any supplied rating or notes.
  - Same category: nothing is written and the existing row is returned.

Returns:
  - *Membership: The resulting membership
  - error: ErrAuthRequired, validation errors, or *StoreError
*/
func (repository *Lists) Add(context context.Context, input AddInput) (*Membership, error) {
	if !repository.session.Authenticated() {
		return nil, ErrAuthRequired
	}

	validator := &validate.Validator{}
	validator.
		Required("anime_id", input.AnimeID).
		OneOf("category", string(input.Category), categoryNames()...)
	validateValues(validator, &input.Progress, input.Rating, input.Notes)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// 1. Look for an existing membership of the title
	existing, err := repository.store.FindMembership(context, repository.session.UserID, input.AnimeID)
	if err != nil && !apperr.IsNotFound(err) {
		return nil, storeError("add_membership", err)
	}

	// 2. Absent: insert
	if existing == nil {
		membership := &Membership{
			ID:       uuid.New(),
			UserID:   repository.session.UserID,
			AnimeID:  input.AnimeID,
			Category: input.Category,
			Progress: input.Progress,
			Rating:   input.Rating,
		}
		if input.Notes != nil {
			membership.Notes = *input.Notes
		}

		inserted, err := repository.store.InsertMembership(context, membership)
		if err != nil {
			return nil, storeError("add_membership", err)
		}

		repository.put(inserted)
		repository.changed(context)
		repository.logger.Info("membership_added",
			slog.String("user_id", repository.session.UserID),
			slog.String("anime_id", input.AnimeID),
			slog.String("category", string(input.Category)),
		)

		return inserted.Clone(), nil
	}

	// 3. Same category: no-op
	if existing.Category == input.Category {
		repository.put(existing)
		return existing.Clone(), nil
	}

	// 4. Other category: move in a single update
	category, progress := input.Category, input.Progress
	moved, err := repository.store.UpdateMembership(context, repository.session.UserID, existing.ID, Patch{
		Category: &category,
		Progress: &progress,
		Rating:   input.Rating,
		Notes:    input.Notes,
	})
	if err != nil {
		return nil, storeError("add_membership", err)
	}

	repository.put(moved)
	repository.changed(context)
	repository.logger.Info("membership_moved",
		slog.String("membership_id", moved.ID),
		slog.String("from", string(existing.Category)),
		slog.String("to", string(moved.Category)),
	)

	return moved.Clone(), nil
}

/*
Update applies a partial update to a membership.

Description: The category only changes when the patch names one; reaching
100% progress does not move a title to completed.

Returns:
  - *Membership: The updated membership
  - error: apperr.NotFound for an unknown id (cache unchanged), validation errors, or *StoreError
*/
func (repository *Lists) Update(context context.Context, id string, patch Patch) (*Membership, error) {
	if !repository.session.Authenticated() {
		return nil, ErrAuthRequired
	}

	validator := &validate.Validator{}
	validator.Required("id", id)
	if patch.Category != nil {
		validator.OneOf("category", string(*patch.Category), categoryNames()...)
	}
	validateValues(validator, patch.Progress, patch.Rating, patch.Notes)
	validator.Custom("patch", patch.IsEmpty(), "At least one field must be provided")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	updated, err := repository.store.UpdateMembership(context, repository.session.UserID, id, patch)
	if err != nil {
		if apperr.IsNotFound(err) {
			notFound := apperr.NotFound("List entry")
			notFound.Cause = err
			return nil, notFound
		}
		return nil, storeError("update_membership", err)
	}

	repository.put(updated)
	repository.changed(context)

	return updated.Clone(), nil
}

/*
Remove hard-deletes a membership. Removing an unknown id succeeds.
*/
func (repository *Lists) Remove(context context.Context, id string) error {
	if !repository.session.Authenticated() {
		return ErrAuthRequired
	}

	removed, err := repository.store.DeleteMembership(context, repository.session.UserID, id)
	if err != nil {
		return storeError("remove_membership", err)
	}

	repository.mutex.Lock()
	if entry, found := repository.entries[id]; found {
		delete(repository.byAnime, entry.AnimeID)
		delete(repository.entries, id)
	}
	repository.mutex.Unlock()

	if removed {
		repository.changed(context)
	}

	return nil
}

// Status returns the cached list placement of a title.
func (repository *Lists) Status(animeID string) Status {
	repository.mutex.RLock()
	defer repository.mutex.RUnlock()

	id, found := repository.byAnime[animeID]
	if !found {
		return Status{}
	}
	return Status{InList: true, Category: repository.entries[id].Category}
}

// Snapshot returns copies of every bucket, most recently updated first.
func (repository *Lists) Snapshot() Snapshot {
	snapshot := Snapshot{
		Watching:    []*Membership{},
		Completed:   []*Membership{},
		PlanToWatch: []*Membership{},
		OnHold:      []*Membership{},
		Dropped:     []*Membership{},
	}

	repository.mutex.RLock()
	for _, membership := range repository.entries {
		if bucket := snapshot.bucket(membership.Category); bucket != nil {
			*bucket = append(*bucket, membership.Clone())
		}
	}
	repository.mutex.RUnlock()

	for _, category := range Categories() {
		slices.SortFunc(snapshot.Bucket(category), newestFirst)
	}

	return snapshot
}

// Counts returns the size of every bucket. All five categories are present.
func (repository *Lists) Counts() Counts {
	counts := make(Counts, len(Categories()))
	for _, category := range Categories() {
		counts[category] = 0
	}

	repository.mutex.RLock()
	for _, membership := range repository.entries {
		counts[membership.Category]++
	}
	repository.mutex.RUnlock()

	return counts
}

// Genres returns the genre list of every cached title across all buckets.
func (repository *Lists) Genres() [][]string {
	repository.mutex.RLock()
	defer repository.mutex.RUnlock()

	genres := make([][]string, 0, len(repository.entries))
	for _, membership := range repository.entries {
		if membership.Anime != nil {
			genres = append(genres, append([]string(nil), membership.Anime.Genres...))
		}
	}
	return genres
}

// put reconciles a row returned by the store into the cache.
//
// A row older than the cached one is ignored.
func (repository *Lists) put(membership *Membership) {
	entry := membership.Clone()

	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	if cached, found := repository.entries[entry.ID]; found {
		if cached.UpdatedAt.After(entry.UpdatedAt) {
			return
		}
		if entry.Anime == nil {
			entry.Anime = cached.Anime
		}
	}

	// A title belongs to at most one membership
	if previousID, found := repository.byAnime[entry.AnimeID]; found && previousID != entry.ID {
		delete(repository.entries, previousID)
	}

	repository.entries[entry.ID] = entry
	repository.byAnime[entry.AnimeID] = entry.ID
}

func (repository *Lists) changed(context context.Context) {
	if repository.onChange != nil {
		repository.onChange(context)
	}
}

// validateValues applies the shared field rules to the optional values of a write.
func validateValues(validator *validate.Validator, progress, rating *int, notes *string) {
	validator.
		OptionalRange("progress", progress, 0, constants.MaxProgress).
		OptionalRange("rating", rating, 0, constants.MaxRating)
	if notes != nil {
		validator.MaxLen("notes", *notes, constants.MaxNotesLength)
	}
}

func newestFirst(a, b *Membership) int {
	if byTime := b.UpdatedAt.Compare(a.UpdatedAt); byTime != 0 {
		return byTime
	}
	return cmp.Compare(a.ID, b.ID)
}
