// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package library mirrors a user's watch lists and favorites and feeds the achievement engine.

Durable records live in PostgreSQL. Each repository in this package holds a
session-scoped, in-memory mirror of those records that the HTTP layer and the
achievement engine read from.

# Architecture

  - Entities: Membership (one per user and title), Favorite.
  - Stores: FavoriteStore, MembershipStore and their Postgres implementation.
  - Repositories: Favorites and Lists, each guarding its cache with an RWMutex.
  - Service: builds repositories per session and derives achievements.

# Cache Rules

Store calls happen outside the lock. A failed store call never touches the
cache. Callers only ever receive copies of cached values.
*/
package library

import (
	"time"

	"github.com/taibuivan/animetrack/internal/anime"
)

// # Domain Entities

// Membership places one title in exactly one list category for a user.
type Membership struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	AnimeID   string    `json:"anime_id"`
	Category  Category  `json:"category"`
	Progress  int       `json:"progress"`
	Rating    *int      `json:"rating"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Anime is the joined catalog row. It is nil when the join did not resolve.
	Anime *anime.Anime `json:"anime,omitempty"`
}

// Clone returns a deep copy.
func (membership *Membership) Clone() *Membership {
	if membership == nil {
		return nil
	}

	clone := *membership
	if membership.Rating != nil {
		rating := *membership.Rating
		clone.Rating = &rating
	}
	clone.Anime = membership.Anime.Clone()

	return &clone
}

// Favorite marks a title as a favorite of a user, independent of its list category.
type Favorite struct {
	UserID    string    `json:"user_id"`
	AnimeID   string    `json:"anime_id"`
	CreatedAt time.Time `json:"created_at"`

	Anime *anime.Anime `json:"anime,omitempty"`
}

// Clone returns a deep copy.
func (favorite *Favorite) Clone() *Favorite {
	if favorite == nil {
		return nil
	}

	clone := *favorite
	clone.Anime = favorite.Anime.Clone()
	return &clone
}

// # Inputs

// AddInput places a title in a list.
type AddInput struct {
	AnimeID  string   `json:"anime_id"`
	Category Category `json:"category"`
	Progress int      `json:"progress"`

	// Rating and Notes are only written when supplied.
	Rating *int    `json:"rating"`
	Notes  *string `json:"notes"`
}

// Patch is a partial update of a membership. Nil fields are left unchanged.
type Patch struct {
	Category *Category `json:"category"`
	Progress *int      `json:"progress"`
	Rating   *int      `json:"rating"`
	Notes    *string   `json:"notes"`
}

// IsEmpty reports whether the patch changes nothing.
func (patch Patch) IsEmpty() bool {
	return patch.Category == nil && patch.Progress == nil && patch.Rating == nil && patch.Notes == nil
}

// # Read Models

// Status is the list placement of a single title.
type Status struct {
	InList   bool     `json:"in_list"`
	Category Category `json:"category,omitempty"`
}

// Snapshot is a read-only copy of every list bucket, most recently updated first.
type Snapshot struct {
	Watching    []*Membership `json:"watching"`
	Completed   []*Membership `json:"completed"`
	PlanToWatch []*Membership `json:"plan_to_watch"`
	OnHold      []*Membership `json:"on_hold"`
	Dropped     []*Membership `json:"dropped"`
}

// Bucket returns the slice of the snapshot holding category.
func (snapshot *Snapshot) Bucket(category Category) []*Membership {
	switch category {
	case CategoryWatching:
		return snapshot.Watching
	case CategoryCompleted:
		return snapshot.Completed
	case CategoryPlanToWatch:
		return snapshot.PlanToWatch
	case CategoryOnHold:
		return snapshot.OnHold
	case CategoryDropped:
		return snapshot.Dropped
	default:
		return nil
	}
}

// bucket returns a pointer to the slice holding category.
func (snapshot *Snapshot) bucket(category Category) *[]*Membership {
	switch category {
	case CategoryWatching:
		return &snapshot.Watching
	case CategoryCompleted:
		return &snapshot.Completed
	case CategoryPlanToWatch:
		return &snapshot.PlanToWatch
	case CategoryOnHold:
		return &snapshot.OnHold
	case CategoryDropped:
		return &snapshot.Dropped
	default:
		return nil
	}
}

// Counts holds the size of every bucket.
type Counts map[Category]int
