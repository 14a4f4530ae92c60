// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package anime owns the read-mostly anime catalog.

Catalog rows are the metadata joined onto list memberships and favorites: title,
artwork, genres (which feed genre achievements), community rating and release date.

# Architecture

  - Entities: Anime.
  - Repository: Postgres implementation over catalog.anime.
  - Service: lookups, paginated discovery and admin upserts.
  - Import: YAML catalog files decoded for the admin CLI.
*/
package anime

import (
	"context"
	"time"

	"github.com/taibuivan/animetrack/pkg/pagination"
)

// # Domain Entities

// Anime is a single catalog title.
type Anime struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	ImageURL    string     `json:"image_url"`
	Genres      []string   `json:"genres"`
	Rating      *float64   `json:"rating"`
	Description string     `json:"description"`
	ReleaseDate *time.Time `json:"release_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Clone returns a deep copy so cached values can be handed out safely.
func (a *Anime) Clone() *Anime {
	if a == nil {
		return nil
	}

	clone := *a
	clone.Genres = append([]string(nil), a.Genres...)
	if a.Rating != nil {
		rating := *a.Rating
		clone.Rating = &rating
	}
	if a.ReleaseDate != nil {
		releaseDate := *a.ReleaseDate
		clone.ReleaseDate = &releaseDate
	}

	return &clone
}

// ListFilter narrows catalog discovery.
type ListFilter struct {
	// Genres keeps titles carrying every listed genre.
	Genres []string
}

// # Repository Contracts

// Repository defines the persistence contract for the catalog.
type Repository interface {
	/*
		FindByID returns a single title.

		Returns:
		  - *Anime: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*Anime, error)

	/*
		FindByIDs batch-loads titles. Unknown ids are silently absent from the result.
	*/
	FindByIDs(context context.Context, ids []string) ([]*Anime, error)

	/*
		List returns one page of titles and the total match count.
	*/
	List(context context.Context, filter ListFilter, params pagination.Params) ([]*Anime, int, error)

	/*
		Upsert inserts a title or replaces the mutable fields of an existing one.
	*/
	Upsert(context context.Context, anime *Anime) error
}
