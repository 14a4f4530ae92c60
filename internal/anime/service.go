// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package anime

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/animetrack/internal/platform/validate"
	"github.com/taibuivan/animetrack/pkg/fold"
	"github.com/taibuivan/animetrack/pkg/pagination"
	"github.com/taibuivan/animetrack/pkg/slice"
	"github.com/taibuivan/animetrack/pkg/slug"
	"github.com/taibuivan/animetrack/pkg/uuid"
)

// Catalog field limits.
const (
	maxTitleLength       = 300
	maxDescriptionLength = 10000
	maxGenres            = 20
)

// # Service Layer

// Service orchestrates catalog reads and admin writes.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// Get returns a single title.
func (service *Service) Get(context context.Context, id string) (*Anime, error) {
	anime, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("anime_service_get_failed: %w", err)
	}
	return anime, nil
}

// List returns a page of titles matching the filter.
func (service *Service) List(context context.Context, filter ListFilter, params pagination.Params) ([]*Anime, int, error) {
	filter.Genres = NormalizeGenres(filter.Genres)

	items, total, err := service.repository.List(context, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("anime_service_list_failed: %w", err)
	}
	return items, total, nil
}

/*
Upsert validates and persists a catalog title.

Description: Missing ids get a fresh UUIDv7 and missing slugs are derived from
the title. Genres are trimmed, lower-cased and de-duplicated.

Returns:
  - *Anime: The persisted title with timestamps
  - error: Validation or storage failures
*/
func (service *Service) Upsert(context context.Context, anime *Anime) (*Anime, error) {
	prepared := anime.Clone()
	prepared.Title = strings.TrimSpace(prepared.Title)
	prepared.Genres = NormalizeGenres(prepared.Genres)

	if prepared.ID == "" {
		prepared.ID = uuid.New()
	}
	if prepared.Slug == "" {
		prepared.Slug = slug.From(prepared.Title)
	}

	validator := &validate.Validator{}
	validator.
		Required("title", prepared.Title).
		MaxLen("title", prepared.Title, maxTitleLength).
		Slug("slug", prepared.Slug).
		MaxLen("description", prepared.Description, maxDescriptionLength).
		Custom("genres", len(prepared.Genres) > maxGenres, fmt.Sprintf("Maximum %d genres", maxGenres)).
		Custom("rating", prepared.Rating != nil && (*prepared.Rating < 0 || *prepared.Rating > 10), "Must be between 0 and 10")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repository.Upsert(context, prepared); err != nil {
		return nil, fmt.Errorf("anime_service_upsert_failed: %w", err)
	}

	service.logger.Info("anime_upserted",
		slog.String("anime_id", prepared.ID),
		slog.String("slug", prepared.Slug),
	)

	return prepared, nil
}

// NormalizeGenres trims, case-folds and de-duplicates genre names, keeping first-seen order.
func NormalizeGenres(genres []string) []string {
	seen := make(map[string]struct{}, len(genres))

	cleaned := slice.Map(genres, func(genre string) string {
		return fold.Key(genre)
	})

	return append([]string{}, slice.Filter(cleaned, func(genre string) bool {
		if genre == "" {
			return false
		}
		if _, duplicate := seen[genre]; duplicate {
			return false
		}
		seen[genre] = struct{}{}
		return true
	})...)
}
