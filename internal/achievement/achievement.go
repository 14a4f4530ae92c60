// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package achievement derives gamification progress from a user's lists and favorites.

The engine is a pure projection: given the counts of a library snapshot and a
static catalog of thresholds it returns every achievement with its progress
percentage and unlock state. It performs no I/O and holds no state, so the same
inputs always produce the same output.

# Derivation

	progress = min(100, floor(100 * observed / threshold))
	unlocked = observed >= threshold

Unlock state is recomputed on every call. Removing titles from a list can
therefore lock an achievement again.
*/
package achievement

import "fmt"

// # Categories

// Category selects which observed count feeds an achievement.
type Category string

const (
	CategoryWatching  Category = "watching"
	CategoryCompleted Category = "completed"
	CategoryGenre     Category = "genre"
	CategoryRating    Category = "rating"
	CategoryFavorites Category = "favorites"
)

// ParseCategory converts a raw catalog value into a [Category].
func ParseCategory(raw string) (Category, error) {
	switch category := Category(raw); category {
	case CategoryWatching, CategoryCompleted, CategoryGenre, CategoryRating, CategoryFavorites:
		return category, nil
	default:
		return "", fmt.Errorf("achievement: unknown category %q", raw)
	}
}

// # Entities

// Definition is one static catalog entry.
type Definition struct {
	ID          string   `json:"id"          yaml:"id"`
	Title       string   `json:"title"       yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Category    Category `json:"category"    yaml:"category"`
	Threshold   int      `json:"threshold"   yaml:"threshold"`
	Color       string   `json:"color"       yaml:"color"`
}

// Achievement is a [Definition] with its derived state.
type Achievement struct {
	Definition

	// Progress is the floored completion percentage in [0, 100].
	Progress int `json:"progress"`

	// Unlocked is true exactly when Progress is 100.
	Unlocked bool `json:"unlocked"`
}

// Inputs are the observed counts of one library snapshot.
type Inputs struct {
	Watching  int
	Completed int
	Favorites int
	Genres    GenreTable
}
