// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import "github.com/taibuivan/animetrack/internal/platform/validate"

// Category is the watch status of a membership.
type Category string

const (
	CategoryWatching    Category = "watching"
	CategoryCompleted   Category = "completed"
	CategoryPlanToWatch Category = "plan_to_watch"
	CategoryOnHold      Category = "on_hold"
	CategoryDropped     Category = "dropped"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{
		CategoryWatching,
		CategoryCompleted,
		CategoryPlanToWatch,
		CategoryOnHold,
		CategoryDropped,
	}
}

// Valid reports whether the category is one of the five known values.
func (category Category) Valid() bool {
	switch category {
	case CategoryWatching, CategoryCompleted, CategoryPlanToWatch, CategoryOnHold, CategoryDropped:
		return true
	default:
		return false
	}
}

// ParseCategory converts a raw value into a [Category].
//
// Returns a VALIDATION_ERROR for anything outside the closed set.
func ParseCategory(raw string) (Category, error) {
	validator := &validate.Validator{}
	if err := validator.OneOf("category", raw, categoryNames()...).Err(); err != nil {
		return "", err
	}
	return Category(raw), nil
}

func categoryNames() []string {
	names := make([]string, 0, 5)
	for _, category := range Categories() {
		names = append(names, string(category))
	}
	return names
}
