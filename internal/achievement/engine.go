// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import (
	"cmp"
	"slices"

	"github.com/taibuivan/animetrack/internal/platform/constants"
)

// maxProgress is the completion percentage of an unlocked achievement.
const maxProgress = 100

// DefaultNext is the size of the "next up" ranking when no size is requested.
const DefaultNext = constants.DefaultNextAchievements

// # Derivation

// Compute derives every achievement of catalog from inputs, preserving catalog order.
func Compute(catalog *Catalog, inputs Inputs) Set {
	set := make(Set, 0, catalog.Len())

	for _, definition := range catalog.definitions {
		observed := observedCount(definition, inputs)
		progress := Progress(observed, definition.Threshold)

		set = append(set, Achievement{
			Definition: definition,
			Progress:   progress,
			Unlocked:   progress >= maxProgress,
		})
	}

	return set
}

// Progress returns min(100, floor(100*observed/threshold)), clamped at 0.
// A non-positive threshold counts as already reached.
func Progress(observed, threshold int) int {
	if threshold <= 0 {
		return maxProgress
	}
	if observed <= 0 {
		return 0
	}
	if observed >= threshold {
		return maxProgress
	}
	return maxProgress * observed / threshold
}

// observedCount selects the numerator for a definition.
func observedCount(definition Definition, inputs Inputs) int {
	switch definition.Category {
	case CategoryWatching:
		return inputs.Watching
	case CategoryCompleted:
		return inputs.Completed
	case CategoryGenre:
		return inputs.Genres.Count(GenreOf(definition))
	case CategoryRating:
		// No rating count is tracked separately; completed titles stand in for rated ones.
		return inputs.Completed
	case CategoryFavorites:
		return inputs.Favorites
	default:
		return 0
	}
}

// # Query Helpers

// Set is the derived state of a whole catalog.
type Set []Achievement

// Unlocked returns the unlocked achievements in catalog order.
func (set Set) Unlocked() Set {
	return set.filter(func(achievement Achievement) bool {
		return achievement.Unlocked
	})
}

// InProgress returns locked achievements with some progress, in catalog order.
func (set Set) InProgress() Set {
	return set.filter(func(achievement Achievement) bool {
		return !achievement.Unlocked && achievement.Progress > 0
	})
}

// Next returns the n in-progress achievements closest to unlocking.
//
// Ordering is by descending progress, then ascending id. n <= 0 means [DefaultNext].
func (set Set) Next(n int) Set {
	if n <= 0 {
		n = DefaultNext
	}

	ranked := set.InProgress()
	slices.SortStableFunc(ranked, func(a, b Achievement) int {
		if byProgress := cmp.Compare(b.Progress, a.Progress); byProgress != 0 {
			return byProgress
		}
		return cmp.Compare(a.ID, b.ID)
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Find returns the achievement with the given id.
func (set Set) Find(id string) (Achievement, bool) {
	for _, achievement := range set {
		if achievement.ID == id {
			return achievement, true
		}
	}
	return Achievement{}, false
}

func (set Set) filter(keep func(Achievement) bool) Set {
	result := make(Set, 0, len(set))
	for _, achievement := range set {
		if keep(achievement) {
			result = append(result, achievement)
		}
	}
	return result
}
