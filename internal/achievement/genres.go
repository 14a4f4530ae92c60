// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import "github.com/taibuivan/animetrack/pkg/fold"

// GenreTable counts how many titles in a library carry each genre.
// Keys are case-folded; use [GenreTable.Count] rather than indexing directly.
type GenreTable map[string]int

// CountGenres builds a [GenreTable] from the genre lists of every title in a library.
//
// Each title contributes at most once to each genre, even if its metadata
// repeats a genre with different casing.
func CountGenres(genreLists [][]string) GenreTable {
	table := make(GenreTable)

	for _, genres := range genreLists {
		seen := make(map[string]struct{}, len(genres))
		for _, genre := range genres {
			key := fold.Key(genre)
			if key == "" {
				continue
			}
			if _, duplicate := seen[key]; duplicate {
				continue
			}
			seen[key] = struct{}{}
			table[key]++
		}
	}

	return table
}

// Count returns the number of titles carrying genre, matched case-insensitively.
func (table GenreTable) Count(genre string) int {
	return table[fold.Key(genre)]
}
