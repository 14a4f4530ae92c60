// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/animetrack/internal/achievement"
)

/*
TestCountGenres verifies case-insensitive counting with one vote per title.
*/
func TestCountGenres(t *testing.T) {
	table := achievement.CountGenres([][]string{
		{"Action", "Comedy"},
		{"action", "ACTION", "Drama"},
		{" Comedy ", ""},
		nil,
	})

	assert.Equal(t, 2, table.Count("action"))
	assert.Equal(t, 2, table.Count("ACTION"))
	assert.Equal(t, 2, table.Count("Comedy"))
	assert.Equal(t, 1, table.Count("drama"))
	assert.Equal(t, 0, table.Count("romance"))
}

/*
TestCountGenres_Unicode checks folding beyond ASCII.
*/
func TestCountGenres_Unicode(t *testing.T) {
	table := achievement.CountGenres([][]string{{"Émotion"}, {"ÉMOTION"}})

	assert.Equal(t, 2, table.Count("émotion"))
}

func TestGenreTable_NilIsEmpty(t *testing.T) {
	var table achievement.GenreTable
	assert.Zero(t, table.Count("action"))
}
