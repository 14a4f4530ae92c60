// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package fold_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/animetrack/pkg/fold"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ASCII", "  Action ", "action"},
		{"Latin accents", "ÉMOTION", "émotion"},
		{"Greek", "ΔΡΑΜΑ", "δραμα"},
		{"Final sigma", "αγαπης", "αγαπησ"},
		{"Empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fold.Key(tt.input))
		})
	}
}
