// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/animetrack/internal/platform/apperr"
	"github.com/taibuivan/animetrack/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "anime_id", "frieren", false},
		{"empty_string", "anime_id", "", true},
		{"whitespace_only", "anime_id", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Range checks inclusive bounds, including the optional variant.
*/
func TestValidator_Range(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		isValid bool
	}{
		{"lower_bound", 0, true},
		{"upper_bound", 100, true},
		{"below", -1, false},
		{"above", 101, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Range("progress", tt.value, 0, 100)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}

	t.Run("optional_nil_is_skipped", func(t *testing.T) {
		v := &validate.Validator{}
		v.OptionalRange("rating", nil, 0, 10)
		assert.False(t, v.HasErrors())
	})

	t.Run("optional_out_of_range", func(t *testing.T) {
		v := &validate.Validator{}
		rating := 11
		v.OptionalRange("rating", &rating, 0, 10)
		assert.True(t, v.HasErrors())
	})
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("title", "Frieren").
		MaxLen("title", "Frieren", 10).
		Slug("slug", "sousou-no-frieren").
		OneOf("category", "watching", "watching", "completed").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("title", "").                      // Fails
		Slug("slug", "Not A Slug").                 // Fails
		UUID("id", "not-a-uuid").                   // Fails
		OneOf("category", "rewatching", "watching"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 4 errors
	assert.Len(t, ae.Details, 4)
}
