// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package fold builds case-insensitive comparison keys.
//
// Genre names are stored and matched through [Key] so catalog filters and
// achievement counts agree on every script, not only ASCII.
package fold

import (
	"strings"

	"golang.org/x/text/cases"
)

// Key trims s and applies Unicode case folding (e.g. "ΑΓΑΠΗΣ" and "αγαπης" share a key).
//
// A fresh caser is built per call because [cases.Caser] is not safe for concurrent use.
func Key(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
