// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import "github.com/taibuivan/animetrack/internal/platform/apperr"

// ErrAuthRequired is returned by every repository operation on an unauthenticated session.
var ErrAuthRequired = apperr.Unauthorized("Authentication required")

// StoreError reports a failed call to the backing store.
//
// It unwraps to the store's error, so [apperr.As] still finds the classified
// [apperr.AppError] produced by the storage layer.
type StoreError struct {
	// Op names the repository operation, e.g. "add_favorite".
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "library_" + e.Op + "_failed: " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
