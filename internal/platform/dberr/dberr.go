// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/animetrack/internal/platform/apperr"
)

// SQLSTATE codes classified by [Wrap].
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// The action names the failed operation and is kept on the cause for server-side logs.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		notFound := apperr.NotFound("Resource")
		notFound.Cause = fmt.Errorf("%s: %w", action, err)
		return notFound
	}

	// 2. Constraint violations carry a client-meaningful status
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		var classified *apperr.AppError
		switch pgError.Code {
		case codeUniqueViolation:
			classified = apperr.Conflict("Resource already exists")
		case codeForeignKeyViolation:
			classified = apperr.Unprocessable("Referenced resource does not exist")
		case codeCheckViolation:
			classified = apperr.ValidationError("Value violates a storage constraint")
		}
		if classified != nil {
			classified.Cause = fmt.Errorf("%s: %w", action, err)
			return classified
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
