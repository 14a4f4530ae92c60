// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import "github.com/taibuivan/animetrack/internal/platform/sec"

// Session identifies the user whose library a repository mirrors.
// The zero value is an unauthenticated session.
type Session struct {
	UserID string
}

// SessionFromClaims builds a session from verified token claims. Nil claims give an unauthenticated session.
func SessionFromClaims(claims *sec.AuthClaims) Session {
	if claims == nil {
		return Session{}
	}
	return Session{UserID: claims.UserID}
}

// Authenticated reports whether the session carries a user.
func (session Session) Authenticated() bool {
	return session.UserID != ""
}
