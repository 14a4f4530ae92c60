// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/animetrack/internal/platform/ctxutil"
	"github.com/taibuivan/animetrack/internal/platform/middleware"
	"github.com/taibuivan/animetrack/internal/platform/sec"
)

// stubVerifier accepts a single token value.
type stubVerifier struct {
	token  string
	claims *sec.AuthClaims
}

func (stub stubVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	if tokenStr != stub.token {
		return nil, errors.New("bad token")
	}
	return stub.claims, nil
}

// echoUser writes the authenticated user id, or "anonymous".
var echoUser = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	if claims := ctxutil.GetAuthUser(request.Context()); claims != nil {
		_, _ = writer.Write([]byte(claims.UserID))
		return
	}
	_, _ = writer.Write([]byte("anonymous"))
})

/*
TestAuthenticate verifies anonymous pass-through, valid tokens and rejected tokens.
*/
func TestAuthenticate(t *testing.T) {
	verifier := stubVerifier{token: "good", claims: &sec.AuthClaims{UserID: "user-1", Role: "member"}}
	handler := middleware.Authenticate(verifier)(echoUser)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"anonymous", "", http.StatusOK, "anonymous"},
		{"valid_token", "Bearer good", http.StatusOK, "user-1"},
		{"lowercase_scheme", "bearer good", http.StatusOK, "user-1"},
		{"invalid_token", "Bearer bad", http.StatusUnauthorized, ""},
		{"malformed_header", "Token", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, recorder.Body.String())
			}
		})
	}
}

/*
TestRequireRole verifies the 401/403/200 ladder.
*/
func TestRequireRole(t *testing.T) {
	handler := middleware.RequireRole(sec.RoleAdmin)(echoUser)

	// 1. Anonymous
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// 2. Member
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: "u", Role: "member"}))
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	// 3. Admin
	request = httptest.NewRequest(http.MethodGet, "/", nil)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: "root", Role: "admin"}))
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "root", recorder.Body.String())
}
