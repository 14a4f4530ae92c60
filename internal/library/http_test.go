// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/animetrack/internal/library"
	"github.com/taibuivan/animetrack/internal/platform/ctxutil"
	"github.com/taibuivan/animetrack/internal/platform/sec"
)

// apiClient drives the /me router as an authenticated user.
type apiClient struct {
	t       *testing.T
	handler http.Handler
	claims  *sec.AuthClaims
}

func newAPIClient(t *testing.T, store *memoryStore) *apiClient {
	service := newService(store, newMemoryCache())
	return &apiClient{
		t:       t,
		handler: library.NewHandler(service).Routes(),
		claims:  &sec.AuthClaims{UserID: userID, Role: string(sec.RoleMember)},
	}
}

func (client *apiClient) do(method, path, body string) *httptest.ResponseRecorder {
	client.t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if client.claims != nil {
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), client.claims))
	}
	recorder := httptest.NewRecorder()
	client.handler.ServeHTTP(recorder, request)
	return recorder
}

// decodeData unwraps the success envelope into target.
func decodeData(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()

	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, target))
}

/*
TestHandler_ListFlow covers add, status, patch and delete over HTTP.
*/
func TestHandler_ListFlow(t *testing.T) {
	client := newAPIClient(t, newMemoryStore(title("frieren", "Fantasy")))

	// 1. Add
	recorder := client.do(http.MethodPost, "/lists", `{"anime_id":"frieren","category":"watching","progress":20}`)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	var membership library.Membership
	decodeData(t, recorder, &membership)
	assert.Equal(t, library.CategoryWatching, membership.Category)

	// 2. Status
	recorder = client.do(http.MethodGet, "/lists/status/frieren", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var status library.Status
	decodeData(t, recorder, &status)
	assert.Equal(t, library.Status{InList: true, Category: library.CategoryWatching}, status)

	// 3. Patch
	recorder = client.do(http.MethodPatch, "/lists/"+membership.ID, `{"progress":100}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	decodeData(t, recorder, &membership)
	assert.Equal(t, 100, membership.Progress)
	assert.Equal(t, library.CategoryWatching, membership.Category)

	// 4. Lists
	recorder = client.do(http.MethodGet, "/lists", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var lists struct {
		Lists  library.Snapshot `json:"lists"`
		Counts map[string]int   `json:"counts"`
	}
	decodeData(t, recorder, &lists)
	assert.Len(t, lists.Lists.Watching, 1)
	assert.Equal(t, 1, lists.Counts["watching"])
	assert.Equal(t, 0, lists.Counts["dropped"])

	// 5. Delete
	recorder = client.do(http.MethodDelete, "/lists/"+membership.ID, "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestHandler_Errors(t *testing.T) {
	client := newAPIClient(t, newMemoryStore(title("a")))

	tests := []struct {
		name, method, path, body string
		wantStatus               int
		wantCode                 string
	}{
		{"bad_json", http.MethodPost, "/lists", `{`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad_category", http.MethodPost, "/lists", `{"anime_id":"a","category":"binging"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown_membership", http.MethodPatch, "/lists/missing", `{"progress":1}`, http.StatusNotFound, "NOT_FOUND"},
		{"bad_view", http.MethodGet, "/achievements?view=secret", "", http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := client.do(tt.method, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.wantCode)
		})
	}
}

func TestHandler_Unauthenticated(t *testing.T) {
	client := newAPIClient(t, newMemoryStore())
	client.claims = nil

	recorder := client.do(http.MethodGet, "/favorites", "")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestHandler_Favorites covers idempotent PUT and DELETE plus the lookup endpoint.
*/
func TestHandler_Favorites(t *testing.T) {
	client := newAPIClient(t, newMemoryStore(title("a")))

	assert.Equal(t, http.StatusOK, client.do(http.MethodPut, "/favorites/a", "").Code)
	assert.Equal(t, http.StatusOK, client.do(http.MethodPut, "/favorites/a", "").Code)

	recorder := client.do(http.MethodGet, "/favorites/a", "")
	var status struct {
		Favorite bool `json:"favorite"`
	}
	decodeData(t, recorder, &status)
	assert.True(t, status.Favorite)

	recorder = client.do(http.MethodGet, "/favorites", "")
	var favorites []library.Favorite
	decodeData(t, recorder, &favorites)
	assert.Len(t, favorites, 1)

	assert.Equal(t, http.StatusNoContent, client.do(http.MethodDelete, "/favorites/a", "").Code)
	assert.Equal(t, http.StatusNoContent, client.do(http.MethodDelete, "/favorites/a", "").Code)
}

/*
TestHandler_AchievementViews checks the view and limit parameters.
*/
func TestHandler_AchievementViews(t *testing.T) {
	store := newMemoryStore(title("a"), title("b"))
	client := newAPIClient(t, store)

	client.do(http.MethodPost, "/lists", `{"anime_id":"a","category":"watching"}`)
	client.do(http.MethodPost, "/lists", `{"anime_id":"b","category":"completed"}`)

	var all []map[string]any
	decodeData(t, client.do(http.MethodGet, "/achievements", ""), &all)
	assert.Len(t, all, 11)

	var unlocked []map[string]any
	decodeData(t, client.do(http.MethodGet, "/achievements?view=unlocked", ""), &unlocked)
	require.Len(t, unlocked, 1)
	assert.Equal(t, "first_finish", unlocked[0]["id"])

	var next []map[string]any
	decodeData(t, client.do(http.MethodGet, "/achievements?view=next&limit=2", ""), &next)
	assert.Len(t, next, 2)
}
