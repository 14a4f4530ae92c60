// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package anime

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/animetrack/internal/platform/middleware"
	requestutil "github.com/taibuivan/animetrack/internal/platform/request"
	"github.com/taibuivan/animetrack/internal/platform/respond"
	"github.com/taibuivan/animetrack/internal/platform/sec"
	"github.com/taibuivan/animetrack/pkg/pagination"
	"github.com/taibuivan/animetrack/pkg/query"
)

// Handler implements the HTTP layer for the anime catalog.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalog [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the catalog endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listAnime)
	router.Get("/{id}", handler.getAnime)

	router.With(middleware.RequireRole(sec.RoleAdmin)).Put("/", handler.upsertAnime)

	return router
}

/*
GET /api/v1/anime?genres=action,drama&page=1&limit=20.

Response:
  - 200: []Anime with pagination meta
*/
func (handler *Handler) listAnime(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := ListFilter{Genres: query.StringSlice(request.URL.Query().Get("genres"))}

	items, total, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/anime/{id}.

Response:
  - 200: Anime
  - 404: Unknown id
*/
func (handler *Handler) getAnime(writer http.ResponseWriter, request *http.Request) {
	anime, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, anime)
}

/*
PUT /api/v1/anime (admin).

Response:
  - 200: Anime as persisted
  - 400: Validation failure
*/
func (handler *Handler) upsertAnime(writer http.ResponseWriter, request *http.Request) {
	var payload Anime
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	anime, err := handler.service.Upsert(request.Context(), &payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, anime)
}
