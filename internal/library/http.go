// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/animetrack/internal/achievement"
	requestutil "github.com/taibuivan/animetrack/internal/platform/request"
	"github.com/taibuivan/animetrack/internal/platform/respond"
	"github.com/taibuivan/animetrack/internal/platform/validate"
	"github.com/taibuivan/animetrack/pkg/convert"
)

// Achievement views accepted by GET /achievements.
const (
	viewAll        = "all"
	viewUnlocked   = "unlocked"
	viewInProgress = "in_progress"
	viewNext       = "next"
)

// Handler implements the HTTP layer for the signed-in user's library.
type Handler struct {
	service *Service
}

// NewHandler constructs a new library [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the /me endpoints. Mount it behind authentication.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Route("/lists", func(router chi.Router) {
		router.Get("/", handler.getLists)
		router.Post("/", handler.addToList)
		router.Get("/status/{animeID}", handler.getStatus)
		router.Patch("/{id}", handler.updateMembership)
		router.Delete("/{id}", handler.removeMembership)
	})

	router.Route("/favorites", func(router chi.Router) {
		router.Get("/", handler.getFavorites)
		router.Get("/{animeID}", handler.isFavorite)
		router.Put("/{animeID}", handler.addFavorite)
		router.Delete("/{animeID}", handler.removeFavorite)
	})

	router.Get("/achievements", handler.getAchievements)

	return router
}

// session builds the library session of the request.
func session(request *http.Request) Session {
	return SessionFromClaims(requestutil.Claims(request))
}

// # Lists

type listsResponse struct {
	Lists  Snapshot `json:"lists"`
	Counts Counts   `json:"counts"`
}

/*
GET /api/v1/me/lists.

Response:
  - 200: Every bucket with its count
*/
func (handler *Handler) getLists(writer http.ResponseWriter, request *http.Request) {
	lists := handler.service.Lists(session(request))
	if err := lists.Fetch(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, listsResponse{Lists: lists.Snapshot(), Counts: lists.Counts()})
}

/*
GET /api/v1/me/lists/status/{animeID}.

Response:
  - 200: Status, with in_list false when the title is in no list
*/
func (handler *Handler) getStatus(writer http.ResponseWriter, request *http.Request) {
	lists := handler.service.Lists(session(request))
	if err := lists.Fetch(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, lists.Status(requestutil.Param(request, "animeID")))
}

/*
POST /api/v1/me/lists.

Request: AddInput.

Response:
  - 200: The resulting membership
  - 400: Validation failure
*/
func (handler *Handler) addToList(writer http.ResponseWriter, request *http.Request) {
	var input AddInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	membership, err := handler.service.Lists(session(request)).Add(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, membership)
}

/*
PATCH /api/v1/me/lists/{id}.

Response:
  - 200: The updated membership
  - 404: Unknown membership
*/
func (handler *Handler) updateMembership(writer http.ResponseWriter, request *http.Request) {
	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	membership, err := handler.service.Lists(session(request)).Update(request.Context(), requestutil.ID(request, "id"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, membership)
}

/*
DELETE /api/v1/me/lists/{id}.

Response:
  - 204: Removed, or never existed
*/
func (handler *Handler) removeMembership(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Lists(session(request)).Remove(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Favorites

type favoriteStatus struct {
	AnimeID  string `json:"anime_id"`
	Favorite bool   `json:"favorite"`
}

/*
GET /api/v1/me/favorites.
*/
func (handler *Handler) getFavorites(writer http.ResponseWriter, request *http.Request) {
	favorites := handler.service.Favorites(session(request))
	if err := favorites.Fetch(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, favorites.List())
}

/*
GET /api/v1/me/favorites/{animeID}.
*/
func (handler *Handler) isFavorite(writer http.ResponseWriter, request *http.Request) {
	favorites := handler.service.Favorites(session(request))
	if err := favorites.Fetch(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	animeID := requestutil.Param(request, "animeID")
	respond.OK(writer, favoriteStatus{AnimeID: animeID, Favorite: favorites.IsFavorite(animeID)})
}

/*
PUT /api/v1/me/favorites/{animeID}. Idempotent.
*/
func (handler *Handler) addFavorite(writer http.ResponseWriter, request *http.Request) {
	favorite, err := handler.service.Favorites(session(request)).Add(request.Context(), requestutil.Param(request, "animeID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, favorite)
}

/*
DELETE /api/v1/me/favorites/{animeID}. Idempotent.
*/
func (handler *Handler) removeFavorite(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Favorites(session(request)).Remove(request.Context(), requestutil.Param(request, "animeID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Achievements

/*
GET /api/v1/me/achievements?view=all|unlocked|in_progress|next&limit=3.

Response:
  - 200: []Achievement for the requested view
  - 400: Unknown view
*/
func (handler *Handler) getAchievements(writer http.ResponseWriter, request *http.Request) {
	view := request.URL.Query().Get("view")
	if view == "" {
		view = viewAll
	}

	validator := &validate.Validator{}
	if err := validator.OneOf("view", view, viewAll, viewUnlocked, viewInProgress, viewNext).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	set, err := handler.service.Achievements(request.Context(), session(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, selectView(set, view, convert.ToIntD(request.URL.Query().Get("limit"), achievement.DefaultNext)))
}

func selectView(set achievement.Set, view string, limit int) achievement.Set {
	switch view {
	case viewUnlocked:
		return set.Unlocked()
	case viewInProgress:
		return set.InProgress()
	case viewNext:
		return set.Next(limit)
	default:
		return set
	}
}
