// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package rating

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/manovapp/manov/internal/platform/middleware"
	requestutil "github.com/manovapp/manov/internal/platform/request"
	"github.com/manovapp/manov/internal/platform/respond"
	"github.com/manovapp/manov/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for ratings. Routes hang off the
// novel resource, so they attach to the API root.
type Handler struct {
	service *Service
}

// NewHandler constructs a new rating [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches rating endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Public reads
	api.Get("/novels/{novelID}/ratings", handler.listRatings)

	// Authenticated interactions
	api.Group(func(user chi.Router) {
		user.Use(middleware.RequireAuth)

		user.Get("/novels/{novelID}/ratings/me", handler.getOwnRating)
		user.Put("/novels/{novelID}/ratings", handler.upsertRating)
		user.Delete("/novels/{novelID}/ratings", handler.removeRating)
	})
}

/*
GET /api/v1/novels/{novelID}/ratings.

Description: Returns a paginated page of a novel's ratings, newest first.
*/
func (handler *Handler) listRatings(writer http.ResponseWriter, request *http.Request) {
	novelID := requestutil.ID(request, "novelID")
	paginationParams := pagination.FromRequest(request)

	ratings, total, err := handler.service.ListByNovel(request.Context(), novelID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, ratings, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// getOwnRating returns the calling user's rating for the novel.
func (handler *Handler) getOwnRating(writer http.ResponseWriter, request *http.Request) {
	novelID := requestutil.ID(request, "novelID")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	r, err := handler.service.GetUserRating(request.Context(), userID, novelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, r)
}

// upsertRatingRequest defines the inbound JSON schema for rating writes.
type upsertRatingRequest struct {
	Score      int     `json:"score"`
	ReviewText *string `json:"review_text"`
}

/*
PUT /api/v1/novels/{novelID}/ratings.

Description: Records or replaces the calling user's rating for a novel.
Re-submitting replaces the previous score; it never creates a second row.
*/
func (handler *Handler) upsertRating(writer http.ResponseWriter, request *http.Request) {
	novelID := requestutil.ID(request, "novelID")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input upsertRatingRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	r, err := handler.service.Upsert(request.Context(), userID, novelID, input.Score, input.ReviewText)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, r)
}

/*
DELETE /api/v1/novels/{novelID}/ratings.

Description: Removes the calling user's rating. The novel's average is
recomputed (or cleared) in the same transaction.
*/
func (handler *Handler) removeRating(writer http.ResponseWriter, request *http.Request) {
	novelID := requestutil.ID(request, "novelID")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Remove(request.Context(), userID, novelID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
