// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package favorite

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/manovapp/manov/internal/platform/middleware"
	requestutil "github.com/manovapp/manov/internal/platform/request"
	"github.com/manovapp/manov/internal/platform/respond"
	"github.com/manovapp/manov/pkg/pagination"
)

// Handler implements the HTTP layer for favorites. All routes require
// authentication; favorites are private to their owner.
type Handler struct {
	service *Service
}

// NewHandler constructs a new favorite [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches favorite endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Group(func(user chi.Router) {
		user.Use(middleware.RequireAuth)

		user.Get("/me/favorites", handler.listFavorites)
		user.Put("/novels/{novelID}/favorite", handler.addFavorite)
		user.Delete("/novels/{novelID}/favorite", handler.removeFavorite)
	})
}

func (handler *Handler) listFavorites(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	favorites, total, err := handler.service.ListByUser(request.Context(), userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, favorites, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) addFavorite(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	novelID := requestutil.ID(request, "novelID")

	if err := handler.service.Add(request.Context(), userID, novelID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) removeFavorite(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	novelID := requestutil.ID(request, "novelID")

	if err := handler.service.Remove(request.Context(), userID, novelID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
