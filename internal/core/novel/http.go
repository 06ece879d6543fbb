// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package novel

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/manovapp/manov/internal/platform/middleware"
	requestutil "github.com/manovapp/manov/internal/platform/request"
	"github.com/manovapp/manov/internal/platform/respond"
	"github.com/manovapp/manov/internal/platform/sec"
	"github.com/manovapp/manov/pkg/pagination"
)

type Handler struct {
	service *Service
	locales requestutil.LocaleSource
}

func NewHandler(service *Service, locales requestutil.LocaleSource) *Handler {
	return &Handler{service: service, locales: locales}
}

// RegisterRoutes attaches novel endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Public
	api.Get("/novels", handler.listNovels)
	api.Get("/novels/{id}", handler.getNovel)
	api.Get("/novels/{id}/translations", handler.listTranslations)

	// Translator/Mod Only
	api.Group(func(staffRoute chi.Router) {
		staffRoute.Use(middleware.RequireRole(sec.RoleTranslator))

		staffRoute.Post("/novels", handler.createNovel)
		staffRoute.Patch("/novels/{id}", handler.updateNovel)
		staffRoute.Put("/novels/{id}/translations/{lang}", handler.upsertTranslation)
		staffRoute.Delete("/novels/{id}/translations/{lang}", handler.deleteTranslation)

		// Admin strict only
		staffRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/novels/{id}", handler.deleteNovel)
	})
}

func (handler *Handler) listNovels(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		AuthorID:          queryParams.Get("author_id"),
		OriginalLanguage:  queryParams.Get("original_language"),
		PublicationStatus: queryParams.Get("status"),
		OnlyActive:        queryParams.Get("include_inactive") != "true",
	}

	novels, total, err := handler.service.ListNovels(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, novels, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// getNovel serves a novel by UUID or slug, localized for the locale query
// parameter, or for the authenticated reader's stored preference when the
// query carries none.
func (handler *Handler) getNovel(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.ID(request, "id")
	locale := requestutil.Locale(request, handler.locales)

	localized, err := handler.service.GetLocalizedNovel(request.Context(), identifier, locale)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, localized)
}

func (handler *Handler) createNovel(writer http.ResponseWriter, request *http.Request) {
	var input Novel
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateNovel(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateNovel(writer http.ResponseWriter, request *http.Request) {
	novelID := requestutil.ID(request, "id")

	var input Novel
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateNovel(request.Context(), novelID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"id": novelID})
}

func (handler *Handler) deleteNovel(writer http.ResponseWriter, request *http.Request) {
	novelID := requestutil.ID(request, "id")

	if err := handler.service.DeleteNovel(request.Context(), novelID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) listTranslations(writer http.ResponseWriter, request *http.Request) {
	novelID := requestutil.ID(request, "id")

	translations, err := handler.service.ListTranslations(request.Context(), novelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, translations)
}

func (handler *Handler) upsertTranslation(writer http.ResponseWriter, request *http.Request) {
	var input Translation
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.NovelID = requestutil.ID(request, "id")
	input.LanguageCode = requestutil.ID(request, "lang")

	if err := handler.service.UpsertTranslation(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteTranslation(writer http.ResponseWriter, request *http.Request) {
	novelID := requestutil.ID(request, "id")
	lang := requestutil.ID(request, "lang")

	if err := handler.service.DeleteTranslation(request.Context(), novelID, lang); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
