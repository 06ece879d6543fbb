// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package chapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/manovapp/manov/internal/platform/middleware"
	requestutil "github.com/manovapp/manov/internal/platform/request"
	"github.com/manovapp/manov/internal/platform/respond"
	"github.com/manovapp/manov/internal/platform/sec"
	"github.com/manovapp/manov/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for chapter management. Chapter
// endpoints span both /novels/{novelID}/chapters and /chapters/{id}
// prefixes, so routes attach to the API root rather than a sub-router.
type Handler struct {
	service *Service
	locales requestutil.LocaleSource
}

// NewHandler constructs a new chapter [Handler].
func NewHandler(service *Service, locales requestutil.LocaleSource) *Handler {
	return &Handler{service: service, locales: locales}
}

// RegisterRoutes attaches chapter endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Discovery endpoints
	api.Get("/novels/{novelID}/chapters", handler.listChapters)
	api.Get("/chapters/{id}", handler.getChapter)
	api.Get("/chapters/{id}/translations", handler.listTranslations)

	// Translator protected endpoints
	api.Group(func(staff chi.Router) {
		staff.Use(middleware.RequireRole(sec.RoleTranslator))

		staff.Post("/novels/{novelID}/chapters", handler.createChapter)
		staff.Patch("/chapters/{id}", handler.updateChapter)
		staff.Delete("/chapters/{id}", handler.deleteChapter)
		staff.Put("/chapters/{id}/translations/{lang}", handler.upsertTranslation)
		staff.Delete("/chapters/{id}/translations/{lang}", handler.deleteTranslation)
	})
}

/*
GET /api/v1/novels/{novelID}/chapters.

Description: Returns a paginated roster of chapters for a novel. Content
bodies are omitted; fetch a single chapter for the text.

Request:
  - novelID: string (UUID)
  - published: string ("false" to include drafts)
  - dir: string (asc, desc)
  - limit: int
  - page: int

Response:
  - 200: []Chapter: Paginated list
  - 404: NotFound: Novel not found
*/
func (handler *Handler) listChapters(writer http.ResponseWriter, request *http.Request) {
	novelID := requestutil.ID(request, "novelID")
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		OnlyPublished: request.URL.Query().Get("published") != "false",
		SortDir:       request.URL.Query().Get("dir"),
	}

	chapters, total, err := handler.service.ListChapters(request.Context(), novelID, filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, chapters, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// getChapter serves a chapter with its content, localized for the locale
// query parameter, or for the authenticated reader's stored preference
// when the query carries none.
func (handler *Handler) getChapter(writer http.ResponseWriter, request *http.Request) {
	chapterID := requestutil.ID(request, "id")
	locale := requestutil.Locale(request, handler.locales)

	localized, err := handler.service.GetLocalizedChapter(request.Context(), chapterID, locale)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, localized)
}

func (handler *Handler) createChapter(writer http.ResponseWriter, request *http.Request) {
	var input Chapter
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.NovelID = requestutil.ID(request, "novelID")

	if err := handler.service.CreateChapter(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateChapter(writer http.ResponseWriter, request *http.Request) {
	chapterID := requestutil.ID(request, "id")

	var input Chapter
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateChapter(request.Context(), chapterID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"id": chapterID})
}

func (handler *Handler) deleteChapter(writer http.ResponseWriter, request *http.Request) {
	chapterID := requestutil.ID(request, "id")

	if err := handler.service.DeleteChapter(request.Context(), chapterID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) listTranslations(writer http.ResponseWriter, request *http.Request) {
	chapterID := requestutil.ID(request, "id")

	translations, err := handler.service.ListTranslations(request.Context(), chapterID)
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
	input.ChapterID = requestutil.ID(request, "id")
	input.LanguageCode = requestutil.ID(request, "lang")

	if err := handler.service.UpsertTranslation(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteTranslation(writer http.ResponseWriter, request *http.Request) {
	chapterID := requestutil.ID(request, "id")
	lang := requestutil.ID(request, "lang")

	if err := handler.service.DeleteTranslation(request.Context(), chapterID, lang); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
