// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package language

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/manovapp/manov/internal/platform/middleware"
	requestutil "github.com/manovapp/manov/internal/platform/request"
	"github.com/manovapp/manov/internal/platform/respond"
	"github.com/manovapp/manov/internal/platform/sec"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/languages", handler.listLanguages)
	api.Get("/languages/{code}", handler.getLanguage)

	// Admin only
	api.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/languages", handler.createLanguage)
		adminRoute.Patch("/languages/{code}", handler.updateLanguage)
		adminRoute.Post("/languages/{code}/activate", handler.activateLanguage)
		adminRoute.Post("/languages/{code}/deactivate", handler.deactivateLanguage)
	})
}

func (handler *Handler) listLanguages(writer http.ResponseWriter, request *http.Request) {
	langs, err := handler.service.ListLanguages(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, langs)
}

func (handler *Handler) getLanguage(writer http.ResponseWriter, request *http.Request) {
	code := chi.URLParam(request, "code")

	lang, err := handler.service.GetLanguage(request.Context(), code)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, lang)
}

func (handler *Handler) createLanguage(writer http.ResponseWriter, request *http.Request) {
	var input Language
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateLanguage(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateLanguage(writer http.ResponseWriter, request *http.Request) {
	code := chi.URLParam(request, "code")

	var input Language
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateLanguage(request.Context(), code, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"code": code})
}

func (handler *Handler) activateLanguage(writer http.ResponseWriter, request *http.Request) {
	handler.setActive(writer, request, true)
}

func (handler *Handler) deactivateLanguage(writer http.ResponseWriter, request *http.Request) {
	handler.setActive(writer, request, false)
}

func (handler *Handler) setActive(writer http.ResponseWriter, request *http.Request, active bool) {
	code := chi.URLParam(request, "code")

	if err := handler.service.SetActive(request.Context(), code, active); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
