// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/manovapp/manov/internal/platform/apperr"
	"github.com/manovapp/manov/internal/platform/middleware"
	requestutil "github.com/manovapp/manov/internal/platform/request"
	"github.com/manovapp/manov/internal/platform/respond"
	"github.com/manovapp/manov/internal/platform/sec"
	"github.com/manovapp/manov/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for comment threads. Listing hangs off
// the target resource; mutations live under /comments.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches comment endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Public reads
	api.Get("/novels/{novelID}/comments", handler.listNovelComments)
	api.Get("/chapters/{chapterID}/comments", handler.listChapterComments)

	// Authenticated interactions
	api.Group(func(user chi.Router) {
		user.Use(middleware.RequireAuth)

		user.Post("/comments", handler.createComment)
		user.Patch("/comments/{id}", handler.editComment)
		user.Delete("/comments/{id}", handler.deleteComment)
	})
}

/*
GET /api/v1/novels/{novelID}/comments.

Description: Returns a page of top-level comments for a novel, each with
its immediate replies (oldest first). Top-level order follows the sort
query parameter (newest, oldest).
*/
func (handler *Handler) listNovelComments(writer http.ResponseWriter, request *http.Request) {
	handler.listThreads(writer, request, NovelTarget(requestutil.ID(request, "novelID")))
}

/*
GET /api/v1/chapters/{chapterID}/comments.
*/
func (handler *Handler) listChapterComments(writer http.ResponseWriter, request *http.Request) {
	handler.listThreads(writer, request, ChapterTarget(requestutil.ID(request, "chapterID")))
}

func (handler *Handler) listThreads(writer http.ResponseWriter, request *http.Request, target Target) {
	paginationParams := pagination.FromRequest(request)
	sort := request.URL.Query().Get("sort")

	threads, total, err := handler.service.ListTopLevel(request.Context(), target, sort, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, threads, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// createCommentRequest defines the inbound JSON schema for new comments.
// Exactly one of novel_id, chapter_id or parent_id must be set.
type createCommentRequest struct {
	Content   string `json:"content"`
	NovelID   string `json:"novel_id"`
	ChapterID string `json:"chapter_id"`
	ParentID  string `json:"parent_id"`
}

// target maps the loose JSON shape onto the tagged attachment type,
// rejecting ambiguous combinations at the edge.
func (input createCommentRequest) target() (Target, error) {
	set := 0
	if input.NovelID != "" {
		set++
	}
	if input.ChapterID != "" {
		set++
	}
	if input.ParentID != "" {
		set++
	}
	if set != 1 {
		return Target{}, apperr.ValidationError("Comment must target exactly one of a novel, a chapter, or a parent comment")
	}

	switch {
	case input.ParentID != "":
		return ReplyTarget(input.ParentID), nil
	case input.NovelID != "":
		return NovelTarget(input.NovelID), nil
	default:
		return ChapterTarget(input.ChapterID), nil
	}
}

/*
POST /api/v1/comments.

Description: Posts a top-level comment on a novel or chapter, or a reply
to an existing comment.

Response:
  - 201: Comment: Created node
  - 400: Validation: Empty content or ambiguous target
  - 404: NotFound: Target entity or parent comment missing
*/
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	target, err := input.target()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	c, err := handler.service.Create(request.Context(), userID, input.Content, target)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, c)
}

// editCommentRequest defines the inbound JSON schema for edits.
type editCommentRequest struct {
	Content string `json:"content"`
}

/*
PATCH /api/v1/comments/{id}.

Description: Replaces a comment's body. Author-only; admins get no
override on edit.
*/
func (handler *Handler) editComment(writer http.ResponseWriter, request *http.Request) {
	commentID := requestutil.ID(request, "id")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input editCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	c, err := handler.service.Edit(request.Context(), commentID, userID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, c)
}

/*
DELETE /api/v1/comments/{id}.

Description: Removes a comment and its reply subtree. Allowed for the
author or an admin.
*/
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	commentID := requestutil.ID(request, "id")

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	isAdmin := sec.UserRole(claims.Role).AtLeast(sec.RoleAdmin)

	if err := handler.service.Delete(request.Context(), commentID, claims.UserID, isAdmin); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
