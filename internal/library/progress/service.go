// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package progress

import (
	"context"
	"log/slog"

	"github.com/manovapp/manov/internal/platform/apperr"
	"github.com/manovapp/manov/internal/platform/validate"
)

// # Service Layer

// Service orchestrates the business logic for reading progress.
type Service struct {
	repo     Repository
	chapters ChapterChecker
	logger   *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, chapters ChapterChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		chapters: chapters,
		logger:   logger,
	}
}

/*
Record stores the user's last-read chapter for a novel.

Description: The chapter is resolved to its owning novel; a chapter that
belongs to a different novel is a validation failure, a missing chapter
is NotFound. Re-reporting replaces the previous position.

Returns:
  - *Progress: The stored position
  - error: Validation, NotFound (chapter), storage errors
*/
func (service *Service) Record(context context.Context, userID, novelID, chapterID string) (*Progress, error) {
	validator := &validate.Validator{}
	validator.Required(FieldNovelID, novelID)
	validator.Required(FieldChapterID, chapterID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	owner, err := service.chapters.NovelOf(context, chapterID)
	if err != nil {
		return nil, err
	}
	if owner != novelID {
		return nil, apperr.ValidationError("Chapter does not belong to the given novel")
	}

	p := &Progress{UserID: userID, NovelID: novelID, ChapterID: chapterID}
	if err := service.repo.Upsert(context, p); err != nil {
		return nil, err
	}

	service.logger.Info("reading_progress_recorded",
		slog.String("user_id", userID),
		slog.String("novel_id", novelID),
		slog.String("chapter_id", chapterID),
	)

	return p, nil
}

/*
Get returns the user's position in a novel.

Returns:
  - *Progress: The position row
  - error: NotFound if the user has no recorded progress
*/
func (service *Service) Get(context context.Context, userID, novelID string) (*Progress, error) {
	return service.repo.Find(context, userID, novelID)
}

/*
ListByUser returns a user's positions, most recently updated first.
*/
func (service *Service) ListByUser(context context.Context, userID string, limit, offset int) ([]*Progress, int, error) {
	return service.repo.ListByUser(context, userID, limit, offset)
}

/*
Clear removes the user's position in a novel.
*/
func (service *Service) Clear(context context.Context, userID, novelID string) error {
	if err := service.repo.Delete(context, userID, novelID); err != nil {
		return err
	}

	service.logger.Info("reading_progress_cleared",
		slog.String("user_id", userID),
		slog.String("novel_id", novelID),
	)
	return nil
}
