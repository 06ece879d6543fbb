// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package favorite

import (
	"context"
	"log/slog"

	"github.com/manovapp/manov/internal/platform/apperr"
)

// # Service Layer

// Service orchestrates the business logic for favorites.
type Service struct {
	repo   Repository
	novels NovelChecker
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, novels NovelChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		novels: novels,
		logger: logger,
	}
}

/*
Add bookmarks a novel for a user. Idempotent.

Returns:
  - error: NotFound (novel), storage errors
*/
func (service *Service) Add(context context.Context, userID, novelID string) error {
	exists, err := service.novels.Exists(context, novelID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Novel")
	}

	if err := service.repo.Add(context, userID, novelID); err != nil {
		return err
	}

	service.logger.Info("favorite_added",
		slog.String("user_id", userID),
		slog.String("novel_id", novelID),
	)
	return nil
}

/*
Remove deletes a bookmark.

Returns:
  - error: NotFound if the bookmark did not exist
*/
func (service *Service) Remove(context context.Context, userID, novelID string) error {
	if err := service.repo.Remove(context, userID, novelID); err != nil {
		return err
	}

	service.logger.Info("favorite_removed",
		slog.String("user_id", userID),
		slog.String("novel_id", novelID),
	)
	return nil
}

/*
ListByUser returns a user's bookmarks newest first.
*/
func (service *Service) ListByUser(context context.Context, userID string, limit, offset int) ([]*Favorite, int, error) {
	return service.repo.ListByUser(context, userID, limit, offset)
}
