// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package rating

import (
	"context"
	"log/slog"

	"github.com/manovapp/manov/internal/platform/apperr"
	"github.com/manovapp/manov/internal/platform/validate"
	"github.com/manovapp/manov/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the business logic for ratings.
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
Upsert records or replaces the user's rating for a novel.

Description: A user re-rating a novel replaces the previous score rather
than stacking a second row; the operation is idempotent for identical
input. The novel's derived average is recomputed by the store inside the
same transaction as the write.

Parameters:
  - context: context.Context
  - userID: string (Actor)
  - novelID: string (Target)
  - score: int (inclusive 1..5)
  - reviewText: *string (optional free-form review)

Returns:
  - *Rating: The stored rating row
  - error: Validation (score out of range), NotFound (novel), storage errors
*/
func (service *Service) Upsert(context context.Context, userID, novelID string, score int, reviewText *string) (*Rating, error) {

	validator := &validate.Validator{}
	validator.Required(FieldNovelID, novelID)
	validator.Custom(FieldScore, score < MinScore || score > MaxScore, "Score must be between 1 and 5")
	if reviewText != nil {
		validator.MaxLen(FieldReview, *reviewText, 5000)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	exists, err := service.novels.Exists(context, novelID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Novel")
	}

	r := &Rating{
		ID:         uuidv7.New(),
		UserID:     userID,
		NovelID:    novelID,
		Score:      score,
		ReviewText: reviewText,
	}
	if err := service.repo.Upsert(context, r); err != nil {
		return nil, err
	}

	service.logger.Info("rating_upserted",
		slog.String("novel_id", novelID),
		slog.String("user_id", userID),
		slog.Int("score", score),
	)

	return r, nil
}

/*
Remove deletes the user's rating for a novel.

Description: The derived average is recomputed in the same transaction and
falls back to NULL when the last rating for the novel disappears.

Returns:
  - error: NotFound if the user never rated the novel
*/
func (service *Service) Remove(context context.Context, userID, novelID string) error {
	if err := service.repo.Delete(context, userID, novelID); err != nil {
		return err
	}

	service.logger.Info("rating_removed",
		slog.String("novel_id", novelID),
		slog.String("user_id", userID),
	)
	return nil
}

/*
ListByNovel returns a paginated page of a novel's ratings, newest first.
*/
func (service *Service) ListByNovel(context context.Context, novelID string, limit, offset int) ([]*Rating, int, error) {
	exists, err := service.novels.Exists(context, novelID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, apperr.NotFound("Novel")
	}
	return service.repo.ListByNovel(context, novelID, limit, offset)
}

/*
GetUserRating returns the rating the user gave a novel.

Returns:
  - *Rating: The rating row
  - error: NotFound if the user has not rated the novel
*/
func (service *Service) GetUserRating(context context.Context, userID, novelID string) (*Rating, error) {
	return service.repo.FindByUser(context, userID, novelID)
}
