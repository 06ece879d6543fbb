// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package rating

import "context"

// # Rating Data Access

// Repository defines the data access contract for ratings.
//
// Every write recomputes the parent novel's derived average in the same
// transaction as the rating mutation.
type Repository interface {

	/*
		Upsert creates the user's rating for a novel or replaces it if one
		exists, then recomputes the novel's average rating. Both statements
		run in one transaction.

		Parameters:
		  - context: context.Context
		  - r: *Rating (UserID, NovelID, Score, ReviewText set)

		Returns:
		  - error: Storage failures
	*/
	Upsert(context context.Context, r *Rating) error

	/*
		Delete removes the user's rating for a novel and recomputes the
		novel's average rating (NULL when the last rating goes). Both
		statements run in one transaction.

		Returns:
		  - error: NotFound if the user had no rating for the novel
	*/
	Delete(context context.Context, userID, novelID string) error

	/*
		ListByNovel returns a novel's ratings newest first.

		Returns:
		  - []*Rating: Page of ratings
		  - int: Total rating count for the novel
		  - error: Storage failures
	*/
	ListByNovel(context context.Context, novelID string, limit, offset int) ([]*Rating, int, error)

	/*
		FindByUser returns the rating a user gave a novel.

		Returns:
		  - *Rating: The rating row
		  - error: NotFound if the user has not rated the novel
	*/
	FindByUser(context context.Context, userID, novelID string) (*Rating, error)
}

// NovelChecker confirms the target novel exists before a rating is written.
type NovelChecker interface {
	Exists(context context.Context, novelID string) (bool, error)
}
