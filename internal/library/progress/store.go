// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package progress

import "context"

// # Reading Progress Data Access

// Repository defines the data access contract for reading progress.
type Repository interface {

	/*
		Upsert records the user's last-read chapter for a novel, replacing
		any previous position (ON CONFLICT on the (userid, novelid) pair).
	*/
	Upsert(context context.Context, p *Progress) error

	/*
		Find returns the user's position in a novel.

		Returns:
		  - *Progress: The position row
		  - error: NotFound if the user has no recorded progress
	*/
	Find(context context.Context, userID, novelID string) (*Progress, error)

	/*
		ListByUser returns all of a user's positions, most recently updated
		first.

		Returns:
		  - []*Progress: Page of positions
		  - int: Total position count for the user
	*/
	ListByUser(context context.Context, userID string, limit, offset int) ([]*Progress, int, error)

	/*
		Delete removes the user's position in a novel.

		Returns:
		  - error: NotFound if no position existed
	*/
	Delete(context context.Context, userID, novelID string) error
}

// ChapterChecker resolves a chapter to its owning novel so progress
// reports cannot point a novel at a foreign chapter.
type ChapterChecker interface {
	NovelOf(context context.Context, chapterID string) (string, error)
}
