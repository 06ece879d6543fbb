// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package favorite

import "context"

// # Favorite Data Access

// Repository defines the data access contract for favorites.
type Repository interface {

	/*
		Add bookmarks a novel for a user. Adding an existing bookmark is a
		no-op (ON CONFLICT DO NOTHING).
	*/
	Add(context context.Context, userID, novelID string) error

	/*
		Remove deletes a bookmark.

		Returns:
		  - error: NotFound if the bookmark did not exist
	*/
	Remove(context context.Context, userID, novelID string) error

	/*
		ListByUser returns a user's bookmarks newest first.

		Returns:
		  - []*Favorite: Page of bookmarks
		  - int: Total bookmark count for the user
	*/
	ListByUser(context context.Context, userID string, limit, offset int) ([]*Favorite, int, error)
}

// NovelChecker confirms the target novel exists before a bookmark is written.
type NovelChecker interface {
	Exists(context context.Context, novelID string) (bool, error)
}
