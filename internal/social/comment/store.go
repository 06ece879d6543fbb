// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package comment

import "context"

// # Comment Data Access

// Repository defines the data access contract for comment threads.
type Repository interface {

	/*
		Create persists a new comment node.

		Parameters:
		  - context: context.Context
		  - c: *Comment (fully hydrated, context fields already derived)

		Returns:
		  - error: Storage failures
	*/
	Create(context context.Context, c *Comment) error

	/*
		FindByID returns the comment with the given ID.

		Returns:
		  - *Comment: The node
		  - error: NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Comment, error)

	/*
		Update persists an edited body and the edited flag.

		Returns:
		  - error: NotFound if no row matched
	*/
	Update(context context.Context, c *Comment) error

	/*
		DeleteSubtree removes a comment and every descendant reply as one
		atomic operation.

		Returns:
		  - int64: Number of rows removed (node plus descendants)
		  - error: Storage failures; a zero count is reported as NotFound
	*/
	DeleteSubtree(context context.Context, id string) (int64, error)

	/*
		ListTopLevel returns a page of top-level comments for a novel or
		chapter target, plus the total top-level count.

		Parameters:
		  - context: context.Context
		  - target: Target (novel or chapter; never a reply target)
		  - sort: string (SortNewest or SortOldest)
		  - limit: int
		  - offset: int
	*/
	ListTopLevel(context context.Context, target Target, sort string, limit, offset int) ([]*Comment, int, error)

	/*
		ListReplies returns the immediate replies for a set of parent
		comments, oldest first, keyed by parent ID.
	*/
	ListReplies(context context.Context, parentIDs []string) (map[string][]*Comment, error)
}

// NovelChecker confirms a novel exists before a top-level comment attaches
// to it.
type NovelChecker interface {
	Exists(context context.Context, novelID string) (bool, error)
}

// ChapterChecker confirms a chapter exists before a top-level comment
// attaches to it.
type ChapterChecker interface {
	Exists(context context.Context, chapterID string) (bool, error)
}
