// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package novel

import "context"

// # Novel Data Access

// Repository defines the data access contract for novels and their
// translation overlays.
type Repository interface {

	/*
		List returns a filtered, paginated slice of novels.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Novel: Matching records
		  - int: Total matching count (for pagination metadata)
		  - error: Storage failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Novel, int, error)

	/*
		FindByID returns the novel with the given ID.

		Returns:
		  - *Novel: Hydrated record
		  - error: NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Novel, error)

	/*
		FindBySlug returns the novel with the given URL slug.

		Returns:
		  - *Novel: Hydrated record
		  - error: NotFound if missing
	*/
	FindBySlug(context context.Context, slug string) (*Novel, error)

	/*
		SlugExists reports whether a novel other than excludeID already holds
		the given slug. excludeID may be empty on creation.
	*/
	SlugExists(context context.Context, slug, excludeID string) (bool, error)

	/*
		Create persists a new novel. A unique-constraint violation on the slug
		column is surfaced unwrapped so the service can run its bounded
		regenerate-and-retry loop.
	*/
	Create(context context.Context, n *Novel) error

	/*
		Update persists changes to an existing novel.

		Returns:
		  - error: NotFound if no row matched
	*/
	Update(context context.Context, n *Novel) error

	/*
		Delete removes a novel. Chapters, translations, ratings, comments,
		favorites and progress rows cascade at the store level.
	*/
	Delete(context context.Context, id string) error

	// # Translation Overlays

	/*
		FindTranslation returns the overlay for (novelID, languageCode),
		joined with the language's active flag.

		Returns:
		  - *Translation: The overlay row
		  - bool: Whether the overlay's language is active
		  - error: NotFound if no overlay exists
	*/
	FindTranslation(context context.Context, novelID, languageCode string) (*Translation, bool, error)

	/*
		ListTranslations returns all overlays for a novel ordered by language code.
	*/
	ListTranslations(context context.Context, novelID string) ([]*Translation, error)

	/*
		UpsertTranslation creates or replaces the overlay for the row's
		(novelID, languageCode) pair.
	*/
	UpsertTranslation(context context.Context, t *Translation) error

	/*
		DeleteTranslation removes the overlay for (novelID, languageCode).

		Returns:
		  - error: NotFound if no overlay exists
	*/
	DeleteTranslation(context context.Context, novelID, languageCode string) error
}

// LanguageChecker is the slice of the language domain the novel service
// needs: write paths must confirm a referenced language exists and is active.
type LanguageChecker interface {
	IsActive(context context.Context, code string) (bool, error)
}

// AuthorChecker confirms an author reference before a novel is persisted.
type AuthorChecker interface {
	Exists(context context.Context, id string) (bool, error)
}
