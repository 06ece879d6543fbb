// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package chapter

import "context"

// # Chapter Data Access

// Repository defines the data access contract for chapters and their
// translation overlays.
type Repository interface {

	/*
		ListByNovel returns a novel's chapters ordered by chapter number.
		Canonical content is omitted from list rows; only FindByID hydrates it.

		Parameters:
		  - context: context.Context
		  - novelID: string (Owner ID)
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Chapter: Metadata for matched chapters
		  - int: Total matching count
		  - error: Storage failures
	*/
	ListByNovel(context context.Context, novelID string, filter Filter, limit, offset int) ([]*Chapter, int, error)

	/*
		FindByID returns the fully hydrated chapter, content included.

		Returns:
		  - *Chapter: Hydrated record
		  - error: NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Chapter, error)

	/*
		Create persists a new chapter and bumps the parent novel's chapter
		counter in the same transaction. A duplicate (novelid, chapternumber)
		pair surfaces as a Conflict.
	*/
	Create(context context.Context, chapter *Chapter) error

	/*
		Update persists changes to an existing chapter.

		Returns:
		  - error: NotFound if no row matched
	*/
	Update(context context.Context, chapter *Chapter) error

	/*
		Delete removes a chapter and decrements the parent novel's chapter
		counter in the same transaction. Translation overlays cascade.
	*/
	Delete(context context.Context, id string) error

	// # Translation Overlays

	/*
		FindTranslation returns the overlay for (chapterID, languageCode),
		joined with the language's active flag.

		Returns:
		  - *Translation: The overlay row
		  - bool: Whether the overlay's language is active
		  - error: NotFound if no overlay exists
	*/
	FindTranslation(context context.Context, chapterID, languageCode string) (*Translation, bool, error)

	/*
		ListTranslations returns all overlays for a chapter ordered by
		language code. Content is omitted from list rows.
	*/
	ListTranslations(context context.Context, chapterID string) ([]*Translation, error)

	/*
		UpsertTranslation creates or replaces the overlay for the row's
		(chapterID, languageCode) pair.
	*/
	UpsertTranslation(context context.Context, t *Translation) error

	/*
		DeleteTranslation removes the overlay for (chapterID, languageCode).

		Returns:
		  - error: NotFound if no overlay exists
	*/
	DeleteTranslation(context context.Context, chapterID, languageCode string) error
}

// NovelChecker is the slice of the novel domain the chapter service needs:
// confirming a parent exists and learning its original language for
// localization.
type NovelChecker interface {
	OriginalLanguage(context context.Context, novelID string) (string, error)
}

// LanguageChecker confirms a language is active before an overlay is written.
type LanguageChecker interface {
	IsActive(context context.Context, code string) (bool, error)
}
