// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package chapter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/manovapp/manov/internal/core/localize"
	"github.com/manovapp/manov/internal/platform/apperr"
	"github.com/manovapp/manov/internal/platform/validate"
	"github.com/manovapp/manov/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the business logic for chapters.
type Service struct {
	repo      Repository
	novels    NovelChecker
	languages LanguageChecker
	logger    *slog.Logger
}

// NewService constructs a new [Service] with its required collaborators.
func NewService(repo Repository, novels NovelChecker, languages LanguageChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		novels:    novels,
		languages: languages,
		logger:    logger,
	}
}

// # Chapter Operations

/*
ListChapters retrieves a paginated chapter roster for a novel.

Parameters:
  - context: context.Context
  - novelID: string (Owner ID)
  - filter: Filter (publication and sorting options)
  - limit: int
  - offset: int

Returns:
  - []*Chapter: Metadata for matched chapters (content omitted)
  - int: Total chapter count for the given novel/filter
  - error: NotFound if the novel does not exist, or storage errors
*/
func (service *Service) ListChapters(context context.Context, novelID string, filter Filter, limit, offset int) ([]*Chapter, int, error) {
	if _, err := service.novels.OriginalLanguage(context, novelID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListByNovel(context, novelID, filter, limit, offset)
}

/*
GetChapter retrieves a single chapter with its canonical content.

Returns:
  - *Chapter: The hydrated domain entity
  - error: NotFound if missing
*/
func (service *Service) GetChapter(context context.Context, id string) (*Chapter, error) {
	return service.repo.FindByID(context, id)
}

// Exists reports whether a chapter exists. It backs the narrow checker
// interfaces other domains declare against this service.
func (service *Service) Exists(context context.Context, chapterID string) (bool, error) {
	_, err := service.repo.FindByID(context, chapterID)
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.Code == "NOT_FOUND" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// NovelOf resolves a chapter to its owning novel's ID.
func (service *Service) NovelOf(context context.Context, chapterID string) (string, error) {
	c, err := service.repo.FindByID(context, chapterID)
	if err != nil {
		return "", err
	}
	return c.NovelID, nil
}

// LocalizedChapter pairs the canonical record with the language variant
// selected for the caller's requested locale.
type LocalizedChapter struct {
	*Chapter
	Localized localize.Localized `json:"localized"`
}

/*
GetLocalizedChapter fetches a chapter and resolves the language variant to
serve.

Description: The original language lives on the parent novel, so resolution
needs one extra lookup there. Chapters carry no site-default translated
pair; the fallback chain goes straight from overlay to canonical.

Parameters:
  - context: context.Context
  - id: string (Chapter UUID)
  - locale: string (requested language code, empty for no preference)

Returns:
  - *LocalizedChapter: Canonical record plus the resolved projection
  - error: NotFound if the chapter does not exist
*/
func (service *Service) GetLocalizedChapter(context context.Context, id, locale string) (*LocalizedChapter, error) {
	chapter, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	originalLanguage, err := service.novels.OriginalLanguage(context, chapter.NovelID)
	if err != nil {
		return nil, err
	}

	var overlay *localize.Overlay
	if locale != "" && locale != originalLanguage {
		translation, active, err := service.repo.FindTranslation(context, id, locale)
		if err != nil {
			if appError := apperr.As(err); appError == nil || appError.Code != "NOT_FOUND" {
				return nil, err
			}
		} else {
			overlay = &localize.Overlay{
				Title:  translation.Title,
				Body:   translation.Content,
				Locale: translation.LanguageCode,
				Active: active,
			}
		}
	}

	resolved := localize.Resolve(
		localize.Canonical{Title: chapter.Title, Body: chapter.Content, Language: originalLanguage},
		nil,
		overlay,
		locale,
		"",
	)

	return &LocalizedChapter{Chapter: chapter, Localized: resolved}, nil
}

// # Chapter Management

/*
CreateChapter initialises a new chapter entry.

Description: Verifies the parent novel, applies sanity checks on numbering
and content, derives word count and reading time from the canonical text,
then persists. A duplicate chapter number within the novel is a Conflict
raised by the store's unique constraint.

Returns:
  - error: Validation, NotFound (novel), Conflict or persistence errors
*/
func (service *Service) CreateChapter(context context.Context, chapter *Chapter) error {

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Required(FieldNovelID, chapter.NovelID)
	validator.Required(FieldContent, chapter.Content)
	validator.MaxLen(FieldTitle, chapter.Title, 255)

	// Negative chapter numbers are logically invalid for serialisation
	validator.Custom(FieldNumber, chapter.Number < 0, "Chapter number cannot be negative")

	if chapter.SourceURL != nil {
		validator.URL(FieldSourceURL, *chapter.SourceURL)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	// Parent existence check
	if _, err := service.novels.OriginalLanguage(context, chapter.NovelID); err != nil {
		return err
	}

	// Identity & derived metrics
	if chapter.ID == "" {
		chapter.ID = uuidv7.New()
	}
	chapter.WordCount = countWords(chapter.Content)
	chapter.ReadingTime = readingMinutes(chapter.WordCount)

	if chapter.IsPublished && chapter.PublishedAt == nil {
		now := time.Now().UTC()
		chapter.PublishedAt = &now
	}

	// Storage persistence
	if err := service.repo.Create(context, chapter); err != nil {
		return err
	}

	service.logger.Info("chapter_created",
		slog.String("chapter_id", chapter.ID),
		slog.String("novel_id", chapter.NovelID),
		slog.Float64("number", chapter.Number),
	)

	return nil
}

/*
UpdateChapter applies modifications to an existing chapter.

Description: Partial update semantics; a changed canonical content
re-derives word count and reading time.
*/
func (service *Service) UpdateChapter(context context.Context, id string, input *Chapter) error {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	validator := &validate.Validator{}
	if input.Title != "" {
		validator.MaxLen(FieldTitle, input.Title, 255)
		current.Title = input.Title
	}
	if input.Content != "" {
		current.Content = input.Content
		current.WordCount = countWords(input.Content)
		current.ReadingTime = readingMinutes(current.WordCount)
	}
	if input.Number > 0 && input.Number != current.Number {
		current.Number = input.Number
	}
	if input.TranslatorNotes != nil {
		current.TranslatorNotes = input.TranslatorNotes
	}
	if input.SourceURL != nil {
		validator.URL(FieldSourceURL, *input.SourceURL)
		current.SourceURL = input.SourceURL
	}
	if err := validator.Err(); err != nil {
		return err
	}

	// Publication transition stamps the timestamp once.
	if input.IsPublished && !current.IsPublished {
		current.IsPublished = true
		if current.PublishedAt == nil {
			now := time.Now().UTC()
			current.PublishedAt = &now
		}
	}

	if err := service.repo.Update(context, current); err != nil {
		return err
	}

	service.logger.Info("chapter_updated", slog.String("chapter_id", id))
	return nil
}

/*
DeleteChapter permanently removes a chapter and its translation overlays.
*/
func (service *Service) DeleteChapter(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("chapter_deleted", slog.String("chapter_id", id))
	return nil
}

// # Translation Overlays

/*
ListTranslations returns all overlays for a chapter.
*/
func (service *Service) ListTranslations(context context.Context, chapterID string) ([]*Translation, error) {
	if _, err := service.repo.FindByID(context, chapterID); err != nil {
		return nil, err
	}
	return service.repo.ListTranslations(context, chapterID)
}

/*
UpsertTranslation creates or replaces the overlay for a (chapter, locale)
pair. The language must exist and be active at write time.
*/
func (service *Service) UpsertTranslation(context context.Context, t *Translation) error {
	validator := &validate.Validator{}
	validator.Required(FieldLanguageCode, t.LanguageCode)
	validator.Required(FieldContent, t.Content)
	if t.Title != nil {
		validator.MaxLen(FieldTitle, *t.Title, 255)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if _, err := service.repo.FindByID(context, t.ChapterID); err != nil {
		return err
	}

	active, err := service.languages.IsActive(context, t.LanguageCode)
	if err != nil {
		return err
	}
	if !active {
		return apperr.ValidationError(fmt.Sprintf("Language '%s' is not active", t.LanguageCode))
	}

	if t.ID == "" {
		t.ID = uuidv7.New()
	}
	if err := service.repo.UpsertTranslation(context, t); err != nil {
		return err
	}

	service.logger.Info("chapter_translation_upserted",
		slog.String("chapter_id", t.ChapterID),
		slog.String("language_code", t.LanguageCode),
	)
	return nil
}

/*
DeleteTranslation removes the overlay for a (chapter, locale) pair.
*/
func (service *Service) DeleteTranslation(context context.Context, chapterID, languageCode string) error {
	if err := service.repo.DeleteTranslation(context, chapterID, languageCode); err != nil {
		return err
	}

	service.logger.Info("chapter_translation_deleted",
		slog.String("chapter_id", chapterID),
		slog.String("language_code", languageCode),
	)
	return nil
}

// # Internal Helpers

// countWords counts whitespace-separated tokens in the canonical content.
func countWords(content string) int {
	return len(strings.Fields(content))
}

// readingMinutes estimates reading time, rounding up with a one minute floor.
func readingMinutes(wordCount int) int {
	if wordCount == 0 {
		return 0
	}
	minutes := (wordCount + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
