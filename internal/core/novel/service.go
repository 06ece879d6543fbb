// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package novel

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/manovapp/manov/internal/core/localize"
	"github.com/manovapp/manov/internal/platform/apperr"
	"github.com/manovapp/manov/internal/platform/dberr"
	"github.com/manovapp/manov/internal/platform/validate"
	"github.com/manovapp/manov/pkg/slug"
	"github.com/manovapp/manov/pkg/uuidv7"
)

const (
	// maxSlugProbes bounds the suffix search so a pathological title cannot
	// spin the probe loop forever.
	maxSlugProbes = 1000

	// maxSlugRetries bounds how many times a create is retried after the
	// slug unique constraint fires under concurrent creation.
	maxSlugRetries = 3

	// slugConstraint is the unique index backing catalog.novel.slug.
	slugConstraint = "novel_slug_key"
)

// # Service Layer

// Service orchestrates the business logic for the novel catalogue.
type Service struct {
	repo                 Repository
	languages            LanguageChecker
	authors              AuthorChecker
	defaultOverlayLocale string
	logger               *slog.Logger
}

// NewService constructs a new [Service] with its required collaborators.
//
// defaultOverlayLocale is the configured locale of site-default translated
// pairs (config.DefaultOverlayLocale).
func NewService(repo Repository, languages LanguageChecker, authors AuthorChecker, defaultOverlayLocale string, logger *slog.Logger) *Service {
	return &Service{
		repo:                 repo,
		languages:            languages,
		authors:              authors,
		defaultOverlayLocale: defaultOverlayLocale,
		logger:               logger,
	}
}

// # Novel Lookups

/*
ListNovels retrieves a paginated and filtered collection of novels.

Parameters:
  - context: context.Context
  - filter: Filter (author, language, status criteria)
  - limit: int (Max records to return)
  - offset: int (Pagination cursor)

Returns:
  - []*Novel: Slice of matching records
  - int: Total count of records matching the filter
  - error: Storage failures
*/
func (service *Service) ListNovels(context context.Context, filter Filter, limit, offset int) ([]*Novel, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

/*
GetNovel fetches a single novel by UUID or SEO slug.

Description: If the identifier matches the UUID format it performs a
primary key lookup; otherwise it resolves via the unique URL slug.

Returns:
  - *Novel: The hydrated canonical record
  - error: NotFound if no match is found
*/
func (service *Service) GetNovel(context context.Context, identifier string) (*Novel, error) {
	if isUUID(identifier) {
		return service.repo.FindByID(context, identifier)
	}
	return service.repo.FindBySlug(context, identifier)
}

// Exists reports whether a novel exists. It backs the narrow checker
// interfaces other domains declare against this service.
func (service *Service) Exists(context context.Context, novelID string) (bool, error) {
	_, err := service.repo.FindByID(context, novelID)
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.Code == "NOT_FOUND" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// OriginalLanguage reports the original language of a novel. It backs the
// narrow checker interfaces other domains declare against this service.
func (service *Service) OriginalLanguage(context context.Context, novelID string) (string, error) {
	n, err := service.repo.FindByID(context, novelID)
	if err != nil {
		return "", err
	}
	return n.OriginalLanguage, nil
}

// LocalizedNovel pairs the canonical record with the language variant
// selected for the caller's requested locale.
type LocalizedNovel struct {
	*Novel
	Localized localize.Localized `json:"localized"`
}

/*
GetLocalizedNovel fetches a novel and resolves the language variant to serve.

Description: Issues one canonical lookup plus, when a locale was requested,
one overlay lookup. A missing overlay is never an error — the fallback chain
in [localize.Resolve] decides what to serve instead.

Parameters:
  - context: context.Context
  - identifier: string (UUID or slug)
  - locale: string (requested language code, empty for no preference)

Returns:
  - *LocalizedNovel: Canonical record plus the resolved projection
  - error: NotFound if the novel does not exist
*/
func (service *Service) GetLocalizedNovel(context context.Context, identifier, locale string) (*LocalizedNovel, error) {
	n, err := service.GetNovel(context, identifier)
	if err != nil {
		return nil, err
	}

	overlay, err := service.loadOverlay(context, n, locale)
	if err != nil {
		return nil, err
	}

	resolved := localize.Resolve(
		localize.Canonical{Title: n.Title, Body: n.Synopsis, Language: n.OriginalLanguage},
		siteDefaultOf(n),
		overlay,
		locale,
		service.defaultOverlayLocale,
	)

	return &LocalizedNovel{Novel: n, Localized: resolved}, nil
}

// loadOverlay fetches the translation row for the requested locale.
// Absence is a fallback trigger, so NotFound is swallowed here.
func (service *Service) loadOverlay(context context.Context, n *Novel, locale string) (*localize.Overlay, error) {
	if locale == "" || locale == n.OriginalLanguage {
		return nil, nil
	}

	translation, active, err := service.repo.FindTranslation(context, n.ID, locale)
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.Code == "NOT_FOUND" {
			return nil, nil
		}
		return nil, err
	}

	return &localize.Overlay{
		Title:  translation.Title,
		Body:   translation.Synopsis,
		Locale: translation.LanguageCode,
		Active: active,
	}, nil
}

// siteDefaultOf maps a novel's default translated pair into the resolver's
// input, or nil when the novel has none.
func siteDefaultOf(n *Novel) *localize.DefaultOverlay {
	if n.TitleTranslated == nil || *n.TitleTranslated == "" {
		return nil
	}

	body := ""
	if n.SynopsisTranslated != nil {
		body = *n.SynopsisTranslated
	}
	return &localize.DefaultOverlay{Title: *n.TitleTranslated, Body: body}
}

// # Novel Management

/*
CreateNovel initialises a new canonical novel record.

Description: Performs business validation, verifies the author and
original-language references, generates a UUIDv7 identity and a unique SEO
slug, then persists. The slug's probe loop is advisory only — the real
guard is the unique constraint on catalog.novel.slug, and the insert is
retried with a regenerated slug a bounded number of times when two
concurrent creates collide.

Returns:
  - error: Validation, NotFound (author/language), Conflict or persistence errors
*/
func (service *Service) CreateNovel(context context.Context, n *Novel) error {

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Required(FieldTitle, n.Title).MaxLen(FieldTitle, n.Title, 255)
	validator.Required(FieldAuthorID, n.AuthorID)
	validator.Required(FieldOriginalLanguage, n.OriginalLanguage)
	validator.MaxLen(FieldSynopsis, n.Synopsis, 10000)

	if n.CoverURL != nil {
		validator.URL(FieldCoverURL, *n.CoverURL)
	}
	if n.SourceURL != nil {
		validator.URL(FieldSourceURL, *n.SourceURL)
	}

	// Lifecycle state defaults mirror the catalogue conventions.
	if n.PublicationStatus == "" {
		n.PublicationStatus = PublicationOngoing
	}
	if n.TranslationStatus == "" {
		n.TranslationStatus = TranslationActive
	}
	validator.OneOf(FieldStatus, string(n.PublicationStatus),
		string(PublicationOngoing),
		string(PublicationCompleted),
		string(PublicationHiatus),
		string(PublicationDropped),
	)
	validator.OneOf(FieldTranslation, string(n.TranslationStatus),
		string(TranslationActive),
		string(TranslationPaused),
		string(TranslationCompleted),
		string(TranslationDropped),
	)

	if err := validator.Err(); err != nil {
		return err
	}

	// Reference checks: author must exist, original language must be active.
	exists, err := service.authors.Exists(context, n.AuthorID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Author")
	}
	if err := service.requireActiveLanguage(context, n.OriginalLanguage); err != nil {
		return err
	}

	if n.ID == "" {
		n.ID = uuidv7.New()
	}
	if n.GenreTags == nil {
		n.GenreTags = []string{}
	}

	// Slug derives from the site-default translated title when present,
	// otherwise from the original title.
	slugSource := n.Title
	if n.TitleTranslated != nil && *n.TitleTranslated != "" {
		slugSource = *n.TitleTranslated
	}

	// Persist, retrying with a fresh slug if the unique constraint fires.
	for attempt := 0; ; attempt++ {
		n.Slug, err = service.generateUniqueSlug(context, slugSource, "")
		if err != nil {
			return err
		}

		err = service.repo.Create(context, n)
		if err == nil {
			break
		}
		if dberr.IsUniqueViolation(err, slugConstraint) && attempt < maxSlugRetries {
			continue
		}
		return dberr.Wrap(err, "create_novel")
	}

	service.logger.Info("novel_created",
		slog.String("novel_id", n.ID),
		slog.String("slug", n.Slug),
		slog.String("original_language", n.OriginalLanguage),
	)

	return nil
}

/*
UpdateNovel applies modifications to an existing novel.

Description: Supports partial updates — zero-valued fields in the input
keep their stored values. The slug is regenerated when the title the slug
derives from changes: a changed site-default translated title always wins;
a changed original title only regenerates when no translated title exists.

Returns:
  - error: Validation, NotFound or persistence errors
*/
func (service *Service) UpdateNovel(context context.Context, id string, input *Novel) error {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	validator := &validate.Validator{}
	if input.Title != "" {
		validator.MaxLen(FieldTitle, input.Title, 255)
		current.Title = input.Title
	}
	if input.TitleTranslated != nil {
		current.TitleTranslated = input.TitleTranslated
	}
	if input.Synopsis != "" {
		validator.MaxLen(FieldSynopsis, input.Synopsis, 10000)
		current.Synopsis = input.Synopsis
	}
	if input.SynopsisTranslated != nil {
		current.SynopsisTranslated = input.SynopsisTranslated
	}
	if input.CoverURL != nil {
		validator.URL(FieldCoverURL, *input.CoverURL)
		current.CoverURL = input.CoverURL
	}
	if input.SourceURL != nil {
		validator.URL(FieldSourceURL, *input.SourceURL)
		current.SourceURL = input.SourceURL
	}
	if input.PublicationStatus != "" {
		validator.OneOf(FieldStatus, string(input.PublicationStatus),
			string(PublicationOngoing),
			string(PublicationCompleted),
			string(PublicationHiatus),
			string(PublicationDropped),
		)
		current.PublicationStatus = input.PublicationStatus
	}
	if input.TranslationStatus != "" {
		validator.OneOf(FieldTranslation, string(input.TranslationStatus),
			string(TranslationActive),
			string(TranslationPaused),
			string(TranslationCompleted),
			string(TranslationDropped),
		)
		current.TranslationStatus = input.TranslationStatus
	}
	if input.GenreTags != nil {
		current.GenreTags = input.GenreTags
	}
	if input.TotalChapters != nil {
		current.TotalChapters = input.TotalChapters
	}
	if input.FirstPublishedAt != nil {
		current.FirstPublishedAt = input.FirstPublishedAt
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if input.AuthorID != "" && input.AuthorID != current.AuthorID {
		exists, err := service.authors.Exists(context, input.AuthorID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("Author")
		}
		current.AuthorID = input.AuthorID
	}
	if input.OriginalLanguage != "" && input.OriginalLanguage != current.OriginalLanguage {
		if err := service.requireActiveLanguage(context, input.OriginalLanguage); err != nil {
			return err
		}
		current.OriginalLanguage = input.OriginalLanguage
	}

	// Slug regeneration rules, excluding this novel from the collision probe
	// so it cannot collide with itself.
	if input.TitleTranslated != nil && *input.TitleTranslated != "" {
		current.Slug, err = service.generateUniqueSlug(context, *input.TitleTranslated, id)
	} else if input.Title != "" && current.TitleTranslated == nil {
		current.Slug, err = service.generateUniqueSlug(context, input.Title, id)
	}
	if err != nil {
		return err
	}

	if err := service.repo.Update(context, current); err != nil {
		return dberr.Wrap(err, "update_novel")
	}

	service.logger.Info("novel_updated", slog.String("novel_id", id))
	return nil
}

/*
DeleteNovel permanently removes a novel.

Description: Chapters, translation overlays, ratings, comments, favorites
and reading progress rows are removed by store-level cascade in the same
statement's transaction.
*/
func (service *Service) DeleteNovel(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("novel_deleted", slog.String("novel_id", id))
	return nil
}

// # Translation Overlays

/*
ListTranslations returns all translation overlays for a novel.
*/
func (service *Service) ListTranslations(context context.Context, novelID string) ([]*Translation, error) {
	if _, err := service.repo.FindByID(context, novelID); err != nil {
		return nil, err
	}
	return service.repo.ListTranslations(context, novelID)
}

/*
UpsertTranslation creates or replaces the overlay for a (novel, locale) pair.

Description: The language must exist and be active at write time — this is
validated here, not left to the foreign key. A nil title means the overlay
inherits the canonical title at resolution time; the synopsis is required
because it is authoritative once the row exists.

Returns:
  - error: NotFound (novel/language), Validation (inactive language, empty synopsis)
*/
func (service *Service) UpsertTranslation(context context.Context, t *Translation) error {
	validator := &validate.Validator{}
	validator.Required(FieldLanguageCode, t.LanguageCode)
	validator.Required(FieldSynopsis, t.Synopsis).MaxLen(FieldSynopsis, t.Synopsis, 10000)
	if t.Title != nil {
		validator.MaxLen(FieldTitle, *t.Title, 255)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if _, err := service.repo.FindByID(context, t.NovelID); err != nil {
		return err
	}
	if err := service.requireActiveLanguage(context, t.LanguageCode); err != nil {
		return err
	}

	if t.ID == "" {
		t.ID = uuidv7.New()
	}
	if err := service.repo.UpsertTranslation(context, t); err != nil {
		return err
	}

	service.logger.Info("novel_translation_upserted",
		slog.String("novel_id", t.NovelID),
		slog.String("language_code", t.LanguageCode),
	)
	return nil
}

/*
DeleteTranslation removes the overlay for a (novel, locale) pair.
*/
func (service *Service) DeleteTranslation(context context.Context, novelID, languageCode string) error {
	if err := service.repo.DeleteTranslation(context, novelID, languageCode); err != nil {
		return err
	}

	service.logger.Info("novel_translation_deleted",
		slog.String("novel_id", novelID),
		slog.String("language_code", languageCode),
	)
	return nil
}

// # Slug Generation

/*
generateUniqueSlug derives a URL-safe slug from a title and probes the
store until a free one is found.

Description: An empty sanitized result falls back to a time-seeded
placeholder. Collisions append -2, -3, … in order. The probe loop is
bounded; exhausting it is a Conflict. The probe is advisory under
concurrency — the unique constraint plus the caller's retry loop provide
the real guarantee.
*/
func (service *Service) generateUniqueSlug(context context.Context, title, excludeID string) (string, error) {
	base := slug.From(title)
	if base == "" {
		base = fmt.Sprintf("novel-%d", time.Now().Unix())
	}

	candidate := base
	for probe := 2; probe <= maxSlugProbes; probe++ {
		taken, err := service.repo.SlugExists(context, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, probe)
	}

	return "", apperr.Conflict("Could not allocate a unique slug for this title")
}

// requireActiveLanguage maps a language lookup onto the error taxonomy:
// unknown code is NotFound, inactive code is a validation failure.
func (service *Service) requireActiveLanguage(context context.Context, code string) error {
	active, err := service.languages.IsActive(context, code)
	if err != nil {
		return err
	}
	if !active {
		return apperr.ValidationError(fmt.Sprintf("Language '%s' is not active", code))
	}
	return nil
}

// # Internal Helpers

// isUUID returns true if the string matches the standard UUID length.
func isUUID(s string) bool {
	return len(s) == 36
}
