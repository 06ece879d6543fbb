// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

/*
Package novel defines the core domain entities for the Manov catalogue.

It manages the lifecycle of translated web novels: canonical
original-language records, their site-default translated metadata, and
per-locale translation overlays.

Core Responsibility:

  - Catalogue: Publication and translation lifecycle statuses.
  - Identity: Unique, human-readable URL slugs derived from titles.
  - Localization: Serving the best language variant for a requested locale.

This package acts as the source of truth for all novel-level data models.
*/
package novel

import "time"

// # Domain Enums

// PublicationStatus represents the status of the original work.
type PublicationStatus string

const (
	// PublicationOngoing indicates the original is actively updating.
	PublicationOngoing PublicationStatus = "ongoing"

	// PublicationCompleted indicates the original has finished.
	PublicationCompleted PublicationStatus = "completed"

	// PublicationHiatus indicates the original is paused indefinitely.
	PublicationHiatus PublicationStatus = "hiatus"

	// PublicationDropped indicates the original was discontinued.
	PublicationDropped PublicationStatus = "dropped"
)

// TranslationStatus represents the status of the translation effort.
type TranslationStatus string

const (
	TranslationActive    TranslationStatus = "active"
	TranslationPaused    TranslationStatus = "paused"
	TranslationCompleted TranslationStatus = "completed"
	TranslationDropped   TranslationStatus = "dropped"
)

// # Domain Entities

// Novel is the canonical, original-language record of a web novel.
//
// TitleTranslated/SynopsisTranslated form the optional site-default
// translated pair. They are not locale-tagged; the locale they are served
// under is the configured default overlay locale. AverageRating is a
// derived aggregate maintained by the rating service and must never be
// written through this package.
type Novel struct {
	ID                 string            `json:"id"`
	AuthorID           string            `json:"author_id"`
	Title              string            `json:"title"`
	TitleTranslated    *string           `json:"title_translated"`
	Synopsis           string            `json:"synopsis"`
	SynopsisTranslated *string           `json:"synopsis_translated"`
	Slug               string            `json:"slug"`
	OriginalLanguage   string            `json:"original_language"`
	CoverURL           *string           `json:"cover_url"`
	SourceURL          *string           `json:"source_url"`
	PublicationStatus  PublicationStatus `json:"publication_status"`
	TranslationStatus  TranslationStatus `json:"translation_status"`
	GenreTags          []string          `json:"genre_tags"`
	TotalChapters      *int              `json:"total_chapters"`
	AverageRating      *float64          `json:"average_rating"`
	IsActive           bool              `json:"is_active"`
	FirstPublishedAt   *time.Time        `json:"first_published_at"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// Translation is a locale-tagged overlay supplying an alternate title and
// synopsis for a novel. Title may be nil (inherit the canonical title);
// Synopsis is authoritative once the row exists.
type Translation struct {
	ID           string    `json:"id"`
	NovelID      string    `json:"novel_id"`
	LanguageCode string    `json:"language_code"`
	Title        *string   `json:"title"`
	Synopsis     string    `json:"synopsis"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated novel search.
type Filter struct {
	AuthorID          string
	OriginalLanguage  string
	PublicationStatus string
	OnlyActive        bool
}

// # Validation Field Identifiers

const (
	FieldTitle            = "title"
	FieldAuthorID         = "author_id"
	FieldOriginalLanguage = "original_language"
	FieldSynopsis         = "synopsis"
	FieldCoverURL         = "cover_url"
	FieldSourceURL        = "source_url"
	FieldStatus           = "publication_status"
	FieldTranslation      = "translation_status"
	FieldLanguageCode     = "language_code"
)
