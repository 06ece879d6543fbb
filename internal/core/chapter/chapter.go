// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

/*
Package chapter manages the serialized content units of a novel.

A chapter stores its full text in the novel's original language (the
canonical content). Per-locale translation overlays carry alternate titles
and full translated bodies. Word count and estimated reading time are
derived from the canonical content at write time.
*/
package chapter

import "time"

// wordsPerMinute is the reading speed used to estimate reading time.
const wordsPerMinute = 200

// Chapter is the canonical, original-language record of one content unit.
//
// Number is fractional to allow interleaved releases (e.g. 4.5 side
// stories). The (NovelID, Number) pair is unique per novel.
type Chapter struct {
	ID              string     `json:"id"`
	NovelID         string     `json:"novel_id"`
	Number          float64    `json:"number"`
	Title           string     `json:"title"`
	Content         string     `json:"content,omitempty"`
	WordCount       int        `json:"word_count"`
	IsPublished     bool       `json:"is_published"`
	PublishedAt     *time.Time `json:"published_at"`
	TranslatorNotes *string    `json:"translator_notes"`
	SourceURL       *string    `json:"source_url"`
	ReadingTime     int        `json:"reading_time"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Translation is a locale-tagged overlay for a chapter. Title may be nil
// (inherit the canonical title); Content is authoritative once the row
// exists.
type Translation struct {
	ID           string    `json:"id"`
	ChapterID    string    `json:"chapter_id"`
	LanguageCode string    `json:"language_code"`
	Title        *string   `json:"title"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Filter holds list parameters for a novel's chapter roster.
type Filter struct {
	OnlyPublished bool
	SortDir       string
}

// # Validation Field Identifiers

const (
	FieldNovelID      = "novel_id"
	FieldNumber       = "number"
	FieldContent      = "content"
	FieldTitle        = "title"
	FieldSourceURL    = "source_url"
	FieldLanguageCode = "language_code"
)
