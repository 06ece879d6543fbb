// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

/*
Package progress tracks the last chapter a user read in each novel.

One row per (user, novel); re-reporting progress replaces the previous
position. The chapter must belong to the novel it is reported against.
*/
package progress

import "time"

// Progress is a user's last-read position in one novel.
type Progress struct {
	UserID    string    `json:"user_id"`
	NovelID   string    `json:"novel_id"`
	ChapterID string    `json:"chapter_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Validation Field Identifiers

const (
	FieldNovelID   = "novel_id"
	FieldChapterID = "chapter_id"
)
