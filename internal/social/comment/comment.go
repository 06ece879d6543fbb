// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

/*
Package comment manages two-level discussion threads on novels and chapters.

A comment is either top-level, attached to exactly one of {novel, chapter},
or a reply attached to a parent comment. Replies inherit their parent's
context and cannot themselves carry replies deeper than one level is ever
served. Deleting a comment removes its entire reply subtree atomically.

The attachment rule lives in the [Target] type: handlers build a Target
through one of three constructors, so an impossible combination (both novel
and chapter, or neither) cannot reach the service as a well-formed value.
*/
package comment

import "time"

// Comment is a single node in a discussion thread.
//
// For a top-level comment exactly one of NovelID/ChapterID is set and
// ParentID is nil. For a reply ParentID is set and NovelID/ChapterID are
// copies of the parent's context.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	NovelID   *string   `json:"novel_id"`
	ChapterID *string   `json:"chapter_id"`
	ParentID  *string   `json:"parent_id"`
	Content   string    `json:"content"`
	IsEdited  bool      `json:"is_edited"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Thread is one top-level comment with its immediate replies, oldest first.
type Thread struct {
	*Comment
	Replies []*Comment `json:"replies"`
}

// # Attachment Targets

// targetKind discriminates the three legal attachment shapes.
type targetKind int

const (
	targetInvalid targetKind = iota
	targetNovel
	targetChapter
	targetReply
)

// Target is the tagged attachment of a new comment: a novel, a chapter,
// or a parent comment. The zero value is invalid; use the constructors.
type Target struct {
	kind targetKind
	id   string
}

// NovelTarget attaches a top-level comment to a novel.
func NovelTarget(novelID string) Target {
	return Target{kind: targetNovel, id: novelID}
}

// ChapterTarget attaches a top-level comment to a chapter.
func ChapterTarget(chapterID string) Target {
	return Target{kind: targetChapter, id: chapterID}
}

// ReplyTarget attaches a reply to an existing comment.
func ReplyTarget(parentID string) Target {
	return Target{kind: targetReply, id: parentID}
}

// IsReply reports whether the target is a parent comment.
func (t Target) IsReply() bool { return t.kind == targetReply }

// ID returns the identifier the target points at.
func (t Target) ID() string { return t.id }

// valid reports whether the target was built through a constructor with a
// non-empty identifier.
func (t Target) valid() bool { return t.kind != targetInvalid && t.id != "" }

// # Sorting

const (
	// SortNewest orders top-level comments newest first (the default).
	SortNewest = "newest"

	// SortOldest orders top-level comments oldest first.
	SortOldest = "oldest"
)

// # Validation Field Identifiers

const (
	FieldContent = "content"
	FieldTarget  = "target"
	FieldSort    = "sort"
)
