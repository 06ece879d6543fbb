// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package comment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/manovapp/manov/internal/platform/apperr"
	"github.com/manovapp/manov/internal/platform/validate"
	"github.com/manovapp/manov/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the business logic for comment threads.
type Service struct {
	repo     Repository
	novels   NovelChecker
	chapters ChapterChecker
	logger   *slog.Logger
}

// NewService constructs a new [Service] with its required collaborators.
func NewService(repo Repository, novels NovelChecker, chapters ChapterChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		novels:   novels,
		chapters: chapters,
		logger:   logger,
	}
}

/*
Create posts a new comment.

Description: A reply looks up its parent and copies the parent's
(novel, chapter) context verbatim — the inherited context is trusted, not
re-validated, since the parent row could only exist with a valid one. A
top-level comment verifies its target entity exists. The exactly-one-target
rule is carried by the [Target] constructors; only an empty identifier can
still reach this method as invalid input.

Parameters:
  - context: context.Context
  - authorID: string (Actor)
  - content: string (non-empty body)
  - target: Target (novel, chapter or parent comment)

Returns:
  - *Comment: The stored node
  - error: Validation, NotFound (target/parent), storage errors
*/
func (service *Service) Create(context context.Context, authorID, content string, target Target) (*Comment, error) {

	validator := &validate.Validator{}
	validator.Custom(FieldContent, strings.TrimSpace(content) == "", "Content cannot be empty")
	validator.MaxLen(FieldContent, content, 10000)
	validator.Custom(FieldTarget, !target.valid(), "Comment must target exactly one of a novel, a chapter, or a parent comment")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	c := &Comment{
		ID:      uuidv7.New(),
		UserID:  authorID,
		Content: content,
	}

	switch target.kind {
	case targetReply:
		parent, err := service.repo.FindByID(context, target.id)
		if err != nil {
			return nil, err
		}
		// Two levels only: replying to a reply attaches to its top-level
		// parent instead of nesting deeper.
		parentID := parent.ID
		if parent.ParentID != nil {
			parentID = *parent.ParentID
		}
		c.ParentID = &parentID
		c.NovelID = parent.NovelID
		c.ChapterID = parent.ChapterID

	case targetNovel:
		exists, err := service.novels.Exists(context, target.id)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperr.NotFound("Novel")
		}
		novelID := target.id
		c.NovelID = &novelID

	case targetChapter:
		exists, err := service.chapters.Exists(context, target.id)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperr.NotFound("Chapter")
		}
		chapterID := target.id
		c.ChapterID = &chapterID
	}

	if err := service.repo.Create(context, c); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", c.ID),
		slog.String("user_id", authorID),
		slog.Bool("is_reply", c.ParentID != nil),
	)

	return c, nil
}

/*
Edit replaces a comment's body.

Description: Strictly author-only — an admin editing someone else's words
is indistinguishable from forgery, so there is no admin override here,
unlike Delete. Sets the edited flag; descendants are untouched.

Returns:
  - *Comment: The updated node
  - error: NotFound, Forbidden (requester is not the author), Validation
*/
func (service *Service) Edit(context context.Context, commentID, requesterID, content string) (*Comment, error) {

	validator := &validate.Validator{}
	validator.Custom(FieldContent, strings.TrimSpace(content) == "", "Content cannot be empty")
	validator.MaxLen(FieldContent, content, 10000)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	c, err := service.repo.FindByID(context, commentID)
	if err != nil {
		return nil, err
	}
	if c.UserID != requesterID {
		return nil, apperr.Forbidden("Only the author can edit a comment")
	}

	c.Content = content
	c.IsEdited = true
	if err := service.repo.Update(context, c); err != nil {
		return nil, err
	}

	service.logger.Info("comment_edited", slog.String("comment_id", commentID))
	return c, nil
}

/*
Delete removes a comment and its entire reply subtree.

Description: Permitted for the author or an admin. The subtree removal is
one atomic operation in the store; a crash can never orphan replies.

Parameters:
  - context: context.Context
  - commentID: string (Target node)
  - requesterID: string (Actor)
  - isAdmin: bool (Actor privilege)

Returns:
  - error: NotFound, Forbidden (neither author nor admin), storage errors
*/
func (service *Service) Delete(context context.Context, commentID, requesterID string, isAdmin bool) error {
	c, err := service.repo.FindByID(context, commentID)
	if err != nil {
		return err
	}
	if c.UserID != requesterID && !isAdmin {
		return apperr.Forbidden("Only the author or an admin can delete a comment")
	}

	removed, err := service.repo.DeleteSubtree(context, commentID)
	if err != nil {
		return err
	}

	service.logger.Warn("comment_deleted",
		slog.String("comment_id", commentID),
		slog.String("requester_id", requesterID),
		slog.Bool("as_admin", isAdmin && c.UserID != requesterID),
		slog.Int64("removed", removed),
	)

	return nil
}

/*
ListTopLevel returns a page of top-level comments for a novel or chapter,
each with its immediate replies.

Description: Replies come one level deep only and always oldest first; the
caller chooses the top-level order. The reply fetch is batched for the
whole page.

Returns:
  - []*Thread: Page of threads
  - int: Total top-level comment count for the target
  - error: Validation (reply target or unknown sort), storage errors
*/
func (service *Service) ListTopLevel(context context.Context, target Target, sort string, limit, offset int) ([]*Thread, int, error) {
	if !target.valid() || target.IsReply() {
		return nil, 0, apperr.ValidationError("Listing requires a novel or chapter target")
	}

	if sort == "" {
		sort = SortNewest
	}
	if sort != SortNewest && sort != SortOldest {
		return nil, 0, apperr.ValidationError("Sort must be 'newest' or 'oldest'")
	}

	topLevel, total, err := service.repo.ListTopLevel(context, target, sort, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if len(topLevel) == 0 {
		return []*Thread{}, total, nil
	}

	parentIDs := make([]string, 0, len(topLevel))
	for _, c := range topLevel {
		parentIDs = append(parentIDs, c.ID)
	}

	replies, err := service.repo.ListReplies(context, parentIDs)
	if err != nil {
		return nil, 0, err
	}

	threads := make([]*Thread, 0, len(topLevel))
	for _, c := range topLevel {
		thread := &Thread{Comment: c, Replies: replies[c.ID]}
		if thread.Replies == nil {
			thread.Replies = []*Comment{}
		}
		threads = append(threads, thread)
	}

	return threads, total, nil
}
