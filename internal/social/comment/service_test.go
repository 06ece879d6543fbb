// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package comment_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manovapp/manov/internal/platform/apperr"
	"github.com/manovapp/manov/internal/social/comment"
	"github.com/manovapp/manov/pkg/uuidv7"
)

// # Test Doubles

// fakeRepository is an in-memory stand-in for the comment store.
type fakeRepository struct {
	comments map[string]*comment.Comment
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{comments: map[string]*comment.Comment{}}
}

func (f *fakeRepository) Create(_ context.Context, c *comment.Comment) error {
	f.comments[c.ID] = c
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*comment.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	return c, nil
}

func (f *fakeRepository) Update(_ context.Context, c *comment.Comment) error {
	if _, ok := f.comments[c.ID]; !ok {
		return apperr.NotFound("Comment")
	}
	f.comments[c.ID] = c
	return nil
}

func (f *fakeRepository) DeleteSubtree(_ context.Context, id string) (int64, error) {
	if _, ok := f.comments[id]; !ok {
		return 0, apperr.NotFound("Comment")
	}

	removed := int64(1)
	delete(f.comments, id)
	for childID, c := range f.comments {
		if c.ParentID != nil && *c.ParentID == id {
			delete(f.comments, childID)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeRepository) ListTopLevel(_ context.Context, target comment.Target, sortDir string, limit, offset int) ([]*comment.Comment, int, error) {
	out := []*comment.Comment{}
	for _, c := range f.comments {
		if c.ParentID != nil {
			continue
		}
		switch {
		case c.NovelID != nil && *c.NovelID == target.ID() && c.ChapterID == nil:
			out = append(out, c)
		case c.ChapterID != nil && *c.ChapterID == target.ID():
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if sortDir == comment.SortOldest {
			return out[i].ID < out[j].ID
		}
		return out[i].ID > out[j].ID
	})
	return out, len(out), nil
}

func (f *fakeRepository) ListReplies(_ context.Context, parentIDs []string) (map[string][]*comment.Comment, error) {
	wanted := map[string]bool{}
	for _, id := range parentIDs {
		wanted[id] = true
	}

	replies := map[string][]*comment.Comment{}
	for _, c := range f.comments {
		if c.ParentID != nil && wanted[*c.ParentID] {
			replies[*c.ParentID] = append(replies[*c.ParentID], c)
		}
	}
	for _, group := range replies {
		sort.Slice(group, func(i, j int) bool { return group[i].ID < group[j].ID })
	}
	return replies, nil
}

// fakeChecker answers Exists from a fixed set. It backs both the novel and
// chapter checker contracts.
type fakeChecker struct{ ids map[string]bool }

func (f *fakeChecker) Exists(_ context.Context, id string) (bool, error) {
	return f.ids[id], nil
}

// # Fixtures

type fixture struct {
	repo      *fakeRepository
	service   *comment.Service
	novelID   string
	chapterID string
}

func newFixture() *fixture {
	repo := newFakeRepository()
	novelID := uuidv7.New()
	chapterID := uuidv7.New()

	novels := &fakeChecker{ids: map[string]bool{novelID: true}}
	chapters := &fakeChecker{ids: map[string]bool{chapterID: true}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixture{
		repo:      repo,
		service:   comment.NewService(repo, novels, chapters, logger),
		novelID:   novelID,
		chapterID: chapterID,
	}
}

// # Creation Tests

/*
TestService_Create_TopLevel checks top-level attachment to a novel and to a
chapter, including the existence guard.
*/
func TestService_Create_TopLevel(t *testing.T) {
	fx := newFixture()
	authorID := uuidv7.New()

	t.Run("on_novel", func(t *testing.T) {
		c, err := fx.service.Create(context.Background(), authorID, "First!", comment.NovelTarget(fx.novelID))
		require.NoError(t, err)

		require.NotNil(t, c.NovelID)
		assert.Equal(t, fx.novelID, *c.NovelID)
		assert.Nil(t, c.ChapterID)
		assert.Nil(t, c.ParentID)
	})

	t.Run("on_chapter", func(t *testing.T) {
		c, err := fx.service.Create(context.Background(), authorID, "What a cliffhanger.", comment.ChapterTarget(fx.chapterID))
		require.NoError(t, err)

		require.NotNil(t, c.ChapterID)
		assert.Equal(t, fx.chapterID, *c.ChapterID)
		assert.Nil(t, c.NovelID)
	})

	t.Run("unknown_novel", func(t *testing.T) {
		_, err := fx.service.Create(context.Background(), authorID, "hello", comment.NovelTarget(uuidv7.New()))
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})
}

/*
TestService_Create_Validation covers empty bodies and malformed targets.
*/
func TestService_Create_Validation(t *testing.T) {
	fx := newFixture()

	tests := []struct {
		name    string
		content string
		target  comment.Target
	}{
		{"empty_content", "", comment.NovelTarget(fx.novelID)},
		{"whitespace_content", "   \n\t", comment.NovelTarget(fx.novelID)},
		{"zero_target", "hello", comment.Target{}},
		{"empty_target_id", "hello", comment.NovelTarget("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.service.Create(context.Background(), uuidv7.New(), tt.content, tt.target)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

/*
TestService_Create_ReplyInheritsContext checks that a reply copies its
parent's (novel, chapter) context verbatim.
*/
func TestService_Create_ReplyInheritsContext(t *testing.T) {
	fx := newFixture()

	parent, err := fx.service.Create(context.Background(), uuidv7.New(), "Top level.", comment.ChapterTarget(fx.chapterID))
	require.NoError(t, err)

	reply, err := fx.service.Create(context.Background(), uuidv7.New(), "Agreed.", comment.ReplyTarget(parent.ID))
	require.NoError(t, err)

	require.NotNil(t, reply.ParentID)
	assert.Equal(t, parent.ID, *reply.ParentID)
	require.NotNil(t, reply.ChapterID)
	assert.Equal(t, fx.chapterID, *reply.ChapterID)
	assert.Nil(t, reply.NovelID)
}

/*
TestService_Create_ReplyToReplyFlattens checks that replying to a reply
attaches to the top-level ancestor rather than nesting a third level.
*/
func TestService_Create_ReplyToReplyFlattens(t *testing.T) {
	fx := newFixture()

	top, err := fx.service.Create(context.Background(), uuidv7.New(), "Top.", comment.NovelTarget(fx.novelID))
	require.NoError(t, err)

	reply, err := fx.service.Create(context.Background(), uuidv7.New(), "Reply.", comment.ReplyTarget(top.ID))
	require.NoError(t, err)

	deep, err := fx.service.Create(context.Background(), uuidv7.New(), "Reply to reply.", comment.ReplyTarget(reply.ID))
	require.NoError(t, err)

	require.NotNil(t, deep.ParentID)
	assert.Equal(t, top.ID, *deep.ParentID)
}

// # Moderation Tests

/*
TestService_Edit enforces the strictly author-only edit rule: not even an
admin may rewrite someone else's words.
*/
func TestService_Edit(t *testing.T) {
	fx := newFixture()
	authorID := uuidv7.New()

	c, err := fx.service.Create(context.Background(), authorID, "Orignal text", comment.NovelTarget(fx.novelID))
	require.NoError(t, err)

	t.Run("author_can_edit", func(t *testing.T) {
		edited, err := fx.service.Edit(context.Background(), c.ID, authorID, "Original text")
		require.NoError(t, err)
		assert.Equal(t, "Original text", edited.Content)
		assert.True(t, edited.IsEdited)
	})

	t.Run("other_user_forbidden", func(t *testing.T) {
		_, err := fx.service.Edit(context.Background(), c.ID, uuidv7.New(), "Vandalism")
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "FORBIDDEN", ae.Code)
	})

	t.Run("empty_body_rejected", func(t *testing.T) {
		_, err := fx.service.Edit(context.Background(), c.ID, authorID, "  ")
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})
}

/*
TestService_Delete checks author/admin permissions and atomic subtree
removal.
*/
func TestService_Delete(t *testing.T) {
	fx := newFixture()
	authorID := uuidv7.New()

	top, err := fx.service.Create(context.Background(), authorID, "Top.", comment.NovelTarget(fx.novelID))
	require.NoError(t, err)
	_, err = fx.service.Create(context.Background(), uuidv7.New(), "Reply one.", comment.ReplyTarget(top.ID))
	require.NoError(t, err)
	_, err = fx.service.Create(context.Background(), uuidv7.New(), "Reply two.", comment.ReplyTarget(top.ID))
	require.NoError(t, err)

	t.Run("stranger_forbidden", func(t *testing.T) {
		err := fx.service.Delete(context.Background(), top.ID, uuidv7.New(), false)
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "FORBIDDEN", ae.Code)
	})

	t.Run("author_removes_subtree", func(t *testing.T) {
		require.NoError(t, fx.service.Delete(context.Background(), top.ID, authorID, false))
		assert.Empty(t, fx.repo.comments)
	})

	t.Run("admin_override", func(t *testing.T) {
		c, err := fx.service.Create(context.Background(), authorID, "Back again.", comment.NovelTarget(fx.novelID))
		require.NoError(t, err)

		require.NoError(t, fx.service.Delete(context.Background(), c.ID, uuidv7.New(), true))
		assert.Empty(t, fx.repo.comments)
	})
}

// # Listing Tests

/*
TestService_ListTopLevel checks thread assembly: one level of replies,
oldest first, with empty reply slices materialised.
*/
func TestService_ListTopLevel(t *testing.T) {
	fx := newFixture()

	first, err := fx.service.Create(context.Background(), uuidv7.New(), "First thread.", comment.NovelTarget(fx.novelID))
	require.NoError(t, err)
	second, err := fx.service.Create(context.Background(), uuidv7.New(), "Second thread.", comment.NovelTarget(fx.novelID))
	require.NoError(t, err)
	_, err = fx.service.Create(context.Background(), uuidv7.New(), "Reply to first.", comment.ReplyTarget(first.ID))
	require.NoError(t, err)

	threads, total, err := fx.service.ListTopLevel(context.Background(), comment.NovelTarget(fx.novelID), comment.SortOldest, 10, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, total)
	require.Len(t, threads, 2)
	assert.Equal(t, first.ID, threads[0].ID)
	require.Len(t, threads[0].Replies, 1)
	assert.Equal(t, "Reply to first.", threads[0].Replies[0].Content)

	assert.Equal(t, second.ID, threads[1].ID)
	assert.NotNil(t, threads[1].Replies)
	assert.Empty(t, threads[1].Replies)
}

/*
TestService_ListTopLevel_Guards rejects reply targets and unknown sorts.
*/
func TestService_ListTopLevel_Guards(t *testing.T) {
	fx := newFixture()

	_, _, err := fx.service.ListTopLevel(context.Background(), comment.ReplyTarget(uuidv7.New()), comment.SortNewest, 10, 0)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)

	_, _, err = fx.service.ListTopLevel(context.Background(), comment.NovelTarget(fx.novelID), "controversial", 10, 0)
	require.Error(t, err)
	ae = apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}
