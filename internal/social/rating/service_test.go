// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package rating_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manovapp/manov/internal/platform/apperr"
	"github.com/manovapp/manov/internal/social/rating"
	"github.com/manovapp/manov/pkg/pointer"
	"github.com/manovapp/manov/pkg/uuidv7"
)

// # Test Doubles

// fakeRepository mirrors the store contract: every write recomputes the
// derived average from the surviving rows.
type fakeRepository struct {
	ratings map[string]*rating.Rating // userID|novelID
	average map[string]*float64       // novelID -> derived average (nil when unrated)
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		ratings: map[string]*rating.Rating{},
		average: map[string]*float64{},
	}
}

func (f *fakeRepository) recompute(novelID string) {
	sum, count := 0, 0
	for _, r := range f.ratings {
		if r.NovelID == novelID {
			sum += r.Score
			count++
		}
	}
	if count == 0 {
		f.average[novelID] = nil
		return
	}
	avg := float64(sum) / float64(count)
	f.average[novelID] = &avg
}

func (f *fakeRepository) Upsert(_ context.Context, r *rating.Rating) error {
	f.ratings[r.UserID+"|"+r.NovelID] = r
	f.recompute(r.NovelID)
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, userID, novelID string) error {
	key := userID + "|" + novelID
	if _, ok := f.ratings[key]; !ok {
		return apperr.NotFound("Rating")
	}
	delete(f.ratings, key)
	f.recompute(novelID)
	return nil
}

func (f *fakeRepository) ListByNovel(_ context.Context, novelID string, limit, offset int) ([]*rating.Rating, int, error) {
	out := []*rating.Rating{}
	for _, r := range f.ratings {
		if r.NovelID == novelID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, len(out), nil
}

func (f *fakeRepository) FindByUser(_ context.Context, userID, novelID string) (*rating.Rating, error) {
	r, ok := f.ratings[userID+"|"+novelID]
	if !ok {
		return nil, apperr.NotFound("Rating")
	}
	return r, nil
}

// fakeNovels answers Exists from a fixed set.
type fakeNovels struct{ ids map[string]bool }

func (f *fakeNovels) Exists(_ context.Context, novelID string) (bool, error) {
	return f.ids[novelID], nil
}

// # Fixtures

func newTestService(repo *fakeRepository, novelID string) *rating.Service {
	novels := &fakeNovels{ids: map[string]bool{novelID: true}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return rating.NewService(repo, novels, logger)
}

// # Tests

/*
TestService_Upsert_ReplacesExistingRating checks that re-rating a novel
replaces the previous score instead of stacking a second row, and that the
derived average follows every write.
*/
func TestService_Upsert_ReplacesExistingRating(t *testing.T) {
	novelID := uuidv7.New()
	repo := newFakeRepository()
	service := newTestService(repo, novelID)

	alice := uuidv7.New()
	bob := uuidv7.New()

	_, err := service.Upsert(context.Background(), alice, novelID, 3, nil)
	require.NoError(t, err)
	_, err = service.Upsert(context.Background(), bob, novelID, 5, pointer.To("Great pacing."))
	require.NoError(t, err)

	require.NotNil(t, repo.average[novelID])
	assert.InDelta(t, 4.0, *repo.average[novelID], 0.001)

	// Bob re-rates: one row per (user, novel), average tracks the new score.
	_, err = service.Upsert(context.Background(), bob, novelID, 3, nil)
	require.NoError(t, err)

	_, total, err := service.ListByNovel(context.Background(), novelID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	require.NotNil(t, repo.average[novelID])
	assert.InDelta(t, 3.0, *repo.average[novelID], 0.001)
}

/*
TestService_Remove_ClearsAverageWithLastRating checks that the derived
average returns to NULL when the last rating for a novel disappears.
*/
func TestService_Remove_ClearsAverageWithLastRating(t *testing.T) {
	novelID := uuidv7.New()
	repo := newFakeRepository()
	service := newTestService(repo, novelID)

	userID := uuidv7.New()
	_, err := service.Upsert(context.Background(), userID, novelID, 4, nil)
	require.NoError(t, err)
	require.NotNil(t, repo.average[novelID])

	require.NoError(t, service.Remove(context.Background(), userID, novelID))
	assert.Nil(t, repo.average[novelID])

	// Removing again is NotFound, not a silent no-op.
	err = service.Remove(context.Background(), userID, novelID)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestService_Upsert_Validation covers score bounds and target checks.
*/
func TestService_Upsert_Validation(t *testing.T) {
	novelID := uuidv7.New()
	repo := newFakeRepository()
	service := newTestService(repo, novelID)

	tests := []struct {
		name     string
		novelID  string
		score    int
		wantCode string
	}{
		{"score_below_range", novelID, 0, "VALIDATION_ERROR"},
		{"score_above_range", novelID, 6, "VALIDATION_ERROR"},
		{"missing_novel_id", "", 3, "VALIDATION_ERROR"},
		{"unknown_novel", uuidv7.New(), 3, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Upsert(context.Background(), uuidv7.New(), tt.novelID, tt.score, nil)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
		})
	}
}

/*
TestService_GetUserRating checks lookup of a user's own rating.
*/
func TestService_GetUserRating(t *testing.T) {
	novelID := uuidv7.New()
	repo := newFakeRepository()
	service := newTestService(repo, novelID)

	userID := uuidv7.New()
	stored, err := service.Upsert(context.Background(), userID, novelID, 5, pointer.To("A classic."))
	require.NoError(t, err)

	got, err := service.GetUserRating(context.Background(), userID, novelID)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
	assert.Equal(t, 5, got.Score)
	assert.Equal(t, "A classic.", pointer.Val(got.ReviewText))

	_, err = service.GetUserRating(context.Background(), uuidv7.New(), novelID)
	require.Error(t, err)
}

/*
TestService_ListByNovel_UnknownNovel checks the existence guard on listing.
*/
func TestService_ListByNovel_UnknownNovel(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, uuidv7.New())

	_, _, err := service.ListByNovel(context.Background(), uuidv7.New(), 10, 0)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}
