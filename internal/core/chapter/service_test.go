// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package chapter_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manovapp/manov/internal/core/chapter"
	"github.com/manovapp/manov/internal/platform/apperr"
	"github.com/manovapp/manov/pkg/pointer"
	"github.com/manovapp/manov/pkg/uuidv7"
)

// # Test Doubles

// fakeRepository is an in-memory stand-in for the chapter store.
type fakeRepository struct {
	chapters     map[string]*chapter.Chapter
	translations map[string]*chapter.Translation // chapterID|lang
	activeLangs  map[string]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		chapters:     map[string]*chapter.Chapter{},
		translations: map[string]*chapter.Translation{},
		activeLangs:  map[string]bool{},
	}
}

func (f *fakeRepository) ListByNovel(_ context.Context, novelID string, _ chapter.Filter, _, _ int) ([]*chapter.Chapter, int, error) {
	out := []*chapter.Chapter{}
	for _, c := range f.chapters {
		if c.NovelID == novelID {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*chapter.Chapter, error) {
	c, ok := f.chapters[id]
	if !ok {
		return nil, apperr.NotFound("Chapter")
	}
	return c, nil
}

func (f *fakeRepository) Create(_ context.Context, c *chapter.Chapter) error {
	f.chapters[c.ID] = c
	return nil
}

func (f *fakeRepository) Update(_ context.Context, c *chapter.Chapter) error {
	if _, ok := f.chapters[c.ID]; !ok {
		return apperr.NotFound("Chapter")
	}
	f.chapters[c.ID] = c
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.chapters[id]; !ok {
		return apperr.NotFound("Chapter")
	}
	delete(f.chapters, id)
	return nil
}

func (f *fakeRepository) FindTranslation(_ context.Context, chapterID, languageCode string) (*chapter.Translation, bool, error) {
	t, ok := f.translations[chapterID+"|"+languageCode]
	if !ok {
		return nil, false, apperr.NotFound("Translation")
	}
	return t, f.activeLangs[languageCode], nil
}

func (f *fakeRepository) ListTranslations(_ context.Context, chapterID string) ([]*chapter.Translation, error) {
	out := []*chapter.Translation{}
	for _, t := range f.translations {
		if t.ChapterID == chapterID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRepository) UpsertTranslation(_ context.Context, t *chapter.Translation) error {
	f.translations[t.ChapterID+"|"+t.LanguageCode] = t
	return nil
}

func (f *fakeRepository) DeleteTranslation(_ context.Context, chapterID, languageCode string) error {
	key := chapterID + "|" + languageCode
	if _, ok := f.translations[key]; !ok {
		return apperr.NotFound("Translation")
	}
	delete(f.translations, key)
	return nil
}

// fakeNovels resolves original languages from a fixed set.
type fakeNovels struct{ originalLang map[string]string }

func (f *fakeNovels) OriginalLanguage(_ context.Context, novelID string) (string, error) {
	lang, ok := f.originalLang[novelID]
	if !ok {
		return "", apperr.NotFound("Novel")
	}
	return lang, nil
}

// fakeLanguages answers IsActive from a fixed set.
type fakeLanguages struct{ active map[string]bool }

func (f *fakeLanguages) IsActive(_ context.Context, code string) (bool, error) {
	return f.active[code], nil
}

// # Fixtures

type fixture struct {
	repo    *fakeRepository
	service *chapter.Service
	novelID string
}

func newFixture() *fixture {
	repo := newFakeRepository()
	repo.activeLangs["en"] = true
	repo.activeLangs["pt"] = true

	novelID := uuidv7.New()
	novels := &fakeNovels{originalLang: map[string]string{novelID: "zh"}}
	languages := &fakeLanguages{active: map[string]bool{"en": true, "pt": true}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixture{
		repo:    repo,
		service: chapter.NewService(repo, novels, languages, logger),
		novelID: novelID,
	}
}

func (fx *fixture) validChapter() *chapter.Chapter {
	return &chapter.Chapter{
		NovelID: fx.novelID,
		Number:  1,
		Title:   "第一章",
		Content: "少年站在山巅 望着远方的云海",
	}
}

// # Creation Tests

/*
TestService_CreateChapter_DerivedMetrics checks that word count and reading
time are derived from the canonical content at write time.
*/
func TestService_CreateChapter_DerivedMetrics(t *testing.T) {
	tests := []struct {
		name            string
		content         string
		wantWords       int
		wantReadingTime int
	}{
		{"short_content", "one two three four five", 5, 1},
		{"exact_page", strings.TrimSpace(strings.Repeat("word ", 200)), 200, 1},
		{"rounds_up", strings.TrimSpace(strings.Repeat("word ", 450)), 450, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture()

			c := fx.validChapter()
			c.Content = tt.content
			require.NoError(t, fx.service.CreateChapter(context.Background(), c))

			assert.Equal(t, tt.wantWords, c.WordCount)
			assert.Equal(t, tt.wantReadingTime, c.ReadingTime)
			assert.Len(t, c.ID, 36)
		})
	}
}

/*
TestService_CreateChapter_PublicationStamp checks that publishing at create
time stamps PublishedAt once.
*/
func TestService_CreateChapter_PublicationStamp(t *testing.T) {
	fx := newFixture()

	c := fx.validChapter()
	c.IsPublished = true
	require.NoError(t, fx.service.CreateChapter(context.Background(), c))

	assert.NotNil(t, c.PublishedAt)
}

/*
TestService_CreateChapter_Guards covers validation and the parent novel
existence check.
*/
func TestService_CreateChapter_Guards(t *testing.T) {
	fx := newFixture()

	t.Run("negative_number", func(t *testing.T) {
		c := fx.validChapter()
		c.Number = -1
		err := fx.service.CreateChapter(context.Background(), c)
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("missing_content", func(t *testing.T) {
		c := fx.validChapter()
		c.Content = ""
		err := fx.service.CreateChapter(context.Background(), c)
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("unknown_novel", func(t *testing.T) {
		c := fx.validChapter()
		c.NovelID = uuidv7.New()
		err := fx.service.CreateChapter(context.Background(), c)
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})
}

// # Update Tests

/*
TestService_UpdateChapter_RederivesMetrics checks that a changed canonical
content re-derives word count and reading time.
*/
func TestService_UpdateChapter_RederivesMetrics(t *testing.T) {
	fx := newFixture()

	c := fx.validChapter()
	c.Content = "five little words right here"
	require.NoError(t, fx.service.CreateChapter(context.Background(), c))
	require.Equal(t, 5, c.WordCount)

	longer := strings.TrimSpace(strings.Repeat("word ", 401))
	require.NoError(t, fx.service.UpdateChapter(context.Background(), c.ID, &chapter.Chapter{Content: longer}))

	updated, err := fx.service.GetChapter(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, 401, updated.WordCount)
	assert.Equal(t, 3, updated.ReadingTime)
}

/*
TestService_UpdateChapter_PublishOnce checks the one-way publication
transition and its timestamp.
*/
func TestService_UpdateChapter_PublishOnce(t *testing.T) {
	fx := newFixture()

	c := fx.validChapter()
	require.NoError(t, fx.service.CreateChapter(context.Background(), c))
	require.Nil(t, c.PublishedAt)

	require.NoError(t, fx.service.UpdateChapter(context.Background(), c.ID, &chapter.Chapter{IsPublished: true}))

	updated, err := fx.service.GetChapter(context.Background(), c.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsPublished)
	require.NotNil(t, updated.PublishedAt)

	// A second publish keeps the original timestamp.
	first := *updated.PublishedAt
	require.NoError(t, fx.service.UpdateChapter(context.Background(), c.ID, &chapter.Chapter{IsPublished: true}))

	updated, err = fx.service.GetChapter(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, first, *updated.PublishedAt)
}

// # Localization Tests

/*
TestService_GetLocalizedChapter checks overlay serving and the straight
overlay-to-canonical fallback (chapters carry no site-default pair).
*/
func TestService_GetLocalizedChapter(t *testing.T) {
	fx := newFixture()

	c := fx.validChapter()
	require.NoError(t, fx.service.CreateChapter(context.Background(), c))

	require.NoError(t, fx.service.UpsertTranslation(context.Background(), &chapter.Translation{
		ChapterID:    c.ID,
		LanguageCode: "en",
		Title:        pointer.To("Chapter One"),
		Content:      "The boy stood at the summit, gazing at the sea of clouds.",
	}))

	t.Run("overlay_hit", func(t *testing.T) {
		got, err := fx.service.GetLocalizedChapter(context.Background(), c.ID, "en")
		require.NoError(t, err)
		assert.Equal(t, "Chapter One", got.Localized.Title)
		assert.Equal(t, "en", got.Localized.ServedLocale)
	})

	t.Run("missing_overlay_serves_canonical", func(t *testing.T) {
		got, err := fx.service.GetLocalizedChapter(context.Background(), c.ID, "fr")
		require.NoError(t, err)
		assert.Equal(t, "第一章", got.Localized.Title)
		assert.Equal(t, "zh", got.Localized.ServedLocale)
	})

	t.Run("no_preference", func(t *testing.T) {
		got, err := fx.service.GetLocalizedChapter(context.Background(), c.ID, "")
		require.NoError(t, err)
		assert.Equal(t, "zh", got.Localized.ServedLocale)
	})
}

/*
TestService_UpsertTranslation_InactiveLanguage checks the write-time
language guard on chapter overlays.
*/
func TestService_UpsertTranslation_InactiveLanguage(t *testing.T) {
	fx := newFixture()

	c := fx.validChapter()
	require.NoError(t, fx.service.CreateChapter(context.Background(), c))

	err := fx.service.UpsertTranslation(context.Background(), &chapter.Translation{
		ChapterID:    c.ID,
		LanguageCode: "ja",
		Content:      "少年は山頂に立っていた。",
	})
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}
