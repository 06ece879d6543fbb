// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package novel_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manovapp/manov/internal/core/novel"
	"github.com/manovapp/manov/internal/platform/apperr"
	"github.com/manovapp/manov/pkg/pointer"
	"github.com/manovapp/manov/pkg/uuidv7"
)

// # Test Doubles

// fakeRepository is an in-memory stand-in for the Postgres store.
type fakeRepository struct {
	novels       map[string]*novel.Novel
	slugs        map[string]string // slug -> novel ID
	translations map[string]*novel.Translation
	activeLangs  map[string]bool

	// createFailures is drained one error per Create call before success.
	createFailures []error
	createCalls    int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		novels:       map[string]*novel.Novel{},
		slugs:        map[string]string{},
		translations: map[string]*novel.Translation{},
		activeLangs:  map[string]bool{},
	}
}

func (f *fakeRepository) seed(n *novel.Novel) {
	f.novels[n.ID] = n
	f.slugs[n.Slug] = n.ID
}

func (f *fakeRepository) List(_ context.Context, _ novel.Filter, _, _ int) ([]*novel.Novel, int, error) {
	out := make([]*novel.Novel, 0, len(f.novels))
	for _, n := range f.novels {
		out = append(out, n)
	}
	return out, len(out), nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*novel.Novel, error) {
	n, ok := f.novels[id]
	if !ok {
		return nil, apperr.NotFound("Novel")
	}
	return n, nil
}

func (f *fakeRepository) FindBySlug(_ context.Context, slug string) (*novel.Novel, error) {
	id, ok := f.slugs[slug]
	if !ok {
		return nil, apperr.NotFound("Novel")
	}
	return f.novels[id], nil
}

func (f *fakeRepository) SlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	id, ok := f.slugs[slug]
	return ok && id != excludeID, nil
}

func (f *fakeRepository) Create(_ context.Context, n *novel.Novel) error {
	f.createCalls++
	if len(f.createFailures) > 0 {
		err := f.createFailures[0]
		f.createFailures = f.createFailures[1:]
		return err
	}
	f.seed(n)
	return nil
}

func (f *fakeRepository) Update(_ context.Context, n *novel.Novel) error {
	if _, ok := f.novels[n.ID]; !ok {
		return apperr.NotFound("Novel")
	}
	f.novels[n.ID] = n
	f.slugs[n.Slug] = n.ID
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.novels[id]; !ok {
		return apperr.NotFound("Novel")
	}
	delete(f.novels, id)
	return nil
}

func (f *fakeRepository) FindTranslation(_ context.Context, novelID, languageCode string) (*novel.Translation, bool, error) {
	t, ok := f.translations[novelID+"|"+languageCode]
	if !ok {
		return nil, false, apperr.NotFound("Translation")
	}
	return t, f.activeLangs[languageCode], nil
}

func (f *fakeRepository) ListTranslations(_ context.Context, novelID string) ([]*novel.Translation, error) {
	out := []*novel.Translation{}
	for _, t := range f.translations {
		if t.NovelID == novelID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRepository) UpsertTranslation(_ context.Context, t *novel.Translation) error {
	f.translations[t.NovelID+"|"+t.LanguageCode] = t
	return nil
}

func (f *fakeRepository) DeleteTranslation(_ context.Context, novelID, languageCode string) error {
	key := novelID + "|" + languageCode
	if _, ok := f.translations[key]; !ok {
		return apperr.NotFound("Translation")
	}
	delete(f.translations, key)
	return nil
}

// fakeLanguages answers IsActive from a fixed set.
type fakeLanguages struct{ active map[string]bool }

func (f *fakeLanguages) IsActive(_ context.Context, code string) (bool, error) {
	return f.active[code], nil
}

// fakeAuthors answers Exists from a fixed set.
type fakeAuthors struct{ ids map[string]bool }

func (f *fakeAuthors) Exists(_ context.Context, id string) (bool, error) {
	return f.ids[id], nil
}

// # Fixtures

var testAuthorID = uuidv7.New()

func newTestService(repo *fakeRepository) *novel.Service {
	repo.activeLangs["zh"] = true
	repo.activeLangs["en"] = true
	repo.activeLangs["pt"] = true

	languages := &fakeLanguages{active: map[string]bool{"zh": true, "en": true, "pt": true}}
	authors := &fakeAuthors{ids: map[string]bool{testAuthorID: true}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return novel.NewService(repo, languages, authors, "en", logger)
}

func validNovel() *novel.Novel {
	return &novel.Novel{
		AuthorID:         testAuthorID,
		Title:            "Martial Peak",
		Synopsis:         "The journey to the martial peak is a lonely one.",
		OriginalLanguage: "zh",
	}
}

// # Creation Tests

/*
TestService_CreateNovel_Defaults checks identity generation and lifecycle
state defaults on a minimal valid create.
*/
func TestService_CreateNovel_Defaults(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	n := validNovel()
	require.NoError(t, service.CreateNovel(context.Background(), n))

	assert.Len(t, n.ID, 36)
	assert.Equal(t, "martial-peak", n.Slug)
	assert.Equal(t, novel.PublicationOngoing, n.PublicationStatus)
	assert.Equal(t, novel.TranslationActive, n.TranslationStatus)
	assert.NotNil(t, n.GenreTags)
}

/*
TestService_CreateNovel_SlugSequence checks that colliding titles receive
numbered suffixes in order.
*/
func TestService_CreateNovel_SlugSequence(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	slugs := make([]string, 0, 3)
	for range 3 {
		n := validNovel()
		require.NoError(t, service.CreateNovel(context.Background(), n))
		slugs = append(slugs, n.Slug)
	}

	assert.Equal(t, []string{"martial-peak", "martial-peak-2", "martial-peak-3"}, slugs)
}

/*
TestService_CreateNovel_SlugFromTranslatedTitle checks that the site-default
translated title drives slug derivation when present.
*/
func TestService_CreateNovel_SlugFromTranslatedTitle(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	n := validNovel()
	n.Title = "武道巅峰"
	n.TitleTranslated = pointer.To("Martial Peak")
	require.NoError(t, service.CreateNovel(context.Background(), n))

	assert.Equal(t, "martial-peak", n.Slug)
}

/*
TestService_CreateNovel_UntitledSlugFallback checks the time-seeded
placeholder for titles that sanitize to nothing.
*/
func TestService_CreateNovel_UntitledSlugFallback(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	n := validNovel()
	n.Title = "源"
	require.NoError(t, service.CreateNovel(context.Background(), n))

	assert.True(t, strings.HasPrefix(n.Slug, "novel-"), "got slug %q", n.Slug)
}

/*
TestService_CreateNovel_RetriesOnSlugRace simulates the slug unique
constraint firing under concurrent creation: the insert must be retried
with a regenerated slug rather than surfacing a Conflict.
*/
func TestService_CreateNovel_RetriesOnSlugRace(t *testing.T) {
	repo := newFakeRepository()
	repo.createFailures = []error{
		&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "novel_slug_key"},
	}
	service := newTestService(repo)

	n := validNovel()
	require.NoError(t, service.CreateNovel(context.Background(), n))

	assert.Equal(t, 2, repo.createCalls)
	assert.NotEmpty(t, n.Slug)
}

/*
TestService_CreateNovel_Validation covers the required-field and attribute
rules on the create path.
*/
func TestService_CreateNovel_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(n *novel.Novel)
		field  string
	}{
		{"missing_title", func(n *novel.Novel) { n.Title = "" }, novel.FieldTitle},
		{"missing_author", func(n *novel.Novel) { n.AuthorID = "" }, novel.FieldAuthorID},
		{"missing_language", func(n *novel.Novel) { n.OriginalLanguage = "" }, novel.FieldOriginalLanguage},
		{"bad_cover_url", func(n *novel.Novel) { n.CoverURL = pointer.To("not a url") }, novel.FieldCoverURL},
		{"unknown_status", func(n *novel.Novel) { n.PublicationStatus = "cancelled" }, novel.FieldStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			service := newTestService(repo)

			n := validNovel()
			tt.mutate(n)

			err := service.CreateNovel(context.Background(), n)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			assert.Equal(t, tt.field, ae.Details[0].Field)
		})
	}
}

/*
TestService_CreateNovel_ReferenceChecks checks the author-existence and
language-activity guards.
*/
func TestService_CreateNovel_ReferenceChecks(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	t.Run("unknown_author", func(t *testing.T) {
		n := validNovel()
		n.AuthorID = uuidv7.New()

		err := service.CreateNovel(context.Background(), n)
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})

	t.Run("inactive_language", func(t *testing.T) {
		n := validNovel()
		n.OriginalLanguage = "ja"

		err := service.CreateNovel(context.Background(), n)
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})
}

// # Update Tests

/*
TestService_UpdateNovel_SlugRegeneration checks the regeneration rules: a
changed translated title always wins; a changed original title only
regenerates when no translated title exists.
*/
func TestService_UpdateNovel_SlugRegeneration(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	n := validNovel()
	require.NoError(t, service.CreateNovel(context.Background(), n))
	require.Equal(t, "martial-peak", n.Slug)

	// Changed translated title regenerates.
	err := service.UpdateNovel(context.Background(), n.ID, &novel.Novel{
		TitleTranslated: pointer.To("Peak of Martial Arts"),
	})
	require.NoError(t, err)

	updated, err := service.GetNovel(context.Background(), n.ID)
	require.NoError(t, err)
	assert.Equal(t, "peak-of-martial-arts", updated.Slug)

	// Changed original title is ignored once a translated title exists.
	err = service.UpdateNovel(context.Background(), n.ID, &novel.Novel{Title: "武道巅峰"})
	require.NoError(t, err)

	updated, err = service.GetNovel(context.Background(), n.ID)
	require.NoError(t, err)
	assert.Equal(t, "peak-of-martial-arts", updated.Slug)
	assert.Equal(t, "武道巅峰", updated.Title)
}

// # Localization Tests

/*
TestService_GetLocalizedNovel checks the resolution outcomes through the
service: overlay hit, site-default fallback and canonical serving.
*/
func TestService_GetLocalizedNovel(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	n := validNovel()
	n.Title = "源"
	n.Synopsis = "中文简介"
	n.TitleTranslated = pointer.To("Origin")
	n.SynopsisTranslated = pointer.To("English synopsis")
	require.NoError(t, service.CreateNovel(context.Background(), n))

	translation := &novel.Translation{
		NovelID:      n.ID,
		LanguageCode: "pt",
		Title:        pointer.To("Origem"),
		Synopsis:     "Sinopse em português",
	}
	require.NoError(t, service.UpsertTranslation(context.Background(), translation))

	tests := []struct {
		name       string
		locale     string
		wantTitle  string
		wantLocale string
	}{
		{"overlay_hit", "pt", "Origem", "pt"},
		{"original_language", "zh", "源", "zh"},
		{"site_default_fallback", "de", "Origin", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.GetLocalizedNovel(context.Background(), n.ID, tt.locale)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, got.Localized.Title)
			assert.Equal(t, tt.wantLocale, got.Localized.ServedLocale)
		})
	}

	t.Run("lookup_by_slug", func(t *testing.T) {
		got, err := service.GetLocalizedNovel(context.Background(), n.Slug, "pt")
		require.NoError(t, err)
		assert.Equal(t, n.ID, got.ID)
		assert.Equal(t, "Origem", got.Localized.Title)
	})
}

/*
TestService_UpsertTranslation_Guards checks the write-time guards on
translation overlays.
*/
func TestService_UpsertTranslation_Guards(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	n := validNovel()
	require.NoError(t, service.CreateNovel(context.Background(), n))

	t.Run("inactive_language", func(t *testing.T) {
		err := service.UpsertTranslation(context.Background(), &novel.Translation{
			NovelID:      n.ID,
			LanguageCode: "ja",
			Synopsis:     "日本語のあらすじ",
		})
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("missing_synopsis", func(t *testing.T) {
		err := service.UpsertTranslation(context.Background(), &novel.Translation{
			NovelID:      n.ID,
			LanguageCode: "pt",
		})
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("unknown_novel", func(t *testing.T) {
		err := service.UpsertTranslation(context.Background(), &novel.Translation{
			NovelID:      uuidv7.New(),
			LanguageCode: "pt",
			Synopsis:     "Sinopse",
		})
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})
}
