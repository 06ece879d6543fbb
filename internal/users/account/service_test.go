// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manovapp/manov/internal/platform/apperr"
	"github.com/manovapp/manov/internal/users/account"
	"github.com/manovapp/manov/internal/users/auth"
	"github.com/manovapp/manov/pkg/pointer"
	"github.com/manovapp/manov/pkg/uuidv7"
)

// # Test Doubles

type fakeAccountRepo struct {
	users   map[string]*auth.User
	deleted map[string]bool
}

func (f *fakeAccountRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	u, ok := f.users[id]
	if !ok || f.deleted[id] {
		return nil, apperr.NotFound("User")
	}
	return u, nil
}

func (f *fakeAccountRepo) Update(_ context.Context, user *auth.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeAccountRepo) SoftDelete(_ context.Context, id string) error {
	f.deleted[id] = true
	return nil
}

type fakePreferencesRepo struct {
	prefs map[string]*account.Preferences
}

func (f *fakePreferencesRepo) FindByUserID(_ context.Context, userID string) (*account.Preferences, error) {
	p, ok := f.prefs[userID]
	if !ok {
		return nil, apperr.NotFound("Preferences")
	}
	return p, nil
}

func (f *fakePreferencesRepo) Upsert(_ context.Context, prefs *account.Preferences) error {
	f.prefs[prefs.UserID] = prefs
	return nil
}

type fakeSessionRepo struct {
	sessions   map[string][]account.SessionInfo
	revokedAll []string
}

func (f *fakeSessionRepo) FindActiveByUserID(_ context.Context, userID string) ([]account.SessionInfo, error) {
	return f.sessions[userID], nil
}

func (f *fakeSessionRepo) Revoke(_ context.Context, userID, sessionID string) error {
	kept := []account.SessionInfo{}
	found := false
	for _, s := range f.sessions[userID] {
		if s.ID == sessionID {
			found = true
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		return apperr.NotFound("Session")
	}
	f.sessions[userID] = kept
	return nil
}

func (f *fakeSessionRepo) RevokeOthers(_ context.Context, userID, currentSessionID string) error {
	kept := []account.SessionInfo{}
	for _, s := range f.sessions[userID] {
		if s.ID == currentSessionID {
			kept = append(kept, s)
		}
	}
	f.sessions[userID] = kept
	return nil
}

func (f *fakeSessionRepo) RevokeAll(_ context.Context, userID string) error {
	f.sessions[userID] = nil
	f.revokedAll = append(f.revokedAll, userID)
	return nil
}

// # Fixtures

type fixture struct {
	accounts *fakeAccountRepo
	prefs    *fakePreferencesRepo
	sessions *fakeSessionRepo
	service  *account.Service
	userID   string
}

func newFixture() *fixture {
	userID := uuidv7.New()

	accounts := &fakeAccountRepo{
		users: map[string]*auth.User{
			userID: {ID: userID, Username: "reader01", Email: "reader01@example.com", DisplayName: "Reader"},
		},
		deleted: map[string]bool{},
	}
	prefs := &fakePreferencesRepo{prefs: map[string]*account.Preferences{}}
	sessions := &fakeSessionRepo{sessions: map[string][]account.SessionInfo{}}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		accounts: accounts,
		prefs:    prefs,
		sessions: sessions,
		service:  account.NewService(accounts, prefs, sessions, logger),
		userID:   userID,
	}
}

// # Profile Tests

/*
TestService_UpdateProfile applies a partial delta and leaves untouched
fields alone.
*/
func TestService_UpdateProfile(t *testing.T) {
	fx := newFixture()

	updated, err := fx.service.UpdateProfile(context.Background(), fx.userID, account.UpdateProfileInput{
		Bio:     pointer.To("Long-time wuxia reader."),
		Website: pointer.To("https://example.com"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Reader", updated.DisplayName)
	assert.Equal(t, "Long-time wuxia reader.", updated.Bio)
	assert.Equal(t, "https://example.com", updated.Website)
}

/*
TestService_DeleteAccount checks the soft-delete plus the forced global
sign-out.
*/
func TestService_DeleteAccount(t *testing.T) {
	fx := newFixture()

	require.NoError(t, fx.service.DeleteAccount(context.Background(), fx.userID))

	assert.True(t, fx.accounts.deleted[fx.userID])
	assert.Contains(t, fx.sessions.revokedAll, fx.userID)

	_, err := fx.service.GetProfile(context.Background(), fx.userID)
	require.Error(t, err)
}

// # Preferences Tests

/*
TestService_GetPreferences_Defaults checks that a user with no stored row
receives the system-wide reader defaults instead of NotFound.
*/
func TestService_GetPreferences_Defaults(t *testing.T) {
	fx := newFixture()

	prefs, err := fx.service.GetPreferences(context.Background(), fx.userID)
	require.NoError(t, err)

	assert.Equal(t, fx.userID, prefs.UserID)
	assert.Equal(t, "light", prefs.Theme)
	assert.Equal(t, 16, prefs.FontSize)
	assert.Equal(t, "serif", prefs.FontFamily)
	assert.InDelta(t, 1.5, prefs.LineSpacing, 0.001)
}

/*
TestService_UpdatePreferences persists settings and serves them back.
*/
func TestService_UpdatePreferences(t *testing.T) {
	fx := newFixture()

	input := &account.Preferences{
		UserID:            fx.userID,
		Theme:             "dark",
		FontSize:          20,
		FontFamily:        "dyslexic",
		LineSpacing:       2.0,
		PreferredLanguage: "pt",
		HideLanguages:     []string{"ja"},
	}
	require.NoError(t, fx.service.UpdatePreferences(context.Background(), input))
	assert.False(t, input.UpdatedAt.IsZero())

	stored, err := fx.service.GetPreferences(context.Background(), fx.userID)
	require.NoError(t, err)
	assert.Equal(t, "dark", stored.Theme)
	assert.Equal(t, 20, stored.FontSize)
	assert.Equal(t, "pt", stored.PreferredLanguage)
	assert.Equal(t, []string{"ja"}, stored.HideLanguages)
}

/*
TestService_PreferredLocale resolves the locale localized reads fall back
to: the stored preference when one exists, empty otherwise so the caller's
default chain takes over.
*/
func TestService_PreferredLocale(t *testing.T) {
	fx := newFixture()

	locale, err := fx.service.PreferredLocale(context.Background(), fx.userID)
	require.NoError(t, err)
	assert.Empty(t, locale)

	require.NoError(t, fx.service.UpdatePreferences(context.Background(), &account.Preferences{
		UserID:            fx.userID,
		Theme:             "dark",
		PreferredLanguage: "pt",
	}))

	locale, err = fx.service.PreferredLocale(context.Background(), fx.userID)
	require.NoError(t, err)
	assert.Equal(t, "pt", locale)
}

// # Session Tests

/*
TestService_SessionLifecycle covers listing, single revocation, and the
revoke-others sweep.
*/
func TestService_SessionLifecycle(t *testing.T) {
	fx := newFixture()

	current := account.SessionInfo{ID: uuidv7.New(), DeviceName: "Firefox on Linux"}
	other := account.SessionInfo{ID: uuidv7.New(), DeviceName: "Chrome on Android"}
	fx.sessions.sessions[fx.userID] = []account.SessionInfo{current, other}

	listed, err := fx.service.ListSessions(context.Background(), fx.userID, "")
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	require.NoError(t, fx.service.RevokeSession(context.Background(), fx.userID, other.ID))
	listed, err = fx.service.ListSessions(context.Background(), fx.userID, "")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, current.ID, listed[0].ID)

	err = fx.service.RevokeSession(context.Background(), fx.userID, other.ID)
	require.Error(t, err)

	require.NoError(t, fx.service.RevokeOtherSessions(context.Background(), fx.userID, current.ID))
	listed, err = fx.service.ListSessions(context.Background(), fx.userID, "")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, current.ID, listed[0].ID)
}
