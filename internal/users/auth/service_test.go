// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manovapp/manov/internal/platform/apperr"
	"github.com/manovapp/manov/internal/platform/sec"
	"github.com/manovapp/manov/internal/users/auth"
)

// # Test Doubles

type fakeUserRepo struct {
	users map[string]*auth.User
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepo) Create(_ context.Context, user *auth.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *auth.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, userID, newHash string) error {
	u, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	u.PasswordHash = newHash
	return nil
}

func (f *fakeUserRepo) SoftDelete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) MarkVerified(_ context.Context, userID string) error {
	u, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	u.IsVerified = true
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*auth.Session
}

func (f *fakeSessionRepo) Create(_ context.Context, session *auth.Session) error {
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	for _, s := range f.sessions {
		if s.TokenHash == tokenHash && !s.IsRevoked {
			return s, nil
		}
	}
	return nil, apperr.NotFound("Session")
}

func (f *fakeSessionRepo) Revoke(_ context.Context, sessionID string) error {
	s, ok := f.sessions[sessionID]
	if !ok {
		return apperr.NotFound("Session")
	}
	s.IsRevoked = true
	return nil
}

func (f *fakeSessionRepo) RevokeAll(_ context.Context, userID string) error {
	for _, s := range f.sessions {
		if s.UserID == userID {
			s.IsRevoked = true
		}
	}
	return nil
}

func (f *fakeSessionRepo) RevokeOthers(_ context.Context, userID, currentSessionID string) error {
	for _, s := range f.sessions {
		if s.UserID == userID && s.ID != currentSessionID {
			s.IsRevoked = true
		}
	}
	return nil
}

func (f *fakeSessionRepo) DeleteExpired(_ context.Context) error { return nil }

// fakeTokenStore doubles for both the reset and verification token repositories.
type fakeTokenStore struct {
	tokens map[string]string
}

func (f *fakeTokenStore) Set(_ context.Context, token, userID string, _ time.Duration) error {
	f.tokens[token] = userID
	return nil
}

func (f *fakeTokenStore) Get(_ context.Context, token string) (string, error) {
	userID, ok := f.tokens[token]
	if !ok {
		return "", apperr.NotFound("Token is invalid or expired")
	}
	return userID, nil
}

func (f *fakeTokenStore) Delete(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	return "signed:" + userID, nil
}

// recordingMailer captures outbound deliveries for assertion.
type recordingMailer struct {
	verifications map[string]string // email -> token
	resets        map[string]string
}

func (m *recordingMailer) SendVerification(_ context.Context, email, token string) error {
	m.verifications[email] = token
	return nil
}

func (m *recordingMailer) SendPasswordReset(_ context.Context, email, token string) error {
	m.resets[email] = token
	return nil
}

// # Fixtures

type fixture struct {
	users    *fakeUserRepo
	sessions *fakeSessionRepo
	resets   *fakeTokenStore
	verifies *fakeTokenStore
	mailer   *recordingMailer
	service  *auth.Service
}

func newFixture() *fixture {
	users := &fakeUserRepo{users: map[string]*auth.User{}}
	sessions := &fakeSessionRepo{sessions: map[string]*auth.Session{}}
	resets := &fakeTokenStore{tokens: map[string]string{}}
	verifies := &fakeTokenStore{tokens: map[string]string{}}
	mailer := &recordingMailer{verifications: map[string]string{}, resets: map[string]string{}}

	return &fixture{
		users:    users,
		sessions: sessions,
		resets:   resets,
		verifies: verifies,
		mailer:   mailer,
		service:  auth.NewService(users, sessions, resets, verifies, fakeTokenProvider{}, mailer),
	}
}

func (fx *fixture) register(t *testing.T, username, email string) *auth.User {
	t.Helper()
	user, err := fx.service.Register(context.Background(), auth.RegisterInput{
		Username:    username,
		Email:       email,
		Password:    "correct horse battery",
		DisplayName: "Reader",
	})
	require.NoError(t, err)
	return user
}

// # Registration Tests

/*
TestService_Register_DeliversVerificationToken covers the full verification
loop: registration stores a token, hands it to the mailer, and the mailed
token flips the account to verified exactly once.
*/
func TestService_Register_DeliversVerificationToken(t *testing.T) {
	fx := newFixture()

	user := fx.register(t, "reader01", "reader01@example.com")
	assert.Equal(t, sec.RoleMember, user.Role)
	assert.False(t, user.IsVerified)

	token, ok := fx.mailer.verifications["reader01@example.com"]
	require.True(t, ok, "registration must hand the verification token to the mailer")
	require.NotEmpty(t, token)
	assert.Equal(t, user.ID, fx.verifies.tokens[token], "mailed token must match the stored one")

	require.NoError(t, fx.service.VerifyEmail(context.Background(), token))
	assert.True(t, fx.users.users[user.ID].IsVerified)

	// Single use: the consumed token is gone.
	err := fx.service.VerifyEmail(context.Background(), token)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_Register_Conflicts rejects duplicate identities with a
client-safe Conflict.
*/
func TestService_Register_Conflicts(t *testing.T) {
	fx := newFixture()
	fx.register(t, "reader01", "reader01@example.com")

	_, err := fx.service.Register(context.Background(), auth.RegisterInput{
		Username: "someoneelse", Email: "reader01@example.com", Password: "p4ssw0rd-p4ssw0rd",
	})
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)

	_, err = fx.service.Register(context.Background(), auth.RegisterInput{
		Username: "reader01", Email: "other@example.com", Password: "p4ssw0rd-p4ssw0rd",
	})
	require.Error(t, err)
	ae = apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

// # Login Tests

/*
TestService_Login accepts either username or email, rejects a wrong
password, and persists a hashed refresh session.
*/
func TestService_Login(t *testing.T) {
	fx := newFixture()
	user := fx.register(t, "reader01", "reader01@example.com")

	_, err := fx.service.Login(context.Background(), auth.LoginInput{
		Login: "reader01", Password: "wrong password",
	})
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)

	session, err := fx.service.Login(context.Background(), auth.LoginInput{
		Login: "reader01@example.com", Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "signed:"+user.ID, session.AccessToken)
	require.NotEmpty(t, session.RefreshToken)

	// The raw refresh token never hits storage, only its hash does.
	stored, err := fx.sessions.FindByTokenHash(context.Background(), sec.HashToken(session.RefreshToken))
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.UserID)
}

/*
TestService_RefreshSession_Rotation checks that a used refresh token is
revoked during rotation and cannot be replayed.
*/
func TestService_RefreshSession_Rotation(t *testing.T) {
	fx := newFixture()
	fx.register(t, "reader01", "reader01@example.com")

	first, err := fx.service.Login(context.Background(), auth.LoginInput{
		Login: "reader01", Password: "correct horse battery",
	})
	require.NoError(t, err)

	second, err := fx.service.RefreshSession(context.Background(), first.RefreshToken, "ua", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// Replay of the rotated-out token must fail.
	_, err = fx.service.RefreshSession(context.Background(), first.RefreshToken, "ua", "127.0.0.1")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
}

// # Recovery Tests

/*
TestService_PasswordResetFlow covers the forgot-password loop end to end:
the mailed token resets the password and every active session is revoked.
*/
func TestService_PasswordResetFlow(t *testing.T) {
	fx := newFixture()
	fx.register(t, "reader01", "reader01@example.com")

	login, err := fx.service.Login(context.Background(), auth.LoginInput{
		Login: "reader01", Password: "correct horse battery",
	})
	require.NoError(t, err)

	token, err := fx.service.RequestPasswordReset(context.Background(), "reader01@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, token, fx.mailer.resets["reader01@example.com"])

	require.NoError(t, fx.service.ResetPassword(context.Background(), token, "a brand new secret"))

	// Old credentials and old sessions are both dead.
	_, err = fx.service.Login(context.Background(), auth.LoginInput{
		Login: "reader01", Password: "correct horse battery",
	})
	require.Error(t, err)
	_, err = fx.service.RefreshSession(context.Background(), login.RefreshToken, "ua", "127.0.0.1")
	require.Error(t, err)

	_, err = fx.service.Login(context.Background(), auth.LoginInput{
		Login: "reader01", Password: "a brand new secret",
	})
	require.NoError(t, err)
}

/*
TestService_RequestPasswordReset_UnknownEmail stays silent on unknown
addresses: no error, no token, no outbound mail.
*/
func TestService_RequestPasswordReset_UnknownEmail(t *testing.T) {
	fx := newFixture()

	token, err := fx.service.RequestPasswordReset(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, fx.mailer.resets)
}
