// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package requestutil_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manovapp/manov/internal/platform/ctxutil"
	requestutil "github.com/manovapp/manov/internal/platform/request"
	"github.com/manovapp/manov/internal/platform/sec"
)

type fakeLocaleSource struct {
	locales map[string]string
	err     error
}

func (f *fakeLocaleSource) PreferredLocale(_ context.Context, userID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.locales[userID], nil
}

func newLocaleRequest(target string, claims *sec.AuthClaims) *http.Request {
	request := httptest.NewRequest(http.MethodGet, target, nil)
	if claims != nil {
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
	}
	return request
}

/*
TestLocale resolves the serving locale: explicit query parameter first,
then the authenticated user's stored preference, and empty whenever
neither applies so the caller's default chain decides.
*/
func TestLocale(t *testing.T) {
	source := &fakeLocaleSource{locales: map[string]string{"user-1": "pt"}}
	claims := &sec.AuthClaims{UserID: "user-1"}

	tests := []struct {
		name   string
		target string
		claims *sec.AuthClaims
		source requestutil.LocaleSource
		want   string
	}{
		{"explicit query wins", "/novels/x?locale=zh", claims, source, "zh"},
		{"stored preference fallback", "/novels/x", claims, source, "pt"},
		{"anonymous request", "/novels/x", nil, source, ""},
		{"nil source", "/novels/x", claims, nil, ""},
		{"no stored preference", "/novels/x", &sec.AuthClaims{UserID: "user-2"}, source, ""},
		{"lookup failure swallowed", "/novels/x", claims, &fakeLocaleSource{err: errors.New("down")}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := requestutil.Locale(newLocaleRequest(tt.target, tt.claims), tt.source)
			assert.Equal(t, tt.want, got)
		})
	}
}
