// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/manovapp/manov/internal/platform/apperr"
	"github.com/manovapp/manov/internal/platform/ctxutil"
	"github.com/manovapp/manov/internal/platform/sec"
	"github.com/manovapp/manov/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter (UUID/Slug) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {

	// Get user claims
	claims := ctxutil.GetAuthUser(request.Context())

	// If the user is not authenticated, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return claims, nil
}

// LocaleSource reports a user's stored reading locale. An empty locale
// means the user keeps the site default.
type LocaleSource interface {
	PreferredLocale(ctx context.Context, userID string) (string, error)
}

/*
Locale resolves the locale a localized read should serve.

Description: An explicit `locale` query parameter always wins. Without
one, an authenticated request falls back to the user's stored reading
preference. Anonymous requests, a nil source, and lookup failures all
resolve to empty, leaving the service's own default chain in charge.

Parameters:
  - request: *http.Request
  - source: LocaleSource (may be nil)

Returns:
  - string: Locale code, empty when nothing applies
*/
func Locale(request *http.Request, source LocaleSource) string {
	if locale := request.URL.Query().Get("locale"); locale != "" {
		return locale
	}

	claims := Claims(request)
	if claims == nil || source == nil {
		return ""
	}

	locale, err := source.PreferredLocale(request.Context(), claims.UserID)
	if err != nil {
		return ""
	}
	return locale
}

/*
RequiredUserID returns the User ID of the currently logged-in user.

Returns:
  - string: User UUID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {

	// Get user claims
	claims, err := RequiredClaims(request)

	// If the user is not authenticated, return an error
	if err != nil {
		return "", err
	}

	return claims.UserID, nil
}
