// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shipora/shipora/internal/platform/apperr"
	"github.com/shipora/shipora/internal/platform/middleware"
	"github.com/shipora/shipora/internal/platform/sec"
)

// fakeVerifier maps raw token strings to canned claims or errors.
type fakeVerifier struct {
	claims map[string]*sec.AuthClaims
	err    error
}

func (f *fakeVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	if f.err != nil {
		return nil, f.err
	}
	claims, found := f.claims[tokenStr]
	if !found {
		return nil, apperr.TokenInvalid(nil)
	}
	return claims, nil
}

// okHandler records whether the request made it through the chain.
type okHandler struct{ reached bool }

func (h *okHandler) ServeHTTP(writer http.ResponseWriter, _ *http.Request) {
	h.reached = true
	writer.WriteHeader(http.StatusOK)
}

func performRequest(handler http.Handler, authHeader string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	if authHeader != "" {
		request.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

// # Authenticate

func TestAuthenticate_AnonymousPassesThrough(t *testing.T) {
	t.Parallel()

	next := &okHandler{}
	chain := middleware.Authenticate(&fakeVerifier{})(next)

	recorder := performRequest(chain, "")

	assert.True(t, next.reached, "requests without a token stay anonymous, not rejected")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestAuthenticate_MalformedHeaderRejected(t *testing.T) {
	t.Parallel()

	next := &okHandler{}
	chain := middleware.Authenticate(&fakeVerifier{})(next)

	recorder := performRequest(chain, "Token abc")

	assert.False(t, next.reached)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthenticate_ExpiredTokenSurfacesTaxonomy(t *testing.T) {
	t.Parallel()

	next := &okHandler{}
	chain := middleware.Authenticate(&fakeVerifier{err: apperr.TokenExpired()})(next)

	recorder := performRequest(chain, "Bearer stale")

	assert.False(t, next.reached)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "TOKEN_EXPIRED")
}

// # RequireRole

func TestRequireRole_EnforcesAdminGate(t *testing.T) {
	t.Parallel()

	verifier := &fakeVerifier{claims: map[string]*sec.AuthClaims{
		"user-token":  {PrincipalID: "u1", Role: string(sec.RoleUser)},
		"admin-token": {PrincipalID: "a1", Role: string(sec.RoleAdmin)},
	}}

	next := &okHandler{}
	chain := middleware.Authenticate(verifier)(middleware.RequireRole(sec.RoleAdmin)(next))

	// Anonymous → 401
	recorder := performRequest(chain, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Customer → 403
	recorder = performRequest(chain, "Bearer user-token")
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.False(t, next.reached)

	// Admin → pass
	recorder = performRequest(chain, "Bearer admin-token")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, next.reached)
}
