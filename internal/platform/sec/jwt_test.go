// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipora/shipora/internal/platform/apperr"
	"github.com/shipora/shipora/internal/platform/sec"
)

/*
TestTokenService_RoundTrip checks that issued claims survive verification intact.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	t.Parallel()

	service, err := sec.NewTokenService("test-secret", "shipora.app")
	require.NoError(t, err)

	token, err := service.IssueToken("user-123", "test@example.com", "user", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.PrincipalID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "shipora.app", claims.Issuer)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

/*
TestTokenService_Expired verifies that an out-of-date token maps to TOKEN_EXPIRED.
*/
func TestTokenService_Expired(t *testing.T) {
	t.Parallel()

	service, err := sec.NewTokenService("test-secret", "shipora.app")
	require.NoError(t, err)

	token, err := service.IssueToken("user-123", "test@example.com", "user", -1*time.Second)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "TOKEN_EXPIRED"))
}

/*
TestTokenService_WrongSecret verifies that a signature mismatch maps to TOKEN_INVALID.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	t.Parallel()

	issuing, err := sec.NewTokenService("right-secret", "shipora.app")
	require.NoError(t, err)

	verifying, err := sec.NewTokenService("wrong-secret", "shipora.app")
	require.NoError(t, err)

	token, err := issuing.IssueToken("user-123", "test@example.com", "user", time.Hour)
	require.NoError(t, err)

	_, err = verifying.VerifyToken(token)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "TOKEN_INVALID"))
}

/*
TestTokenService_Malformed checks rejection of strings that are not tokens at all.
*/
func TestTokenService_Malformed(t *testing.T) {
	t.Parallel()

	service, err := sec.NewTokenService("test-secret", "shipora.app")
	require.NoError(t, err)

	for _, bad := range []string{"", "not.a.token", "a.b"} {
		_, err := service.VerifyToken(bad)
		require.Error(t, err, "input %q", bad)
		assert.True(t, apperr.IsCode(err, "TOKEN_INVALID"))
	}
}

/*
TestNewTokenService_EmptySecret ensures startup-level rejection of a missing secret.
*/
func TestNewTokenService_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := sec.NewTokenService("", "shipora.app")
	assert.Error(t, err)
}

/*
TestRole_AtLeast exercises the two-role hierarchy used by route guards.
*/
func TestRole_AtLeast(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		role     sec.Role
		target   sec.Role
		expected bool
	}{
		{"admin_meets_admin", sec.RoleAdmin, sec.RoleAdmin, true},
		{"admin_meets_user", sec.RoleAdmin, sec.RoleUser, true},
		{"user_below_admin", sec.RoleUser, sec.RoleAdmin, false},
		{"user_meets_user", sec.RoleUser, sec.RoleUser, true},
		{"unknown_below_user", sec.Role("ghost"), sec.RoleUser, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.role.AtLeast(tt.target))
		})
	}
}
