// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

package ctxutil_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipora/shipora/internal/platform/ctxutil"
	"github.com/shipora/shipora/internal/platform/sec"
)

func TestRequestID_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := ctxutil.WithRequestID(context.Background(), "req-42")
	assert.Equal(t, "req-42", ctxutil.GetRequestID(ctx))
}

func TestRequestID_Missing(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ctxutil.GetRequestID(context.Background()))
}

func TestLogger_RoundTrip(t *testing.T) {
	t.Parallel()

	logger := slog.Default().With(slog.String("test", "ctxutil"))
	ctx := ctxutil.WithLogger(context.Background(), logger)

	assert.Same(t, logger, ctxutil.GetLogger(ctx))
}

func TestLogger_FallsBackToDefault(t *testing.T) {
	t.Parallel()

	// An empty context must never yield a nil logger.
	require.NotNil(t, ctxutil.GetLogger(context.Background()))
}

func TestPrincipal_RoundTrip(t *testing.T) {
	t.Parallel()

	claims := &sec.AuthClaims{PrincipalID: "p-1", Email: "a@b.c", Role: "admin"}
	ctx := ctxutil.WithPrincipal(context.Background(), claims)

	got := ctxutil.GetPrincipal(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "p-1", got.PrincipalID)
	assert.Equal(t, "admin", got.Role)
}

func TestPrincipal_Anonymous(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ctxutil.GetPrincipal(context.Background()))
}
