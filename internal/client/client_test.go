// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipora/shipora/internal/client"
)

// newTestClient wires a client to a test server with the retry pause
// collapsed to zero.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*client.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sdk := client.New(server.URL, client.WithSleeper(func(time.Duration) {}))
	return sdk, server
}

// # Tracking Retry

func TestTrackShipment_RetriesNotFoundThenSucceeds(t *testing.T) {
	t.Parallel()

	calls := 0
	sdk, _ := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		calls++
		assert.Equal(t, "/api/tracking/SPR-0123456789", request.URL.Path)

		if calls < 3 {
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"error":"Tracking ID not found","code":"NOT_FOUND"}`))
			return
		}

		_, _ = writer.Write([]byte(`{"data":{"tracking_id":"SPR-0123456789","status":"in_transit"}}`))
	})

	record, err := sdk.TrackShipment(context.Background(), "SPR-0123456789")
	require.NoError(t, err)
	assert.Equal(t, 3, calls, "two not-founds then a hit takes exactly three attempts")
	assert.Equal(t, "in_transit", record.Status)
}

func TestTrackShipment_ExhaustsAttemptsOnNotFound(t *testing.T) {
	t.Parallel()

	calls := 0
	sdk, _ := newTestClient(t, func(writer http.ResponseWriter, _ *http.Request) {
		calls++
		writer.WriteHeader(http.StatusNotFound)
		_, _ = writer.Write([]byte(`{"error":"Tracking ID not found","code":"NOT_FOUND"}`))
	})

	record, err := sdk.TrackShipment(context.Background(), "SPR-ZZZZZZZZZZ")
	require.Error(t, err)
	assert.Nil(t, record)
	assert.Equal(t, client.MaxTrackAttempts, calls)
	assert.True(t, client.IsNotFound(err), "the final not-found surfaces unchanged")
}

func TestTrackShipment_ServerErrorIsFinal(t *testing.T) {
	t.Parallel()

	calls := 0
	sdk, _ := newTestClient(t, func(writer http.ResponseWriter, _ *http.Request) {
		calls++
		writer.WriteHeader(http.StatusInternalServerError)
		_, _ = writer.Write([]byte(`{"error":"Something went wrong","code":"INTERNAL_ERROR"}`))
	})

	_, err := sdk.TrackShipment(context.Background(), "SPR-0123456789")
	require.Error(t, err)
	assert.Equal(t, 1, calls, "only the business not-found may retry")

	apiError, ok := err.(*client.APIError)
	require.True(t, ok)
	assert.Equal(t, "INTERNAL_ERROR", apiError.Code)
}

func TestTrackShipment_TransportErrorIsFinal(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // connection refused from here on

	sdk := client.New(server.URL, client.WithSleeper(func(time.Duration) {}))

	_, err := sdk.TrackShipment(context.Background(), "SPR-0123456789")
	require.Error(t, err)
	assert.False(t, client.IsNotFound(err))
	assert.ErrorContains(t, err, "client_transport_failed")
}

func TestTrackShipment_MalformedBodyIsFinal(t *testing.T) {
	t.Parallel()

	calls := 0
	sdk, _ := newTestClient(t, func(writer http.ResponseWriter, _ *http.Request) {
		calls++
		_, _ = writer.Write([]byte(`{"data": not-json`))
	})

	_, err := sdk.TrackShipment(context.Background(), "SPR-0123456789")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.ErrorContains(t, err, "client_decode_envelope_failed")
}

func TestTrackShipment_SleepsBetweenAttempts(t *testing.T) {
	t.Parallel()

	pauses := []time.Duration{}
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
		_, _ = writer.Write([]byte(`{"error":"Tracking ID not found","code":"NOT_FOUND"}`))
	}))
	t.Cleanup(server.Close)

	sdk := client.New(server.URL, client.WithSleeper(func(d time.Duration) {
		pauses = append(pauses, d)
	}))

	_, err := sdk.TrackShipment(context.Background(), "SPR-0123456789")
	require.Error(t, err)

	// Two pauses between three attempts, each at the fixed delay.
	require.Len(t, pauses, client.MaxTrackAttempts-1)
	for _, pause := range pauses {
		assert.Equal(t, client.TrackRetryDelay, pause)
	}
}

// # Credential Calls

func TestLogin_DecodesSession(t *testing.T) {
	t.Parallel()

	sdk, _ := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/api/auth/login", request.URL.Path)
		_, _ = writer.Write([]byte(`{"data":{"token":"tok-1","principal":{"id":"p1","email":"a@b.c","role":"user"}}}`))
	})

	session, err := sdk.Login(context.Background(), "a@b.c", "password123")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", session.Token)
	assert.Equal(t, "user", session.Principal.Role)
}

func TestLogin_SurfacesBusinessError(t *testing.T) {
	t.Parallel()

	sdk, _ := newTestClient(t, func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusBadRequest)
		_, _ = writer.Write([]byte(`{"error":"Invalid email or password","code":"INVALID_CREDENTIALS"}`))
	})

	_, err := sdk.Login(context.Background(), "a@b.c", "wrong")
	require.Error(t, err)

	apiError, ok := err.(*client.APIError)
	require.True(t, ok)
	assert.Equal(t, "INVALID_CREDENTIALS", apiError.Code)
	assert.Equal(t, http.StatusBadRequest, apiError.HTTPStatus)
}

func TestMe_SendsBearerToken(t *testing.T) {
	t.Parallel()

	sdk, _ := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "Bearer tok-9", request.Header.Get("Authorization"))
		_, _ = writer.Write([]byte(`{"data":{"id":"p9","name":"Ada","email":"ada@example.com","role":"admin"}}`))
	})

	profile, err := sdk.Me(context.Background(), "tok-9")
	require.NoError(t, err)
	assert.Equal(t, "admin", profile.Role)
}
