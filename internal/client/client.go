// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

/*
Package client is the Go SDK for the Shipora API, used by the shipctl CLI
and by integration tooling.

# Architecture

The client mirrors the server's envelope contract: success payloads arrive
under "data", failures under {"error","code"}. Business errors surface as
[*APIError] so callers can branch on the machine code; transport failures
stay ordinary wrapped errors.

# Retry Contract

Only the tracking lookup retries, and only on the NOT_FOUND business error:
a parcel freshly registered at a depot may take a moment to appear. Three
attempts, fixed one-second spacing, everything else propagates immediately.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// # Retry Policy

const (
	// MaxTrackAttempts bounds the tracking lookup retry loop.
	MaxTrackAttempts = 3

	// TrackRetryDelay is the fixed pause between tracking attempts.
	TrackRetryDelay = 1 * time.Second
)

// # Wire Types

// Profile is the public principal shape returned by the API.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session is the payload of a successful register or login call.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Principal Profile   `json:"principal"`
}

// TrackingRecord is the public shipment shape returned by the tracking lookup.
type TrackingRecord struct {
	TrackingID        string     `json:"tracking_id"`
	Origin            string     `json:"origin"`
	Destination       string     `json:"destination"`
	CurrentLocation   string     `json:"current_location"`
	Status            string     `json:"status"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
	History           []struct {
		Status    string    `json:"status"`
		Location  string    `json:"location"`
		Note      string    `json:"note,omitempty"`
		Timestamp time.Time `json:"timestamp"`
	} `json:"history"`
}

// APIError is a business error decoded from the server's error envelope.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"error"`
	HTTPStatus int    `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsNotFound reports whether err is the API's NOT_FOUND business error.
func IsNotFound(err error) bool {
	apiError, ok := err.(*APIError)
	return ok && apiError.Code == "NOT_FOUND"
}

// # Client

// Client talks to one Shipora API server.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// sleep is indirected so tests can collapse the retry delay.
	sleep func(time.Duration)
}

// Option customizes a [Client].
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithSleeper replaces the inter-attempt pause, used by tests.
func WithSleeper(sleep func(time.Duration)) Option {
	return func(c *Client) { c.sleep = sleep }
}

// New creates a [Client] for the given base URL (scheme and host, no path).
func New(baseURL string, options ...Option) *Client {
	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		sleep:      time.Sleep,
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// # Credential Calls

// Register creates a customer account and returns its first session.
func (client *Client) Register(context context.Context, name, email, phone, password string) (*Session, error) {
	session := &Session{}
	err := client.post(context, "/api/auth/register", map[string]string{
		"name": name, "email": email, "phone": phone, "password": password,
	}, session)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Login authenticates against the customer store.
func (client *Client) Login(context context.Context, email, password string) (*Session, error) {
	session := &Session{}
	err := client.post(context, "/api/auth/login", map[string]string{
		"email": email, "password": password,
	}, session)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// AdminLogin authenticates against the admin store.
func (client *Client) AdminLogin(context context.Context, email, password string) (*Session, error) {
	session := &Session{}
	err := client.post(context, "/api/auth/admin/login", map[string]string{
		"email": email, "password": password,
	}, session)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Me returns the profile behind a session token.
func (client *Client) Me(context context.Context, token string) (*Profile, error) {
	profile := &Profile{}
	if err := client.get(context, "/api/auth/me", token, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// # Tracking Lookup

/*
TrackShipment resolves a tracking reference with bounded retry.

Description: Performs at most [MaxTrackAttempts] lookups. Only the NOT_FOUND
business error triggers another attempt, after a fixed [TrackRetryDelay]
pause; transport failures, server errors, and malformed bodies propagate
immediately. A success short-circuits; after the final not-found the last
error is surfaced unchanged.

Parameters:
  - context: context.Context (passed through; no extra cancellation logic)
  - trackingID: string

Returns:
  - *TrackingRecord: Resolved shipment record
  - error: *APIError (business) or wrapped transport error
*/
func (client *Client) TrackShipment(context context.Context, trackingID string) (*TrackingRecord, error) {
	var lastErr error

	for attempt := 1; attempt <= MaxTrackAttempts; attempt++ {
		record := &TrackingRecord{}
		err := client.get(context, "/api/tracking/"+trackingID, "", record)
		if err == nil {
			return record, nil
		}

		// Retry is reserved for the business not-found; everything else is final.
		if !IsNotFound(err) {
			return nil, err
		}

		lastErr = err
		if attempt < MaxTrackAttempts {
			client.sleep(TrackRetryDelay)
		}
	}

	return nil, lastErr
}

// # Transport Plumbing

// get issues a GET request and decodes the success envelope into target.
func (client *Client) get(context context.Context, path, token string, target interface{}) error {
	request, err := http.NewRequestWithContext(context, http.MethodGet, client.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("client_request_build_failed: %w", err)
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	return client.do(request, target)
}

// post issues a JSON POST request and decodes the success envelope into target.
func (client *Client) post(context context.Context, path string, body interface{}, target interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("client_request_encode_failed: %w", err)
	}

	request, err := http.NewRequestWithContext(context, http.MethodPost, client.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("client_request_build_failed: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	return client.do(request, target)
}

// do executes the request and maps the response envelopes.
func (client *Client) do(request *http.Request, target interface{}) error {
	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("client_transport_failed: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("client_read_body_failed: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		envelope := struct {
			Data json.RawMessage `json:"data"`
		}{}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return fmt.Errorf("client_decode_envelope_failed: %w", err)
		}
		if target != nil {
			if err := json.Unmarshal(envelope.Data, target); err != nil {
				return fmt.Errorf("client_decode_payload_failed: %w", err)
			}
		}
		return nil
	}

	apiError := &APIError{HTTPStatus: response.StatusCode}
	if err := json.Unmarshal(body, apiError); err != nil || apiError.Code == "" {
		// A non-JSON failure body is a transport-level problem, not a business error.
		return fmt.Errorf("client_unexpected_status_%d: %s", response.StatusCode, string(body))
	}

	return apiError
}
