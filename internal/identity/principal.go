// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

/*
Package identity implements the principal and session management layer.

It defines the core domain entity (Principal) and the logic for credential
registration, login, and session token verification.

# Architecture

This layer is the "Truth" of the system. Customers and administrators are the
same entity shape held in two disjoint stores: an email registered in one
store says nothing about the other, and a login attempt only ever consults
the store matching the requested principal kind.
*/
package identity

import (
	"time"

	"github.com/shipora/shipora/internal/platform/sec"
)

// # Domain Entities

// Principal represents an authenticated actor: a customer or an administrator.
type Principal struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"` // Customers only; admins leave it empty.
	PasswordHash string    `json:"-"`               // Explicitly omitted from JSON for security.
	Role         sec.Role  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session represents an issued session token and its fixed expiry.
//
// There is no server-side session record: the token itself is the session,
// and it cannot be revoked or extended once issued.
type Session struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	Principal *Principal `json:"principal"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the identity domain.
const (
	FieldName      = "name"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldPassword  = "password"
	FieldToken     = "token"
	FieldExpiresAt = "expires_at"
	FieldPrincipal = "principal"
	FieldMessage   = "message"
)
