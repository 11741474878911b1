// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

package identity

import "time"

// # Session Policy

const (
	// SessionTokenTTL is the fixed lifetime of an issued session token.
	// There is no refresh flow: an expired token requires a fresh login.
	SessionTokenTTL = 7 * 24 * time.Hour
)

// # Input Policy

const (
	// PasswordMinLength is the minimum accepted password length at registration.
	PasswordMinLength = 8

	// NameMaxLength bounds the display name to keep dashboard listings sane.
	NameMaxLength = 60
)
