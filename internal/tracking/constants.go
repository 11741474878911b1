// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

package tracking

import "time"

// # Tracking Reference Format

const (
	// TrackingIDPrefix marks every public shipment reference.
	TrackingIDPrefix = "SPR-"

	// TrackingIDLength is the number of random characters after the prefix.
	TrackingIDLength = 10

	// trackingIDAlphabet is Crockford base32: no I, L, O, U, so references
	// survive being read over the phone or scribbled on a parcel.
	trackingIDAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
)

// # Cache Policy

const (
	// TrackingCacheTTL bounds how stale a cached tracking record may be.
	// Short on purpose: status updates should appear within a minute.
	TrackingCacheTTL = 60 * time.Second
)

// # Input Policy

const (
	// LocationMaxLength bounds free-text location fields.
	LocationMaxLength = 120

	// NoteMaxLength bounds the optional note on a history event.
	NoteMaxLength = 280
)
