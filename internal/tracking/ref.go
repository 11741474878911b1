// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

package tracking

import (
	"crypto/rand"
	"fmt"
)

// NewTrackingID generates a fresh public shipment reference.
//
// # Format
//
// "SPR-" plus 10 characters drawn from the Crockford base32 alphabet using
// crypto/rand, e.g. "SPR-4R7PK2M9XQ". 32^10 combinations make collisions
// practically irrelevant, but the database still enforces uniqueness.
func NewTrackingID() (string, error) {
	buffer := make([]byte, TrackingIDLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("tracking_ref_entropy_failed: %w", err)
	}

	for i, b := range buffer {
		buffer[i] = trackingIDAlphabet[int(b)%len(trackingIDAlphabet)]
	}

	return TrackingIDPrefix + string(buffer), nil
}
