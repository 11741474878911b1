// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// # Why UUIDv7?
//
// It is the primary key type for every Shipora table. Time-sortable IDs keep
// PostgreSQL B-tree indexes append-friendly, avoiding the fragmentation that
// random UUIDv4 keys cause on hot insert paths (shipments, events).
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// It panics only if the OS random source is unavailable. Entropy failure is
// an unrecoverable system-level condition, so panicking is acceptable here.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// Must is an alias for [New] kept for readability at call sites that follow
// Go's "Must" initialization pattern.
func Must() string {
	return New()
}
