// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

/*
Package tracking implements the shipment domain: public tracking lookups and
admin-side shipment lifecycle management.

It defines the core domain entities (Shipment, HistoryEvent) and the status
progression rules that govern a parcel from creation to delivery.

# Architecture

This layer is the "Truth" of the shipment lifecycle. Entities defined here
have no external dependencies; storage and transport adapt to them.
*/
package tracking

import (
	"time"
)

// # Status Model

// Status is the lifecycle state of a shipment.
type Status string

const (
	StatusPending        Status = "pending"
	StatusPickedUp       Status = "picked_up"
	StatusInTransit      Status = "in_transit"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusFailed         Status = "failed"
)

// AllStatuses lists every valid lifecycle state, in progression order.
var AllStatuses = []Status{
	StatusPending,
	StatusPickedUp,
	StatusInTransit,
	StatusOutForDelivery,
	StatusDelivered,
	StatusFailed,
}

// Valid reports whether s is a known lifecycle state.
func (s Status) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether the shipment can no longer advance.
//
// Delivered and failed are both final: a failed delivery requires a new
// shipment, not a resurrected one.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusFailed
}

// # Domain Entities

// Shipment represents a tracked parcel and its current state.
type Shipment struct {
	ID                string     `json:"id"`
	TrackingID        string     `json:"tracking_id"`
	Origin            string     `json:"origin"`
	Destination       string     `json:"destination"`
	OriginCode        string     `json:"origin_code"`      // Normalized location code derived from Origin.
	DestinationCode   string     `json:"destination_code"` // Normalized location code derived from Destination.
	CurrentLocation   string     `json:"current_location"`
	Status            Status     `json:"status"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// History is the ordered event trail, oldest first. Always populated on
	// tracking lookups; list endpoints may leave it empty.
	History []HistoryEvent `json:"history,omitempty"`
}

// HistoryEvent is one entry in a shipment's ordered event trail.
type HistoryEvent struct {
	ID         string    `json:"id"`
	ShipmentID string    `json:"-"`
	Status     Status    `json:"status"`
	Location   string    `json:"location"`
	Note       string    `json:"note,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the tracking domain.
const (
	FieldTrackingID  = "tracking_id"
	FieldOrigin      = "origin"
	FieldDestination = "destination"
	FieldLocation    = "location"
	FieldStatus      = "status"
	FieldNote        = "note"
)
