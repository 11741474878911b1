// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

package client

// Guard answers authorization questions from the local credential store
// alone, without a round trip to the API.
type Guard struct {
	store *CredentialStore
}

// NewGuard wraps a credential store.
func NewGuard(store *CredentialStore) *Guard {
	return &Guard{store: store}
}

// Authenticated reports whether the slot holds a non-empty token. The
// token is not verified or inspected for expiry here; the server remains
// the authority and rejects stale tokens on use.
func (guard *Guard) Authenticated(slot Slot) bool {
	record, err := guard.store.Load(slot)
	if err != nil || record == nil {
		return false
	}
	return record.Token != ""
}

// IsAdmin reports whether the admin slot holds a profile with the admin
// role. Like [Guard.Authenticated], this reads stored state only.
func (guard *Guard) IsAdmin() bool {
	record, err := guard.store.Load(SlotAdmin)
	if err != nil || record == nil {
		return false
	}
	return record.Token != "" && record.Profile.Role == "admin"
}

// CurrentPrincipal returns the profile stored in the slot, or nil when
// the slot is empty.
func (guard *Guard) CurrentPrincipal(slot Slot) *Profile {
	record, err := guard.store.Load(slot)
	if err != nil || record == nil {
		return nil
	}
	return &record.Profile
}
