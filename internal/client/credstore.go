// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// # Credential Slots

// Slot names one of the two independent credential compartments.
type Slot string

const (
	// SlotUser holds the customer session.
	SlotUser Slot = "user"

	// SlotAdmin holds the admin session.
	SlotAdmin Slot = "admin"
)

// Valid reports whether the slot is one of the known compartments.
func (slot Slot) Valid() bool {
	return slot == SlotUser || slot == SlotAdmin
}

// AuthRecord is one stored session: the raw token plus the profile that
// was current when it was saved.
type AuthRecord struct {
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
}

// credentialFile is the on-disk shape: both slots in one JSON document,
// either of which may be absent.
type credentialFile struct {
	User  *AuthRecord `json:"user,omitempty"`
	Admin *AuthRecord `json:"admin,omitempty"`
}

// # Store

// CredentialStore persists sessions to a single JSON file. The user and
// admin slots are independent: saving or clearing one never touches the
// other.
type CredentialStore struct {
	path string
	mu   sync.Mutex
}

// NewCredentialStore creates a store backed by the given file path. The
// file is created lazily on the first Save.
func NewCredentialStore(path string) *CredentialStore {
	return &CredentialStore{path: path}
}

// DefaultCredentialPath returns the conventional store location under the
// user's home directory.
func DefaultCredentialPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("credstore_home_dir_failed: %w", err)
	}
	return filepath.Join(home, ".shipora", "credentials.json"), nil
}

/*
Save stores a session into one slot, preserving the other.

Parameters:
  - slot: Slot (user or admin)
  - record: AuthRecord

Returns:
  - error: Unknown slot, or filesystem failures
*/
func (store *CredentialStore) Save(slot Slot, record AuthRecord) error {
	if !slot.Valid() {
		return fmt.Errorf("credstore_unknown_slot: %q", slot)
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	file, err := store.read()
	if err != nil {
		return err
	}

	switch slot {
	case SlotUser:
		file.User = &record
	case SlotAdmin:
		file.Admin = &record
	}

	return store.write(file)
}

/*
Load returns the session stored in one slot.

Parameters:
  - slot: Slot (user or admin)

Returns:
  - *AuthRecord: Stored session, or nil when the slot is empty
  - error: Unknown slot, or filesystem failures
*/
func (store *CredentialStore) Load(slot Slot) (*AuthRecord, error) {
	if !slot.Valid() {
		return nil, fmt.Errorf("credstore_unknown_slot: %q", slot)
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	file, err := store.read()
	if err != nil {
		return nil, err
	}

	switch slot {
	case SlotAdmin:
		return file.Admin, nil
	default:
		return file.User, nil
	}
}

/*
Clear removes the session from one slot, preserving the other.

Parameters:
  - slot: Slot (user or admin)

Returns:
  - error: Unknown slot, or filesystem failures
*/
func (store *CredentialStore) Clear(slot Slot) error {
	if !slot.Valid() {
		return fmt.Errorf("credstore_unknown_slot: %q", slot)
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	file, err := store.read()
	if err != nil {
		return err
	}

	switch slot {
	case SlotUser:
		file.User = nil
	case SlotAdmin:
		file.Admin = nil
	}

	return store.write(file)
}

// read loads the credential file, treating absence as an empty document.
func (store *CredentialStore) read() (*credentialFile, error) {
	payload, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &credentialFile{}, nil
		}
		return nil, fmt.Errorf("credstore_read_failed: %w", err)
	}

	file := &credentialFile{}
	if err := json.Unmarshal(payload, file); err != nil {
		return nil, fmt.Errorf("credstore_decode_failed: %w", err)
	}

	return file, nil
}

// write persists the credential file, creating the parent directory and
// keeping the file private to the owner.
func (store *CredentialStore) write(file *credentialFile) error {
	payload, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("credstore_encode_failed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(store.path), 0o700); err != nil {
		return fmt.Errorf("credstore_mkdir_failed: %w", err)
	}

	if err := os.WriteFile(store.path, payload, 0o600); err != nil {
		return fmt.Errorf("credstore_write_failed: %w", err)
	}

	return nil
}
