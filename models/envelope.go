// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package models

import "time"

// SyncEnvelope is the unit that travels to the remote as an opaque
// payload: the note's confidential content (sealed or plain, matching
// the client's encryption setting) plus the timestamps every device
// should agree on. Reminders and sync markers are device-local and stay
// out of the envelope.
type SyncEnvelope struct {
	// Encrypted selects which of Blob or Plain is populated.
	Encrypted bool `json:"encrypted"`

	// Blob is the sealed payload. Any device holding the passphrase can
	// re-derive the key from the salt inside and open it.
	Blob EncryptedBlob `json:"blob,omitzero"`

	// Plain is the cleartext payload, used when encryption at rest is
	// disabled.
	Plain *NotePayload `json:"plain,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
