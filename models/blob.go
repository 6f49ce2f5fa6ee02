// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package models

// EncryptedBlob is an opaque, authenticated ciphertext produced from a
// note payload. The store and the sync server treat it as a black box:
// without the key it is indistinguishable from random bytes.
//
// The blob is self-describing for decryption purposes: it carries the
// AES-GCM nonce and the key-derivation salt that were used to seal it,
// neither of which is secret.
type EncryptedBlob struct {
	// Ciphertext is the AES-256-GCM sealed payload, including the
	// authentication tag.
	Ciphertext []byte `json:"ciphertext"`

	// Nonce is the unique 12-byte GCM nonce used for this blob.
	Nonce []byte `json:"nonce"`

	// Salt is the Argon2id salt the sealing key was derived with.
	// Stored alongside the ciphertext so the key can be re-derived
	// from the passphrase on any device.
	Salt []byte `json:"salt"`
}

// IsZero reports whether the blob carries no ciphertext.
func (b EncryptedBlob) IsZero() bool {
	return len(b.Ciphertext) == 0 && len(b.Nonce) == 0
}
