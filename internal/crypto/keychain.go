// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"

	"github.com/anikulin/note-taker-pro/models"
)

// ErrDecryption is returned when a blob cannot be opened: the key is
// wrong, the ciphertext was tampered with, or the blob is malformed.
// Callers must treat it as fatal for the operation; partial plaintext is
// never returned.
var ErrDecryption = errors.New("decryption failed: wrong key or corrupted data")

const (
	saltLen = 16
	keyLen  = 32 // AES-256
)

// Keychain owns the client-side cryptography for encryption at rest.
// It knows nothing about notes, storage, or the network; its only job is
// deriving keys from the user's passphrase and sealing/opening payloads.
//
// Scheme:
//
//	salt = GenerateSalt()                  (once, kept in the key file)
//	key  = DeriveKey(passphrase, salt)     (per session, never persisted)
//	blob = Seal(plaintext, key, salt)
type Keychain interface {
	// GenerateSalt returns a fresh random salt (16 bytes / 128 bits).
	// The salt is not a secret; it exists so that identical passphrases
	// derive different keys.
	GenerateSalt() ([]byte, error)

	// DeriveKey derives a 256-bit key from the passphrase and salt using
	// Argon2id. The result lives only in memory for the session.
	DeriveKey(passphrase string, salt []byte) []byte

	// Seal encrypts plaintext with AES-256-GCM under key. The salt the
	// key was derived with is recorded in the blob so any device holding
	// the passphrase can re-derive the key and open it.
	Seal(plaintext, key, salt []byte) (models.EncryptedBlob, error)

	// Open authenticates and decrypts the blob. Returns the exact
	// original plaintext, or [ErrDecryption] if authentication fails.
	Open(blob models.EncryptedBlob, key []byte) ([]byte, error)
}

// keychain is the private implementation of [Keychain].
type keychain struct {
	// Argon2id tuning parameters. Kept in the struct so they can be
	// adjusted per deployment target.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
}

// NewKeychain constructs a [Keychain] with the Argon2id parameters
// recommended by OWASP (2024): 1 iteration, 64 MiB memory, 4 threads,
// 256-bit output.
func NewKeychain() Keychain {
	return &keychain{
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
	}
}

// GenerateSalt implements [Keychain]. It reads 16 random bytes from the
// OS CSPRNG.
func (k *keychain) GenerateSalt() ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("read salt from csprng: %w", err)
	}
	return salt, nil
}

// DeriveKey implements [Keychain].
func (k *keychain) DeriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey(
		[]byte(passphrase),
		salt,
		k.argonTime,
		k.argonMemory,
		k.argonThreads,
		keyLen,
	)
}

// Seal implements [Keychain]. A random 12-byte nonce is generated per
// call and returned inside the blob.
func (k *keychain) Seal(plaintext, key, salt []byte) (models.EncryptedBlob, error) {
	if len(key) != keyLen {
		return models.EncryptedBlob{}, fmt.Errorf("invalid key length: %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return models.EncryptedBlob{}, fmt.Errorf("init cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return models.EncryptedBlob{}, fmt.Errorf("init gcm: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return models.EncryptedBlob{}, fmt.Errorf("read nonce from csprng: %w", err)
	}

	return models.EncryptedBlob{
		Ciphertext: gcm.Seal(nil, nonce, plaintext, nil),
		Nonce:      nonce,
		Salt:       salt,
	}, nil
}

// Open implements [Keychain]. Any authentication failure is reported as
// [ErrDecryption]; the underlying cause is deliberately not exposed so
// that a wrong key and a tampered blob are indistinguishable to callers.
func (k *keychain) Open(blob models.EncryptedBlob, key []byte) ([]byte, error) {
	if len(key) != keyLen {
		return nil, fmt.Errorf("invalid key length: %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init gcm: %w", err)
	}

	if len(blob.Nonce) != gcm.NonceSize() {
		return nil, ErrDecryption
	}

	plaintext, err := gcm.Open(nil, blob.Nonce, blob.Ciphertext, nil)
	if err != nil {
		return nil, ErrDecryption
	}

	return plaintext, nil
}
