// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package crypto

import (
	"fmt"
	"os"
	"path/filepath"
)

// LoadOrCreateSalt returns the key-derivation salt stored at path,
// creating a fresh one on first use. The raw derived key is never
// written to disk; only the salt is, with owner-only permissions.
func LoadOrCreateSalt(kc Keychain, path string) ([]byte, error) {
	if b, err := os.ReadFile(path); err == nil {
		if len(b) != saltLen {
			return nil, fmt.Errorf("key file %s: invalid salt length %d", path, len(b))
		}
		return b, nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	salt, err := kc.GenerateSalt()
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err = os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create key file dir: %w", err)
		}
	}
	if err = os.WriteFile(path, salt, 0o600); err != nil {
		return nil, fmt.Errorf("write key file: %w", err)
	}

	return salt, nil
}
