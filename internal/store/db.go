// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

// Package store contains the persistence layer: the client-side SQLite
// note repository and the server-side blob repository (SQLite or
// PostgreSQL). Repositories deal in raw records; encryption and domain
// rules live one layer up.
package store

import (
	"context"
	"database/sql"

	"github.com/gofrs/flock"

	"github.com/anikulin/note-taker-pro/internal/logger"
)

// DB wraps a sql.DB handle together with the error classifier matching
// its driver and, for the client database, an advisory file lock taken
// around persist operations.
type DB struct {
	*sql.DB

	dialect            string
	errorClassificator ErrorClassificator
	persistLock        *flock.Flock
	logger             *logger.Logger
}

// Dialect returns the goose dialect name matching the opened driver.
func (db *DB) Dialect() string {
	return db.dialect
}

// withPersistLock runs fn while holding the advisory file lock, when one
// is configured. The lock is scoped to the single persist operation: two
// CLI instances pointed at the same database file serialize their writes
// instead of corrupting each other.
func (db *DB) withPersistLock(ctx context.Context, fn func() error) error {
	if db.persistLock == nil {
		return fn()
	}

	if _, err := db.persistLock.TryLockContext(ctx, lockRetryDelay); err != nil {
		return err
	}
	defer db.persistLock.Unlock() //nolint:errcheck

	return fn()
}
