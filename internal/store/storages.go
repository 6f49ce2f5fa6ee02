// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package store

import "github.com/anikulin/note-taker-pro/internal/logger"

// ClientStorages bundles the repositories backing the CLI.
type ClientStorages struct {
	Notes NoteRepository
}

// NewClientStorages wires the client repositories onto an opened DB.
func NewClientStorages(db *DB, log *logger.Logger) *ClientStorages {
	return &ClientStorages{
		Notes: NewSQLiteNoteRepository(db, log),
	}
}

// ServerStorages bundles the repositories backing the sync server.
type ServerStorages struct {
	Blobs BlobRepository
}

// NewServerStorages wires the server repositories onto an opened DB.
func NewServerStorages(db *DB, log *logger.Logger) *ServerStorages {
	return &ServerStorages{
		Blobs: NewBlobDBRepository(db, log),
	}
}
