// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package store

import (
	"context"
	"time"

	"github.com/anikulin/note-taker-pro/models"
)

// NoteRecord is the raw client-side row of the notes table. Exactly one
// of the plaintext columns (Title/Body/Tags) or Blob is populated,
// depending on whether encryption at rest is enabled. The repository
// never interprets either; sealing and opening happen in the notes
// service.
type NoteRecord struct {
	ID          string
	Title       string
	Body        string
	Tags        []string
	Blob        models.EncryptedBlob
	Encrypted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	RemindAt    *time.Time
	RemindAcked bool

	// Sync markers (see models.SyncState).
	BaseRev int64
	Dirty   bool
	Deleted bool
}

// SyncState extracts the sync marker view of the record.
func (r NoteRecord) SyncState() models.SyncState {
	return models.SyncState{
		NoteID:  r.ID,
		BaseRev: r.BaseRev,
		Dirty:   r.Dirty,
		Deleted: r.Deleted,
	}
}

// NoteRepository is the persistence contract of the local note store.
// All write operations take the advisory persist lock for their duration.
type NoteRepository interface {
	// Save inserts a new note record.
	Save(ctx context.Context, rec NoteRecord) error

	// Update replaces the mutable columns of an existing record.
	// Returns [ErrNotFound] if the id is absent.
	Update(ctx context.Context, rec NoteRecord) error

	// Get returns the record with the given id, deleted or not.
	// Returns [ErrNotFound] if the id is absent.
	Get(ctx context.Context, id string) (NoteRecord, error)

	// GetAll returns records in insertion order. Soft-deleted records
	// are included only when includeDeleted is true.
	GetAll(ctx context.Context, includeDeleted bool) ([]NoteRecord, error)

	// SoftDelete tombstones the record, marks it dirty for sync, and
	// clears any pending reminder. Returns [ErrNotFound] if absent.
	SoftDelete(ctx context.Context, id string, at time.Time) error

	// HardDelete physically removes the record. Used when a remote
	// tombstone is pulled for a note the remote never had, or after a
	// local-only note is discarded.
	HardDelete(ctx context.Context, id string) error

	// GetSyncStates returns the sync markers of every record, including
	// tombstones.
	GetSyncStates(ctx context.Context) ([]models.SyncState, error)

	// SetSyncState records the base revision and dirty flag after a
	// push or pull. Returns [ErrNotFound] if the id is absent.
	SetSyncState(ctx context.Context, id string, baseRev int64, dirty bool) error

	// DueReminders returns live records whose reminder time has passed
	// and has not been acknowledged, ordered by due time.
	DueReminders(ctx context.Context, now time.Time) ([]NoteRecord, error)

	// AcknowledgeReminder marks the record's fired reminder as seen.
	// Returns [ErrNotFound] if the id is absent.
	AcknowledgeReminder(ctx context.Context, id string) error

	// ClearReminder removes the record's reminder entirely. Returns
	// [ErrNotFound] if the id is absent.
	ClearReminder(ctx context.Context, id string) error
}

// BlobRecord is the server-side row of the blobs table: an opaque payload
// with its revision counter.
type BlobRecord struct {
	NoteID    string
	Payload   []byte
	Rev       int64
	Deleted   bool
	UpdatedAt time.Time
}

// BlobRepository is the persistence contract of the sync server. Writes
// are conditional on the caller's base revision (optimistic locking).
type BlobRepository interface {
	// Put stores payload for noteID iff baseRev matches the current
	// revision (0 for a new blob) and returns the newly assigned
	// revision. Returns [ErrRevConflict] on a stale base.
	Put(ctx context.Context, noteID string, payload []byte, baseRev int64) (int64, error)

	// Get returns the stored blob. Returns [ErrNotFound] if absent.
	Get(ctx context.Context, noteID string) (BlobRecord, error)

	// States returns the revision descriptors of all blobs, tombstones
	// included.
	States(ctx context.Context) ([]models.RemoteState, error)

	// Delete tombstones the blob iff baseRev matches the current
	// revision and returns the new revision. Returns [ErrRevConflict]
	// on a stale base and [ErrNotFound] if the blob never existed.
	Delete(ctx context.Context, noteID string, baseRev int64) (int64, error)
}
