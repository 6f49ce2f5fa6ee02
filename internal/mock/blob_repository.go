// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package mock

import (
	"context"
	"sync"
	"time"

	"github.com/anikulin/note-taker-pro/internal/store"
	"github.com/anikulin/note-taker-pro/models"
)

// BlobRepository is an in-memory [store.BlobRepository] with the same
// optimistic-locking semantics as the database-backed one.
type BlobRepository struct {
	mu    sync.Mutex
	blobs map[string]store.BlobRecord
}

// NewBlobRepository constructs an empty in-memory blob repository.
func NewBlobRepository() *BlobRepository {
	return &BlobRepository{blobs: make(map[string]store.BlobRecord)}
}

// Put implements [store.BlobRepository].
func (f *BlobRepository) Put(_ context.Context, noteID string, payload []byte, baseRev int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.blobs[noteID]
	if !ok {
		if baseRev != 0 {
			return 0, store.ErrRevConflict
		}
		f.blobs[noteID] = store.BlobRecord{
			NoteID:    noteID,
			Payload:   append([]byte(nil), payload...),
			Rev:       1,
			UpdatedAt: time.Now().UTC(),
		}
		return 1, nil
	}

	if rec.Rev != baseRev {
		return 0, store.ErrRevConflict
	}
	rec.Payload = append([]byte(nil), payload...)
	rec.Rev++
	rec.Deleted = false
	rec.UpdatedAt = time.Now().UTC()
	f.blobs[noteID] = rec
	return rec.Rev, nil
}

// Get implements [store.BlobRepository].
func (f *BlobRepository) Get(_ context.Context, noteID string) (store.BlobRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.blobs[noteID]
	if !ok {
		return store.BlobRecord{}, store.ErrNotFound
	}
	return rec, nil
}

// States implements [store.BlobRepository].
func (f *BlobRepository) States(_ context.Context) ([]models.RemoteState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	states := make([]models.RemoteState, 0, len(f.blobs))
	for id, rec := range f.blobs {
		updatedAt := rec.UpdatedAt
		states = append(states, models.RemoteState{
			NoteID:    id,
			Rev:       rec.Rev,
			Deleted:   rec.Deleted,
			UpdatedAt: &updatedAt,
		})
	}
	return states, nil
}

// Delete implements [store.BlobRepository].
func (f *BlobRepository) Delete(_ context.Context, noteID string, baseRev int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.blobs[noteID]
	if !ok {
		return 0, store.ErrNotFound
	}
	if rec.Rev != baseRev {
		return 0, store.ErrRevConflict
	}
	rec.Payload = nil
	rec.Rev++
	rec.Deleted = true
	rec.UpdatedAt = time.Now().UTC()
	f.blobs[noteID] = rec
	return rec.Rev, nil
}
