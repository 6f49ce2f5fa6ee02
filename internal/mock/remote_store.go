// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package mock

import (
	"context"
	"sync"

	"github.com/anikulin/note-taker-pro/internal/adapter"
	"github.com/anikulin/note-taker-pro/models"
)

type remoteBlob struct {
	payload []byte
	rev     int64
	deleted bool
}

// RemoteStore is an in-memory [adapter.RemoteStore] with the same
// conditional-write semantics as the real server. Setting Unavailable
// makes every call fail with [adapter.ErrSyncUnavailable].
type RemoteStore struct {
	mu          sync.Mutex
	blobs       map[string]*remoteBlob
	Unavailable bool
}

// NewRemoteStore constructs an empty in-memory remote.
func NewRemoteStore() *RemoteStore {
	return &RemoteStore{blobs: make(map[string]*remoteBlob)}
}

// Seed inserts a blob at the given revision, bypassing conflict checks.
// Test setup helper.
func (f *RemoteStore) Seed(noteID string, payload []byte, rev int64, deleted bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[noteID] = &remoteBlob{payload: payload, rev: rev, deleted: deleted}
}

// Payload returns the stored payload for assertions.
func (f *RemoteStore) Payload(noteID string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blobs[noteID]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), b.payload...), true
}

// States implements [adapter.RemoteStore].
func (f *RemoteStore) States(_ context.Context) ([]models.RemoteState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Unavailable {
		return nil, adapter.ErrSyncUnavailable
	}

	states := make([]models.RemoteState, 0, len(f.blobs))
	for id, b := range f.blobs {
		states = append(states, models.RemoteState{NoteID: id, Rev: b.rev, Deleted: b.deleted})
	}
	return states, nil
}

// GetBlob implements [adapter.RemoteStore].
func (f *RemoteStore) GetBlob(_ context.Context, noteID string) (models.BlobResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Unavailable {
		return models.BlobResponse{}, adapter.ErrSyncUnavailable
	}

	b, ok := f.blobs[noteID]
	if !ok {
		return models.BlobResponse{}, adapter.ErrNotFound
	}
	return models.BlobResponse{
		NoteID:  noteID,
		Payload: append([]byte(nil), b.payload...),
		Rev:     b.rev,
		Deleted: b.deleted,
	}, nil
}

// PutBlob implements [adapter.RemoteStore].
func (f *RemoteStore) PutBlob(_ context.Context, noteID string, payload []byte, baseRev int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Unavailable {
		return 0, adapter.ErrSyncUnavailable
	}

	b, ok := f.blobs[noteID]
	if !ok {
		if baseRev != 0 {
			return 0, adapter.ErrRemoteConflict
		}
		f.blobs[noteID] = &remoteBlob{payload: append([]byte(nil), payload...), rev: 1}
		return 1, nil
	}

	if b.rev != baseRev {
		return 0, adapter.ErrRemoteConflict
	}
	b.payload = append([]byte(nil), payload...)
	b.rev++
	b.deleted = false
	return b.rev, nil
}

// DeleteBlob implements [adapter.RemoteStore].
func (f *RemoteStore) DeleteBlob(_ context.Context, noteID string, baseRev int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Unavailable {
		return 0, adapter.ErrSyncUnavailable
	}

	b, ok := f.blobs[noteID]
	if !ok {
		return 0, adapter.ErrNotFound
	}
	if b.rev != baseRev {
		return 0, adapter.ErrRemoteConflict
	}
	b.payload = nil
	b.rev++
	b.deleted = true
	return b.rev, nil
}
