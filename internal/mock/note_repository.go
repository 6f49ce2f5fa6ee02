// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

// Package mock holds hand-written in-memory fakes used by service and
// handler tests. The fakes mirror the semantics of their real
// counterparts closely enough that the services under test cannot tell
// the difference.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/anikulin/note-taker-pro/internal/store"
	"github.com/anikulin/note-taker-pro/models"
)

// NoteRepository is an in-memory [store.NoteRepository]. It preserves
// insertion order and implements the same soft-delete and reminder
// semantics as the SQLite repository.
type NoteRepository struct {
	mu    sync.Mutex
	order []string
	recs  map[string]store.NoteRecord
}

// NewNoteRepository constructs an empty in-memory repository.
func NewNoteRepository() *NoteRepository {
	return &NoteRepository{recs: make(map[string]store.NoteRecord)}
}

// Save implements [store.NoteRepository].
func (f *NoteRepository) Save(_ context.Context, rec store.NoteRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.recs[rec.ID]; ok {
		return store.ErrNotSaved
	}
	f.recs[rec.ID] = rec
	f.order = append(f.order, rec.ID)
	return nil
}

// Update implements [store.NoteRepository].
func (f *NoteRepository) Update(_ context.Context, rec store.NoteRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.recs[rec.ID]
	if !ok {
		return store.ErrNotFound
	}
	rec.CreatedAt = stored.CreatedAt
	f.recs[rec.ID] = rec
	return nil
}

// Get implements [store.NoteRepository].
func (f *NoteRepository) Get(_ context.Context, id string) (store.NoteRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.recs[id]
	if !ok {
		return store.NoteRecord{}, store.ErrNotFound
	}
	return rec, nil
}

// GetAll implements [store.NoteRepository].
func (f *NoteRepository) GetAll(_ context.Context, includeDeleted bool) ([]store.NoteRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]store.NoteRecord, 0, len(f.order))
	for _, id := range f.order {
		rec := f.recs[id]
		if rec.Deleted && !includeDeleted {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// SoftDelete implements [store.NoteRepository].
func (f *NoteRepository) SoftDelete(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.recs[id]
	if !ok || rec.Deleted {
		return store.ErrNotFound
	}
	rec.Deleted = true
	rec.Dirty = true
	rec.UpdatedAt = at
	rec.RemindAt = nil
	rec.RemindAcked = false
	f.recs[id] = rec
	return nil
}

// HardDelete implements [store.NoteRepository].
func (f *NoteRepository) HardDelete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.recs, id)
	for i, got := range f.order {
		if got == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

// GetSyncStates implements [store.NoteRepository].
func (f *NoteRepository) GetSyncStates(_ context.Context) ([]models.SyncState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.SyncState, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.recs[id].SyncState())
	}
	return out, nil
}

// SetSyncState implements [store.NoteRepository].
func (f *NoteRepository) SetSyncState(_ context.Context, id string, baseRev int64, dirty bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.recs[id]
	if !ok {
		return store.ErrNotFound
	}
	rec.BaseRev = baseRev
	rec.Dirty = dirty
	f.recs[id] = rec
	return nil
}

// DueReminders implements [store.NoteRepository].
func (f *NoteRepository) DueReminders(_ context.Context, now time.Time) ([]store.NoteRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]store.NoteRecord, 0)
	for _, id := range f.order {
		rec := f.recs[id]
		if rec.Deleted || rec.RemindAcked || rec.RemindAt == nil {
			continue
		}
		if !rec.RemindAt.After(now) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// AcknowledgeReminder implements [store.NoteRepository].
func (f *NoteRepository) AcknowledgeReminder(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.recs[id]
	if !ok || rec.RemindAt == nil {
		return store.ErrNotFound
	}
	rec.RemindAcked = true
	f.recs[id] = rec
	return nil
}

// ClearReminder implements [store.NoteRepository].
func (f *NoteRepository) ClearReminder(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.recs[id]
	if !ok {
		return store.ErrNotFound
	}
	rec.RemindAt = nil
	rec.RemindAcked = false
	f.recs[id] = rec
	return nil
}
