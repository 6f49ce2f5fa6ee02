// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

// Package notes implements the note store service: CRUD and search over
// the local repository with transparent encryption at rest. Callers see
// plaintext models.Note values; whether a payload is sealed on disk is
// an implementation detail of this package.
package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anikulin/note-taker-pro/internal/crypto"
	"github.com/anikulin/note-taker-pro/internal/logger"
	"github.com/anikulin/note-taker-pro/internal/store"
	"github.com/anikulin/note-taker-pro/models"
)

// ErrNotFound mirrors store.ErrNotFound so callers do not need to import
// the store package to match it.
var ErrNotFound = store.ErrNotFound

// Store is the note CRUD and search contract consumed by the CLI and the
// reminder scheduler.
type Store interface {
	// Create persists a new note and returns it with ID and timestamps
	// assigned.
	Create(ctx context.Context, title, body string, tags []string) (models.Note, error)

	// Get returns the live note with the given id. Soft-deleted notes are
	// reported as [ErrNotFound].
	Get(ctx context.Context, id string) (models.Note, error)

	// Update applies the non-nil fields and returns the updated note.
	// UpdatedAt strictly increases on every call.
	Update(ctx context.Context, id string, fields models.NoteFields) (models.Note, error)

	// Delete tombstones the note. Its reminder, if any, is cleared.
	Delete(ctx context.Context, id string) error

	// List returns all live notes in insertion order.
	List(ctx context.Context) ([]models.Note, error)

	// Search returns live notes matching query in the selected field,
	// case-insensitively, in insertion order. An empty query matches
	// every note.
	Search(ctx context.Context, query string, field models.SearchField) ([]models.Note, error)
}

// Service implements [Store] on a [store.NoteRepository].
type Service struct {
	repo     store.NoteRepository
	keychain crypto.Keychain
	key      []byte
	salt     []byte
	encrypt  bool
	logger   *logger.Logger

	now func() time.Time
}

// NewService constructs a note [Service]. When encrypt is true, key and
// salt must come from the session keychain: new and updated payloads are
// sealed before they reach the repository. Notes written while
// encryption was off stay readable either way.
func NewService(repo store.NoteRepository, keychain crypto.Keychain, key, salt []byte, encrypt bool, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		keychain: keychain,
		key:      key,
		salt:     salt,
		encrypt:  encrypt,
		logger:   &logger.Logger{Logger: log.With().Str("component", "notes").Logger()},
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create implements [Store].
func (s *Service) Create(ctx context.Context, title, body string, tags []string) (models.Note, error) {
	now := s.now()
	note := models.Note{
		ID:        uuid.NewString(),
		Title:     title,
		Body:      body,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
		Encrypted: s.encrypt,
	}

	rec, err := s.toRecord(note)
	if err != nil {
		return models.Note{}, err
	}
	rec.Dirty = true

	if err = s.repo.Save(ctx, rec); err != nil {
		return models.Note{}, err
	}
	s.logger.Debug().Str("note_id", note.ID).Bool("encrypted", note.Encrypted).Msg("note created")

	return note, nil
}

// Get implements [Store].
func (s *Service) Get(ctx context.Context, id string) (models.Note, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Note{}, err
	}
	if rec.Deleted {
		return models.Note{}, ErrNotFound
	}

	return s.toNote(rec)
}

// Update implements [Store].
func (s *Service) Update(ctx context.Context, id string, fields models.NoteFields) (models.Note, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Note{}, err
	}
	if rec.Deleted {
		return models.Note{}, ErrNotFound
	}

	note, err := s.toNote(rec)
	if err != nil {
		return models.Note{}, err
	}

	if fields.Title != nil {
		note.Title = *fields.Title
	}
	if fields.Body != nil {
		note.Body = *fields.Body
	}
	if fields.Tags != nil {
		note.Tags = *fields.Tags
	}
	if fields.RemindAt != nil {
		utc := fields.RemindAt.UTC()
		note.RemindAt = &utc
	}
	note.UpdatedAt = s.nextTimestamp(note.UpdatedAt)

	updated, err := s.toRecord(note)
	if err != nil {
		return models.Note{}, err
	}
	updated.CreatedAt = rec.CreatedAt
	updated.BaseRev = rec.BaseRev
	// Reminders are device-local and never sync, so a reminder-only
	// update must not mark the note dirty.
	contentChanged := fields.Title != nil || fields.Body != nil || fields.Tags != nil
	updated.Dirty = rec.Dirty || contentChanged
	if fields.RemindAt != nil {
		// A rescheduled reminder starts unacknowledged.
		updated.RemindAcked = false
	} else {
		updated.RemindAcked = rec.RemindAcked
		updated.RemindAt = rec.RemindAt
		note.RemindAt = rec.RemindAt
	}

	if err = s.repo.Update(ctx, updated); err != nil {
		return models.Note{}, err
	}
	s.logger.Debug().Str("note_id", id).Msg("note updated")

	return note, nil
}

// Delete implements [Store].
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id, s.now()); err != nil {
		return err
	}
	s.logger.Debug().Str("note_id", id).Msg("note deleted")

	return nil
}

// List implements [Store].
func (s *Service) List(ctx context.Context) ([]models.Note, error) {
	return s.Search(ctx, "", models.SearchAll)
}

// Search implements [Store]. Matching runs over decrypted payloads in
// memory; nothing searchable leaks into the database when encryption is
// on.
func (s *Service) Search(ctx context.Context, query string, field models.SearchField) ([]models.Note, error) {
	records, err := s.repo.GetAll(ctx, false)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))

	results := make([]models.Note, 0, len(records))
	for _, rec := range records {
		note, err := s.toNote(rec)
		if err != nil {
			return nil, err
		}
		if needle == "" || matches(note, needle, field) {
			results = append(results, note)
		}
	}

	return results, nil
}

func matches(note models.Note, needle string, field models.SearchField) bool {
	inTitle := strings.Contains(strings.ToLower(note.Title), needle)
	inBody := strings.Contains(strings.ToLower(note.Body), needle)
	inTags := false
	for _, tag := range note.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			inTags = true
			break
		}
	}

	switch field {
	case models.SearchTitle:
		return inTitle
	case models.SearchBody:
		return inBody
	case models.SearchTag:
		return inTags
	default:
		return inTitle || inBody || inTags
	}
}

// nextTimestamp returns the current time, nudged forward when the clock
// has not advanced past the previous update. UpdatedAt must strictly
// increase so that two rapid edits stay ordered.
func (s *Service) nextTimestamp(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		return prev.Add(time.Millisecond)
	}
	return now
}

// toRecord maps a note to its storage row, sealing the payload when the
// note is marked encrypted.
func (s *Service) toRecord(note models.Note) (store.NoteRecord, error) {
	rec := store.NoteRecord{
		ID:        note.ID,
		Encrypted: note.Encrypted,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
		RemindAt:  note.RemindAt,
	}

	if !note.Encrypted {
		rec.Title = note.Title
		rec.Body = note.Body
		rec.Tags = note.Tags
		return rec, nil
	}

	if len(s.key) == 0 {
		return store.NoteRecord{}, errors.New("encryption enabled but no key derived")
	}

	payload, err := json.Marshal(models.NotePayload{
		Title: note.Title,
		Body:  note.Body,
		Tags:  note.Tags,
	})
	if err != nil {
		return store.NoteRecord{}, fmt.Errorf("encode payload: %w", err)
	}

	rec.Blob, err = s.keychain.Seal(payload, s.key, s.salt)
	if err != nil {
		return store.NoteRecord{}, fmt.Errorf("seal payload: %w", err)
	}

	return rec, nil
}

// toNote maps a storage row back to the domain note, opening the blob
// when the row is encrypted.
func (s *Service) toNote(rec store.NoteRecord) (models.Note, error) {
	note := models.Note{
		ID:        rec.ID,
		Encrypted: rec.Encrypted,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
		RemindAt:  rec.RemindAt,
	}

	if !rec.Encrypted {
		note.Title = rec.Title
		note.Body = rec.Body
		note.Tags = rec.Tags
		return note, nil
	}

	if len(s.key) == 0 {
		return models.Note{}, crypto.ErrDecryption
	}

	plaintext, err := s.keychain.Open(rec.Blob, s.key)
	if err != nil {
		return models.Note{}, err
	}

	var payload models.NotePayload
	if err = json.Unmarshal(plaintext, &payload); err != nil {
		return models.Note{}, crypto.ErrDecryption
	}

	note.Title = payload.Title
	note.Body = payload.Body
	note.Tags = payload.Tags

	return note, nil
}
