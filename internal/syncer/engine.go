// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/anikulin/note-taker-pro/internal/adapter"
	"github.com/anikulin/note-taker-pro/internal/logger"
	"github.com/anikulin/note-taker-pro/internal/store"
	"github.com/anikulin/note-taker-pro/models"
)

// ErrSyncUnavailable mirrors adapter.ErrSyncUnavailable so callers of the
// engine do not need to import the adapter package to match it.
var ErrSyncUnavailable = adapter.ErrSyncUnavailable

// Engine executes sync runs: it plans with [Reconcile], pushes dirty
// notes, pulls remote changes, and collects conflicts for the caller to
// resolve. A run that cannot reach the remote fails with
// [ErrSyncUnavailable] before any local state is touched.
type Engine struct {
	repo   store.NoteRepository
	remote adapter.RemoteStore
	logger *logger.Logger
}

// NewEngine constructs a sync [Engine].
func NewEngine(repo store.NoteRepository, remote adapter.RemoteStore, log *logger.Logger) *Engine {
	return &Engine{
		repo:   repo,
		remote: remote,
		logger: &logger.Logger{Logger: log.With().Str("component", "syncer").Logger()},
	}
}

// Sync performs one full synchronization run and reports what happened.
// Conflicts do not abort the run; they are returned in the report while
// every non-conflicting note still syncs.
func (e *Engine) Sync(ctx context.Context) (models.SyncReport, error) {
	local, err := e.repo.GetSyncStates(ctx)
	if err != nil {
		return models.SyncReport{}, err
	}

	remoteStates, err := e.remote.States(ctx)
	if err != nil {
		return models.SyncReport{}, err
	}

	var report models.SyncReport
	for _, res := range Reconcile(local, remoteStates) {
		switch res.Kind {
		case models.InSync:
			if err = e.collectGarbage(ctx, res); err != nil {
				return report, err
			}

		case models.LocalWins:
			if err = e.push(ctx, res, &report); err != nil {
				return report, err
			}

		case models.RemoteWins:
			if err = e.pull(ctx, res, &report); err != nil {
				return report, err
			}

		case models.ConflictBoth:
			report.Conflicts = append(report.Conflicts, res)
		}
	}

	e.logger.Info().
		Int("pushed", report.Pushed).
		Int("pulled", report.Pulled).
		Int("deleted", report.Deleted).
		Int("conflicts", len(report.Conflicts)).
		Msg("sync run finished")

	return report, nil
}

// collectGarbage removes tombstones that have nothing left to propagate:
// deleted locally before any push, or already tombstoned on both sides.
func (e *Engine) collectGarbage(ctx context.Context, res models.Resolution) error {
	if !res.Local.Deleted {
		return nil
	}
	if res.Local.BaseRev == 0 || res.Remote.Deleted {
		return e.repo.HardDelete(ctx, res.NoteID)
	}
	return nil
}

// push propagates a local change to the remote. A conditional-write
// rejection turns into a reported conflict instead of an error: another
// client won the race and the user decides on the next resolution pass.
func (e *Engine) push(ctx context.Context, res models.Resolution, report *models.SyncReport) error {
	if res.Local.Deleted {
		return e.pushDelete(ctx, res, report)
	}

	rec, err := e.repo.Get(ctx, res.NoteID)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(envelopeFromRecord(rec))
	if err != nil {
		return fmt.Errorf("encode sync envelope: %w", err)
	}

	rev, err := e.remote.PutBlob(ctx, res.NoteID, payload, res.Remote.Rev)
	if err != nil {
		if errors.Is(err, adapter.ErrRemoteConflict) {
			res.Kind = models.ConflictBoth
			report.Conflicts = append(report.Conflicts, res)
			return nil
		}
		return err
	}

	if err = e.repo.SetSyncState(ctx, res.NoteID, rev, false); err != nil {
		return err
	}
	report.Pushed++

	return nil
}

func (e *Engine) pushDelete(ctx context.Context, res models.Resolution, report *models.SyncReport) error {
	if res.Remote.NoteID != "" {
		_, err := e.remote.DeleteBlob(ctx, res.NoteID, res.Remote.Rev)
		switch {
		case errors.Is(err, adapter.ErrRemoteConflict):
			res.Kind = models.ConflictBoth
			report.Conflicts = append(report.Conflicts, res)
			return nil
		case errors.Is(err, adapter.ErrNotFound):
			// Remote never had it or already collected it.
		case err != nil:
			return err
		}
	}

	if err := e.repo.HardDelete(ctx, res.NoteID); err != nil {
		return err
	}
	report.Deleted++

	return nil
}

// pull applies a remote change locally.
func (e *Engine) pull(ctx context.Context, res models.Resolution, report *models.SyncReport) error {
	if res.Remote.Deleted {
		if err := e.repo.HardDelete(ctx, res.NoteID); err != nil {
			return err
		}
		report.Deleted++
		return nil
	}

	blob, err := e.remote.GetBlob(ctx, res.NoteID)
	if err != nil {
		return err
	}

	if err = e.applyRemoteBlob(ctx, res.NoteID, blob); err != nil {
		return err
	}
	report.Pulled++

	return nil
}

func (e *Engine) applyRemoteBlob(ctx context.Context, noteID string, blob models.BlobResponse) error {
	var envelope models.SyncEnvelope
	if err := json.Unmarshal(blob.Payload, &envelope); err != nil {
		return fmt.Errorf("decode sync envelope for %s: %w", noteID, err)
	}

	rec := recordFromEnvelope(noteID, envelope, blob.Rev)

	existing, err := e.repo.Get(ctx, noteID)
	switch {
	case err == nil:
		// Reminders are device-local; keep them across pulls.
		rec.RemindAt = existing.RemindAt
		rec.RemindAcked = existing.RemindAcked
		return e.repo.Update(ctx, rec)
	case errors.Is(err, store.ErrNotFound):
		return e.repo.Save(ctx, rec)
	default:
		return err
	}
}

// ResolveKeepLocal settles a conflict by force-pushing the local copy
// over the remote's current revision.
func (e *Engine) ResolveKeepLocal(ctx context.Context, noteID string) error {
	currentRev := int64(0)
	blob, err := e.remote.GetBlob(ctx, noteID)
	switch {
	case err == nil:
		currentRev = blob.Rev
	case errors.Is(err, adapter.ErrNotFound):
	default:
		return err
	}

	rec, err := e.repo.Get(ctx, noteID)
	if err != nil {
		return err
	}

	if rec.Deleted {
		if _, err = e.remote.DeleteBlob(ctx, noteID, currentRev); err != nil && !errors.Is(err, adapter.ErrNotFound) {
			return err
		}
		return e.repo.HardDelete(ctx, noteID)
	}

	payload, err := json.Marshal(envelopeFromRecord(rec))
	if err != nil {
		return fmt.Errorf("encode sync envelope: %w", err)
	}

	rev, err := e.remote.PutBlob(ctx, noteID, payload, currentRev)
	if err != nil {
		return err
	}

	e.logger.Info().Str("note_id", noteID).Int64("rev", rev).Msg("conflict resolved keeping local copy")

	return e.repo.SetSyncState(ctx, noteID, rev, false)
}

// ResolveKeepRemote settles a conflict by overwriting the local copy with
// the remote's current revision.
func (e *Engine) ResolveKeepRemote(ctx context.Context, noteID string) error {
	blob, err := e.remote.GetBlob(ctx, noteID)
	switch {
	case errors.Is(err, adapter.ErrNotFound):
		return e.repo.HardDelete(ctx, noteID)
	case err != nil:
		return err
	}

	if blob.Deleted {
		return e.repo.HardDelete(ctx, noteID)
	}

	if err = e.applyRemoteBlob(ctx, noteID, blob); err != nil {
		return err
	}

	e.logger.Info().Str("note_id", noteID).Int64("rev", blob.Rev).Msg("conflict resolved keeping remote copy")

	return nil
}

// envelopeFromRecord wraps a storage row into the wire envelope. The
// sealed blob travels as-is; plaintext rows travel as a cleartext
// payload.
func envelopeFromRecord(rec store.NoteRecord) models.SyncEnvelope {
	env := models.SyncEnvelope{
		Encrypted: rec.Encrypted,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	if rec.Encrypted {
		env.Blob = rec.Blob
	} else {
		env.Plain = &models.NotePayload{
			Title: rec.Title,
			Body:  rec.Body,
			Tags:  rec.Tags,
		}
	}
	return env
}

func recordFromEnvelope(noteID string, env models.SyncEnvelope, rev int64) store.NoteRecord {
	rec := store.NoteRecord{
		ID:        noteID,
		Encrypted: env.Encrypted,
		CreatedAt: env.CreatedAt,
		UpdatedAt: env.UpdatedAt,
		BaseRev:   rev,
		Dirty:     false,
	}
	if env.Encrypted {
		rec.Blob = env.Blob
	} else if env.Plain != nil {
		rec.Title = env.Plain.Title
		rec.Body = env.Plain.Body
		rec.Tags = env.Plain.Tags
	}
	return rec
}
