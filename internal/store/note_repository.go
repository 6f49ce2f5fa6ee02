// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/anikulin/note-taker-pro/internal/logger"
	"github.com/anikulin/note-taker-pro/models"
)

// SQLiteNoteRepository implements [NoteRepository] on the local SQLite
// database. Every write runs under the advisory persist lock of the DB.
type SQLiteNoteRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSQLiteNoteRepository constructs a [SQLiteNoteRepository].
func NewSQLiteNoteRepository(db *DB, log *logger.Logger) *SQLiteNoteRepository {
	return &SQLiteNoteRepository{
		db:     db,
		logger: &logger.Logger{Logger: log.With().Str("component", "note-repository").Logger()},
	}
}

// Save implements [NoteRepository].
func (r *SQLiteNoteRepository) Save(ctx context.Context, rec NoteRecord) error {
	tags, blob, err := encodeNoteColumns(rec)
	if err != nil {
		return err
	}

	return r.db.withPersistLock(ctx, func() error {
		result, err := r.db.ExecContext(ctx, sqlInsertNote,
			rec.ID, rec.Title, rec.Body, tags, blob, rec.Encrypted,
			rec.CreatedAt, rec.UpdatedAt, nullableTime(rec.RemindAt), rec.RemindAcked,
			rec.BaseRev, rec.Dirty, rec.Deleted,
		)
		if err != nil {
			r.logger.Err(err).Str("func", "Save").Str("note_id", rec.ID).Msg("error inserting note")
			return errors.Join(ErrExecutingQuery, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return errors.Join(ErrExecutingQuery, err)
		}
		if affected == 0 {
			return ErrNotSaved
		}

		return nil
	})
}

// Update implements [NoteRepository].
func (r *SQLiteNoteRepository) Update(ctx context.Context, rec NoteRecord) error {
	tags, blob, err := encodeNoteColumns(rec)
	if err != nil {
		return err
	}

	return r.db.withPersistLock(ctx, func() error {
		result, err := r.db.ExecContext(ctx, sqlUpdateNote,
			rec.Title, rec.Body, tags, blob, rec.Encrypted,
			rec.UpdatedAt, nullableTime(rec.RemindAt), rec.RemindAcked, rec.BaseRev, rec.Dirty, rec.Deleted,
			rec.ID,
		)
		if err != nil {
			r.logger.Err(err).Str("func", "Update").Str("note_id", rec.ID).Msg("error updating note")
			return errors.Join(ErrExecutingQuery, err)
		}

		return requireRowAffected(result)
	})
}

// Get implements [NoteRepository].
func (r *SQLiteNoteRepository) Get(ctx context.Context, id string) (NoteRecord, error) {
	row := r.db.QueryRowContext(ctx, sqlSelectNoteByID, id)

	rec, err := scanNoteRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NoteRecord{}, ErrNotFound
		}
		r.logger.Err(err).Str("func", "Get").Str("note_id", id).Msg("error scanning note")
		return NoteRecord{}, err
	}

	return rec, nil
}

// GetAll implements [NoteRepository].
func (r *SQLiteNoteRepository) GetAll(ctx context.Context, includeDeleted bool) ([]NoteRecord, error) {
	query := sqlSelectNotes
	if includeDeleted {
		query = sqlSelectNotesWithDeleted
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Err(err).Str("func", "GetAll").Msg("error selecting notes")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	return collectNoteRecords(rows)
}

// SoftDelete implements [NoteRepository].
func (r *SQLiteNoteRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return r.db.withPersistLock(ctx, func() error {
		result, err := r.db.ExecContext(ctx, sqlSoftDeleteNote, at, id)
		if err != nil {
			r.logger.Err(err).Str("func", "SoftDelete").Str("note_id", id).Msg("error deleting note")
			return errors.Join(ErrExecutingQuery, err)
		}

		return requireRowAffected(result)
	})
}

// HardDelete implements [NoteRepository].
func (r *SQLiteNoteRepository) HardDelete(ctx context.Context, id string) error {
	return r.db.withPersistLock(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, sqlHardDeleteNote, id); err != nil {
			r.logger.Err(err).Str("func", "HardDelete").Str("note_id", id).Msg("error deleting note row")
			return errors.Join(ErrExecutingQuery, err)
		}

		return nil
	})
}

// GetSyncStates implements [NoteRepository].
func (r *SQLiteNoteRepository) GetSyncStates(ctx context.Context) ([]models.SyncState, error) {
	rows, err := r.db.QueryContext(ctx, sqlSelectSyncStates)
	if err != nil {
		r.logger.Err(err).Str("func", "GetSyncStates").Msg("error selecting sync states")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	states := make([]models.SyncState, 0)
	for rows.Next() {
		var state models.SyncState
		if err = rows.Scan(&state.NoteID, &state.BaseRev, &state.Dirty, &state.Deleted); err != nil {
			return nil, errors.Join(ErrScanningRow, err)
		}
		states = append(states, state)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Join(ErrExecutingQuery, err)
	}

	return states, nil
}

// SetSyncState implements [NoteRepository].
func (r *SQLiteNoteRepository) SetSyncState(ctx context.Context, id string, baseRev int64, dirty bool) error {
	return r.db.withPersistLock(ctx, func() error {
		result, err := r.db.ExecContext(ctx, sqlUpdateSyncState, baseRev, dirty, id)
		if err != nil {
			r.logger.Err(err).Str("func", "SetSyncState").Str("note_id", id).Msg("error updating sync state")
			return errors.Join(ErrExecutingQuery, err)
		}

		return requireRowAffected(result)
	})
}

// DueReminders implements [NoteRepository].
func (r *SQLiteNoteRepository) DueReminders(ctx context.Context, now time.Time) ([]NoteRecord, error) {
	rows, err := r.db.QueryContext(ctx, sqlSelectDueReminders, now)
	if err != nil {
		r.logger.Err(err).Str("func", "DueReminders").Msg("error selecting due reminders")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	return collectNoteRecords(rows)
}

// AcknowledgeReminder implements [NoteRepository].
func (r *SQLiteNoteRepository) AcknowledgeReminder(ctx context.Context, id string) error {
	return r.db.withPersistLock(ctx, func() error {
		result, err := r.db.ExecContext(ctx, sqlAcknowledgeReminder, id)
		if err != nil {
			r.logger.Err(err).Str("func", "AcknowledgeReminder").Str("note_id", id).Msg("error acknowledging reminder")
			return errors.Join(ErrExecutingQuery, err)
		}

		return requireRowAffected(result)
	})
}

// ClearReminder implements [NoteRepository].
func (r *SQLiteNoteRepository) ClearReminder(ctx context.Context, id string) error {
	return r.db.withPersistLock(ctx, func() error {
		result, err := r.db.ExecContext(ctx, sqlClearReminder, id)
		if err != nil {
			r.logger.Err(err).Str("func", "ClearReminder").Str("note_id", id).Msg("error clearing reminder")
			return errors.Join(ErrExecutingQuery, err)
		}

		return requireRowAffected(result)
	})
}

// encodeNoteColumns serializes the tags slice and the encrypted blob into
// their TEXT column representations. A zero blob maps to NULL.
func encodeNoteColumns(rec NoteRecord) (tags string, blob sql.NullString, err error) {
	rawTags, err := json.Marshal(rec.Tags)
	if err != nil {
		return "", sql.NullString{}, fmt.Errorf("error encoding tags: %w", err)
	}

	if !rec.Blob.IsZero() {
		rawBlob, err := json.Marshal(rec.Blob)
		if err != nil {
			return "", sql.NullString{}, fmt.Errorf("error encoding blob: %w", err)
		}
		blob = sql.NullString{String: string(rawBlob), Valid: true}
	}

	return string(rawTags), blob, nil
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNoteRecord(row rowScanner) (NoteRecord, error) {
	var (
		rec      NoteRecord
		tags     string
		blob     sql.NullString
		remindAt sql.NullTime
	)

	err := row.Scan(
		&rec.ID, &rec.Title, &rec.Body, &tags, &blob, &rec.Encrypted,
		&rec.CreatedAt, &rec.UpdatedAt, &remindAt, &rec.RemindAcked,
		&rec.BaseRev, &rec.Dirty, &rec.Deleted,
	)
	if err != nil {
		return NoteRecord{}, err
	}

	if err = json.Unmarshal([]byte(tags), &rec.Tags); err != nil {
		return NoteRecord{}, fmt.Errorf("error decoding tags: %w", err)
	}
	if blob.Valid {
		if err = json.Unmarshal([]byte(blob.String), &rec.Blob); err != nil {
			return NoteRecord{}, fmt.Errorf("error decoding blob: %w", err)
		}
	}
	if remindAt.Valid {
		t := remindAt.Time
		rec.RemindAt = &t
	}

	return rec, nil
}

func collectNoteRecords(rows *sql.Rows) ([]NoteRecord, error) {
	records := make([]NoteRecord, 0)
	for rows.Next() {
		rec, err := scanNoteRecord(rows)
		if err != nil {
			return nil, errors.Join(ErrScanningRow, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrExecutingQuery, err)
	}

	return records, nil
}

func requireRowAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Join(ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
