// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package store

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/anikulin/note-taker-pro/internal/logger"
	"github.com/anikulin/note-taker-pro/models"
)

// maxRetryAttempts bounds retries of statements that failed with a
// transient driver error (connection loss, deadlock rollback).
const maxRetryAttempts = 3

// BlobDBRepository implements [BlobRepository] on the server database.
// Revisions implement optimistic locking: every successful write bumps
// the revision by one, and a write whose base revision is stale fails
// with [ErrRevConflict] instead of overwriting.
//
// Payloads are stored base64-encoded in a TEXT column so the same
// statements run unchanged on SQLite and PostgreSQL.
type BlobDBRepository struct {
	db      *DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

// NewBlobDBRepository constructs a [BlobDBRepository].
func NewBlobDBRepository(db *DB, log *logger.Logger) *BlobDBRepository {
	return &BlobDBRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger:  &logger.Logger{Logger: log.With().Str("component", "blob-repository").Logger()},
	}
}

// Put implements [BlobRepository]. A baseRev of zero creates the blob at
// revision 1; a non-zero baseRev replaces the payload iff the stored
// revision still equals baseRev.
func (r *BlobDBRepository) Put(ctx context.Context, noteID string, payload []byte, baseRev int64) (int64, error) {
	encoded := base64.StdEncoding.EncodeToString(payload)
	now := time.Now().UTC()

	if baseRev == 0 {
		return r.insert(ctx, noteID, encoded, now)
	}
	return r.replace(ctx, noteID, encoded, baseRev, now)
}

func (r *BlobDBRepository) insert(ctx context.Context, noteID, encoded string, now time.Time) (int64, error) {
	// ON CONFLICT DO NOTHING turns a concurrent create of the same note
	// into zero affected rows, which is a stale-base conflict for the
	// loser. Supported by both PostgreSQL and SQLite.
	query, args, err := r.builder.
		Insert("blobs").
		Columns("note_id", "payload", "rev", "deleted", "updated_at").
		Values(noteID, encoded, 1, false, now).
		Suffix("ON CONFLICT (note_id) DO NOTHING").
		ToSql()
	if err != nil {
		return 0, errors.Join(ErrBuildingSQLQuery, err)
	}

	result, err := r.execWithRetry(ctx, query, args...)
	if err != nil {
		if IsUniqueViolation(err) {
			return 0, ErrRevConflict
		}
		r.logger.Err(err).Str("func", "insert").Str("note_id", noteID).Msg("error inserting blob")
		return 0, errors.Join(ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Join(ErrExecutingQuery, err)
	}
	if affected == 0 {
		return 0, ErrRevConflict
	}

	return 1, nil
}

func (r *BlobDBRepository) replace(ctx context.Context, noteID, encoded string, baseRev int64, now time.Time) (int64, error) {
	query, args, err := r.builder.
		Update("blobs").
		Set("payload", encoded).
		Set("rev", baseRev+1).
		Set("deleted", false).
		Set("updated_at", now).
		Where(sq.Eq{"note_id": noteID, "rev": baseRev}).
		ToSql()
	if err != nil {
		return 0, errors.Join(ErrBuildingSQLQuery, err)
	}

	result, err := r.execWithRetry(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "replace").Str("note_id", noteID).Msg("error updating blob")
		return 0, errors.Join(ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Join(ErrExecutingQuery, err)
	}
	if affected == 0 {
		return 0, ErrRevConflict
	}

	return baseRev + 1, nil
}

// Get implements [BlobRepository].
func (r *BlobDBRepository) Get(ctx context.Context, noteID string) (BlobRecord, error) {
	query, args, err := r.builder.
		Select("note_id", "payload", "rev", "deleted", "updated_at").
		From("blobs").
		Where(sq.Eq{"note_id": noteID}).
		ToSql()
	if err != nil {
		return BlobRecord{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	var (
		rec     BlobRecord
		encoded string
	)
	row := r.db.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&rec.NoteID, &encoded, &rec.Rev, &rec.Deleted, &rec.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return BlobRecord{}, ErrNotFound
		}
		r.logger.Err(err).Str("func", "Get").Str("note_id", noteID).Msg("error scanning blob")
		return BlobRecord{}, errors.Join(ErrScanningRow, err)
	}

	rec.Payload, err = base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return BlobRecord{}, errors.Join(ErrScanningRow, err)
	}

	return rec, nil
}

// States implements [BlobRepository].
func (r *BlobDBRepository) States(ctx context.Context) ([]models.RemoteState, error) {
	query, args, err := r.builder.
		Select("note_id", "rev", "deleted", "updated_at").
		From("blobs").
		OrderBy("note_id").
		ToSql()
	if err != nil {
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "States").Msg("error selecting blob states")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	states := make([]models.RemoteState, 0)
	for rows.Next() {
		var state models.RemoteState
		if err = rows.Scan(&state.NoteID, &state.Rev, &state.Deleted, &state.UpdatedAt); err != nil {
			return nil, errors.Join(ErrScanningRow, err)
		}
		states = append(states, state)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Join(ErrExecutingQuery, err)
	}

	return states, nil
}

// Delete implements [BlobRepository]. The tombstone keeps the row so
// other clients observe the deletion on their next pull; the payload is
// cleared.
func (r *BlobDBRepository) Delete(ctx context.Context, noteID string, baseRev int64) (int64, error) {
	query, args, err := r.builder.
		Update("blobs").
		Set("payload", "").
		Set("rev", baseRev+1).
		Set("deleted", true).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"note_id": noteID, "rev": baseRev}).
		ToSql()
	if err != nil {
		return 0, errors.Join(ErrBuildingSQLQuery, err)
	}

	result, err := r.execWithRetry(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "Delete").Str("note_id", noteID).Msg("error tombstoning blob")
		return 0, errors.Join(ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Join(ErrExecutingQuery, err)
	}
	if affected == 0 {
		if _, getErr := r.Get(ctx, noteID); errors.Is(getErr, ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, ErrRevConflict
	}

	return baseRev + 1, nil
}

// execWithRetry executes the statement, retrying when the configured
// error classifier reports the failure as transient. Without a
// classifier (SQLite backend) the statement runs exactly once.
func (r *BlobDBRepository) execWithRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var lastErr error
	for attempt := 1; attempt <= maxRetryAttempts; attempt++ {
		result, err := r.db.ExecContext(ctx, query, args...)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if r.db.errorClassificator == nil || r.db.errorClassificator.Classify(err) != Retryable {
			return nil, err
		}
		r.logger.Warn().Err(err).Int("attempt", attempt).Msg("transient database error, retrying")
	}

	return nil, lastErr
}
