package store

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/anikulin/note-taker-pro/internal/logger"
)

func newTestBlobRepo(t *testing.T, withClassifier bool) (*BlobDBRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	wrapped := &DB{DB: db, dialect: "pgx", logger: l}
	if withClassifier {
		wrapped.errorClassificator = NewPostgresErrorClassifier()
	}
	return NewBlobDBRepository(wrapped, l), mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestBlobRepositoryPutInsert(t *testing.T) {
	repo, mock, db := newTestBlobRepo(t, false)
	defer db.Close()

	payload := []byte("sealed note")

	mock.ExpectExec("INSERT INTO blobs").
		WithArgs("n-1", base64.StdEncoding.EncodeToString(payload), 1, false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rev, err := repo.Put(context.Background(), "n-1", payload, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rev != 1 {
		t.Errorf("expected rev 1, got %d", rev)
	}
}

func TestBlobRepositoryPutInsertRace(t *testing.T) {
	repo, mock, db := newTestBlobRepo(t, false)
	defer db.Close()

	// ON CONFLICT DO NOTHING: the losing writer sees zero affected rows.
	mock.ExpectExec("INSERT INTO blobs").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Put(context.Background(), "n-1", []byte("x"), 0)
	if !errors.Is(err, ErrRevConflict) {
		t.Fatalf("expected ErrRevConflict, got %v", err)
	}
}

func TestBlobRepositoryPutUniqueViolation(t *testing.T) {
	repo, mock, db := newTestBlobRepo(t, true)
	defer db.Close()

	mock.ExpectExec("INSERT INTO blobs").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.Put(context.Background(), "n-1", []byte("x"), 0)
	if !errors.Is(err, ErrRevConflict) {
		t.Fatalf("expected ErrRevConflict, got %v", err)
	}
}

func TestBlobRepositoryPutReplace(t *testing.T) {
	repo, mock, db := newTestBlobRepo(t, false)
	defer db.Close()

	mock.ExpectExec("UPDATE blobs").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rev, err := repo.Put(context.Background(), "n-1", []byte("updated"), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rev != 5 {
		t.Errorf("expected rev 5, got %d", rev)
	}
}

func TestBlobRepositoryPutStaleBase(t *testing.T) {
	repo, mock, db := newTestBlobRepo(t, false)
	defer db.Close()

	mock.ExpectExec("UPDATE blobs").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Put(context.Background(), "n-1", []byte("updated"), 2)
	if !errors.Is(err, ErrRevConflict) {
		t.Fatalf("expected ErrRevConflict, got %v", err)
	}
}

func TestBlobRepositoryPutRetriesTransientError(t *testing.T) {
	repo, mock, db := newTestBlobRepo(t, true)
	defer db.Close()

	mock.ExpectExec("UPDATE blobs").
		WillReturnError(pgError(pgerrcode.DeadlockDetected))
	mock.ExpectExec("UPDATE blobs").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rev, err := repo.Put(context.Background(), "n-1", []byte("x"), 1)
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if rev != 2 {
		t.Errorf("expected rev 2, got %d", rev)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestBlobRepositoryPutDoesNotRetryNonRetryable(t *testing.T) {
	repo, mock, db := newTestBlobRepo(t, true)
	defer db.Close()

	mock.ExpectExec("UPDATE blobs").
		WillReturnError(pgError(pgerrcode.SyntaxError))

	_, err := repo.Put(context.Background(), "n-1", []byte("x"), 1)
	if err == nil || errors.Is(err, ErrRevConflict) {
		t.Fatalf("expected non-retryable execution error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("statement should run exactly once: %v", err)
	}
}

func TestBlobRepositoryGet(t *testing.T) {
	repo, mock, db := newTestBlobRepo(t, false)
	defer db.Close()

	payload := []byte("sealed")
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"note_id", "payload", "rev", "deleted", "updated_at"}).
		AddRow("n-1", base64.StdEncoding.EncodeToString(payload), int64(7), false, now)

	mock.ExpectQuery("SELECT note_id, payload, rev, deleted, updated_at FROM blobs").
		WithArgs("n-1").
		WillReturnRows(rows)

	rec, err := repo.Get(context.Background(), "n-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(rec.Payload) != "sealed" || rec.Rev != 7 {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestBlobRepositoryGetNotFound(t *testing.T) {
	repo, mock, db := newTestBlobRepo(t, false)
	defer db.Close()

	mock.ExpectQuery("SELECT note_id, payload, rev, deleted, updated_at FROM blobs").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBlobRepositoryStates(t *testing.T) {
	repo, mock, db := newTestBlobRepo(t, false)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"note_id", "rev", "deleted", "updated_at"}).
		AddRow("n-1", int64(2), false, now).
		AddRow("n-2", int64(5), true, now)

	mock.ExpectQuery("SELECT note_id, rev, deleted, updated_at FROM blobs").
		WillReturnRows(rows)

	states, err := repo.States(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(states) != 2 {
		t.Fatalf("expected 2 states, got %d", len(states))
	}
	if states[1].NoteID != "n-2" || !states[1].Deleted {
		t.Errorf("expected tombstone state for n-2, got %+v", states[1])
	}
}

func TestBlobRepositoryDelete(t *testing.T) {
	repo, mock, db := newTestBlobRepo(t, false)
	defer db.Close()

	mock.ExpectExec("UPDATE blobs").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rev, err := repo.Delete(context.Background(), "n-1", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rev != 4 {
		t.Errorf("expected rev 4, got %d", rev)
	}
}

func TestBlobRepositoryDeleteStaleBase(t *testing.T) {
	repo, mock, db := newTestBlobRepo(t, false)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectExec("UPDATE blobs").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT note_id, payload, rev, deleted, updated_at FROM blobs").
		WithArgs("n-1").
		WillReturnRows(sqlmock.NewRows([]string{"note_id", "payload", "rev", "deleted", "updated_at"}).
			AddRow("n-1", "", int64(9), false, now))

	_, err := repo.Delete(context.Background(), "n-1", 3)
	if !errors.Is(err, ErrRevConflict) {
		t.Fatalf("expected ErrRevConflict, got %v", err)
	}
}

func TestBlobRepositoryDeleteUnknownNote(t *testing.T) {
	repo, mock, db := newTestBlobRepo(t, false)
	defer db.Close()

	mock.ExpectExec("UPDATE blobs").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT note_id, payload, rev, deleted, updated_at FROM blobs").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Delete(context.Background(), "ghost", 1)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
