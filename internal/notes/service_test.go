package notes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anikulin/note-taker-pro/internal/crypto"
	"github.com/anikulin/note-taker-pro/internal/logger"
	"github.com/anikulin/note-taker-pro/internal/mock"
	"github.com/anikulin/note-taker-pro/models"
)

func newPlainService() (*Service, *mock.NoteRepository) {
	repo := mock.NewNoteRepository()
	return NewService(repo, crypto.NewKeychain(), nil, nil, false, logger.Nop()), repo
}

func newEncryptedService(t *testing.T, passphrase string) (*Service, *mock.NoteRepository) {
	t.Helper()

	repo := mock.NewNoteRepository()
	kc := crypto.NewKeychain()
	salt, err := kc.GenerateSalt()
	require.NoError(t, err)
	key := kc.DeriveKey(passphrase, salt)

	return NewService(repo, kc, key, salt, true, logger.Nop()), repo
}

func TestServiceCreateAndGet(t *testing.T) {
	svc, _ := newPlainService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "Groceries", "milk, eggs", []string{"shopping"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Title)
	assert.Equal(t, "milk, eggs", got.Body)
	assert.Equal(t, []string{"shopping"}, got.Tags)
}

func TestServiceGetNotFound(t *testing.T) {
	svc, _ := newPlainService()

	_, err := svc.Get(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceEncryptedAtRest(t *testing.T) {
	svc, repo := newEncryptedService(t, "correct horse battery staple")
	ctx := context.Background()

	created, err := svc.Create(ctx, "Secret plans", "world domination", []string{"private"})
	require.NoError(t, err)

	// The stored row must not contain any plaintext.
	rec, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, rec.Encrypted)
	assert.Empty(t, rec.Title)
	assert.Empty(t, rec.Body)
	assert.Empty(t, rec.Tags)
	assert.False(t, rec.Blob.IsZero())
	assert.NotContains(t, string(rec.Blob.Ciphertext), "world domination")

	// Reading back through the service restores the exact payload.
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Secret plans", got.Title)
	assert.Equal(t, "world domination", got.Body)
	assert.Equal(t, []string{"private"}, got.Tags)
}

func TestServiceWrongKeyFailsClosed(t *testing.T) {
	svc, repo := newEncryptedService(t, "right passphrase")
	ctx := context.Background()

	created, err := svc.Create(ctx, "Secret", "body", nil)
	require.NoError(t, err)

	kc := crypto.NewKeychain()
	rec, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	wrongKey := kc.DeriveKey("wrong passphrase", rec.Blob.Salt)
	other := NewService(repo, kc, wrongKey, rec.Blob.Salt, true, logger.Nop())

	_, err = other.Get(ctx, created.ID)
	assert.ErrorIs(t, err, crypto.ErrDecryption)
}

func TestServiceUpdatePartialFields(t *testing.T) {
	svc, _ := newPlainService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "Title", "Body", []string{"a"})
	require.NoError(t, err)

	newBody := "Updated body"
	updated, err := svc.Update(ctx, created.ID, models.NoteFields{Body: &newBody})
	require.NoError(t, err)

	assert.Equal(t, "Title", updated.Title, "unset fields keep their value")
	assert.Equal(t, "Updated body", updated.Body)
	assert.Equal(t, []string{"a"}, updated.Tags)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestServiceUpdatedAtStrictlyIncreases(t *testing.T) {
	svc, _ := newPlainService()
	ctx := context.Background()

	// Freeze the clock: even with zero elapsed time, UpdatedAt must move.
	frozen := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return frozen }

	created, err := svc.Create(ctx, "t", "b", nil)
	require.NoError(t, err)

	title := "t2"
	first, err := svc.Update(ctx, created.ID, models.NoteFields{Title: &title})
	require.NoError(t, err)
	assert.True(t, first.UpdatedAt.After(created.UpdatedAt))

	second, err := svc.Update(ctx, created.ID, models.NoteFields{Title: &title})
	require.NoError(t, err)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
}

func TestServiceUpdateNotFound(t *testing.T) {
	svc, _ := newPlainService()

	title := "x"
	_, err := svc.Update(context.Background(), "ghost", models.NoteFields{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceDelete(t *testing.T) {
	svc, repo := newPlainService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "t", "b", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The tombstone stays behind, marked dirty for the next sync.
	states, err := repo.GetSyncStates(ctx)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.True(t, states[0].Deleted)
	assert.True(t, states[0].Dirty)
}

func TestServiceDeleteTwice(t *testing.T) {
	svc, _ := newPlainService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "t", "b", nil)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceListInsertionOrder(t *testing.T) {
	svc, _ := newPlainService()
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, title, "", nil)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "first", all[0].Title)
	assert.Equal(t, "second", all[1].Title)
	assert.Equal(t, "third", all[2].Title)
}

func TestServiceSearch(t *testing.T) {
	svc, _ := newPlainService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "Groceries", "buy milk and eggs", []string{"shopping"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Meeting notes", "quarterly review with MILK Corp", []string{"work"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Ideas", "write a novel", []string{"personal", "writing"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		query  string
		field  models.SearchField
		titles []string
	}{
		{"case insensitive across fields", "milk", models.SearchAll, []string{"Groceries", "Meeting notes"}},
		{"title only", "groceries", models.SearchTitle, []string{"Groceries"}},
		{"body only", "novel", models.SearchBody, []string{"Ideas"}},
		{"tag only", "work", models.SearchTag, []string{"Meeting notes"}},
		{"empty query matches all", "", models.SearchAll, []string{"Groceries", "Meeting notes", "Ideas"}},
		{"no match", "zebra", models.SearchAll, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Search(ctx, tt.query, tt.field)
			require.NoError(t, err)

			titles := make([]string, 0, len(got))
			for _, n := range got {
				titles = append(titles, n.Title)
			}
			assert.Equal(t, tt.titles, titles)
		})
	}
}

func TestServiceSearchEncryptedNotes(t *testing.T) {
	svc, _ := newEncryptedService(t, "pass")
	ctx := context.Background()

	_, err := svc.Create(ctx, "Groceries", "buy milk", nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Other", "nothing here", nil)
	require.NoError(t, err)

	got, err := svc.Search(ctx, "MILK", models.SearchAll)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Groceries", got[0].Title)
}

func TestServiceSearchExcludesDeleted(t *testing.T) {
	svc, _ := newPlainService()
	ctx := context.Background()

	kept, err := svc.Create(ctx, "keep me", "", nil)
	require.NoError(t, err)
	gone, err := svc.Create(ctx, "delete me", "", nil)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, gone.ID))

	got, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, kept.ID, got[0].ID)
}

func TestServiceMixedEncryptionListing(t *testing.T) {
	// Notes created before encryption was enabled stay plaintext rows and
	// must remain readable alongside sealed ones.
	svc, repo := newEncryptedService(t, "pass")
	ctx := context.Background()

	plain := NewService(repo, crypto.NewKeychain(), nil, nil, false, logger.Nop())
	_, err := plain.Create(ctx, "old plaintext", "", nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "new sealed", "", nil)
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "old plaintext", all[0].Title)
	assert.False(t, all[0].Encrypted)
	assert.Equal(t, "new sealed", all[1].Title)
	assert.True(t, all[1].Encrypted)
}

func TestServiceCreateEncryptedWithoutKey(t *testing.T) {
	repo := mock.NewNoteRepository()
	svc := NewService(repo, crypto.NewKeychain(), nil, nil, true, logger.Nop())

	_, err := svc.Create(context.Background(), "t", "b", nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}
