package syncer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anikulin/note-taker-pro/internal/crypto"
	"github.com/anikulin/note-taker-pro/internal/logger"
	"github.com/anikulin/note-taker-pro/internal/mock"
	"github.com/anikulin/note-taker-pro/internal/notes"
	"github.com/anikulin/note-taker-pro/models"
)

// device bundles one client's repository, note service and sync engine,
// so tests can simulate several devices sharing a remote.
type device struct {
	repo   *mock.NoteRepository
	svc    *notes.Service
	engine *Engine
}

func newDevice(remote *mock.RemoteStore) *device {
	repo := mock.NewNoteRepository()
	return &device{
		repo:   repo,
		svc:    notes.NewService(repo, crypto.NewKeychain(), nil, nil, false, logger.Nop()),
		engine: NewEngine(repo, remote, logger.Nop()),
	}
}

func newEncryptedDevice(t *testing.T, remote *mock.RemoteStore, passphrase string, salt []byte) *device {
	t.Helper()

	repo := mock.NewNoteRepository()
	kc := crypto.NewKeychain()
	key := kc.DeriveKey(passphrase, salt)
	return &device{
		repo:   repo,
		svc:    notes.NewService(repo, kc, key, salt, true, logger.Nop()),
		engine: NewEngine(repo, remote, logger.Nop()),
	}
}

func TestSyncPushesNewNote(t *testing.T) {
	remote := mock.NewRemoteStore()
	dev := newDevice(remote)
	ctx := context.Background()

	note, err := dev.svc.Create(ctx, "Groceries", "milk", []string{"shopping"})
	require.NoError(t, err)

	report, err := dev.engine.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Pushed)
	assert.Empty(t, report.Conflicts)

	_, ok := remote.Payload(note.ID)
	assert.True(t, ok, "payload must land on the remote")

	states, err := dev.repo.GetSyncStates(ctx)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, int64(1), states[0].BaseRev)
	assert.False(t, states[0].Dirty)
}

func TestSyncPullsToSecondDevice(t *testing.T) {
	remote := mock.NewRemoteStore()
	devA := newDevice(remote)
	devB := newDevice(remote)
	ctx := context.Background()

	created, err := devA.svc.Create(ctx, "Groceries", "milk and eggs", []string{"shopping"})
	require.NoError(t, err)
	_, err = devA.engine.Sync(ctx)
	require.NoError(t, err)

	report, err := devB.engine.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Pulled)

	got, err := devB.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Title)
	assert.Equal(t, "milk and eggs", got.Body)
	assert.Equal(t, []string{"shopping"}, got.Tags)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
}

func TestPullAdvancesBaseRevision(t *testing.T) {
	remote := mock.NewRemoteStore()
	devA := newDevice(remote)
	devB := newDevice(remote)
	ctx := context.Background()

	created, err := devA.svc.Create(ctx, "t", "v1", nil)
	require.NoError(t, err)
	_, err = devA.engine.Sync(ctx)
	require.NoError(t, err)
	_, err = devB.engine.Sync(ctx)
	require.NoError(t, err)

	body := "v2"
	_, err = devA.svc.Update(ctx, created.ID, models.NoteFields{Body: &body})
	require.NoError(t, err)
	_, err = devA.engine.Sync(ctx)
	require.NoError(t, err)
	_, err = devB.engine.Sync(ctx)
	require.NoError(t, err)

	// The pull must persist the new base revision: a clean run after it
	// re-pulls nothing.
	report, err := devB.engine.Sync(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.Pulled)

	states, err := devB.repo.GetSyncStates(ctx)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, int64(2), states[0].BaseRev)

	// An edit on top of the pulled revision is a plain push, not a
	// conflict: only this device changed since rev 2.
	body = "v3"
	_, err = devB.svc.Update(ctx, created.ID, models.NoteFields{Body: &body})
	require.NoError(t, err)

	report, err = devB.engine.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Pushed)
	assert.Empty(t, report.Conflicts)
}

func TestSyncPropagatesEdit(t *testing.T) {
	remote := mock.NewRemoteStore()
	devA := newDevice(remote)
	devB := newDevice(remote)
	ctx := context.Background()

	created, err := devA.svc.Create(ctx, "t", "v1", nil)
	require.NoError(t, err)
	_, err = devA.engine.Sync(ctx)
	require.NoError(t, err)
	_, err = devB.engine.Sync(ctx)
	require.NoError(t, err)

	body := "v2"
	_, err = devA.svc.Update(ctx, created.ID, models.NoteFields{Body: &body})
	require.NoError(t, err)
	_, err = devA.engine.Sync(ctx)
	require.NoError(t, err)

	report, err := devB.engine.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Pulled)

	got, err := devB.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Body)
}

func TestSyncPropagatesDelete(t *testing.T) {
	remote := mock.NewRemoteStore()
	devA := newDevice(remote)
	devB := newDevice(remote)
	ctx := context.Background()

	created, err := devA.svc.Create(ctx, "t", "b", nil)
	require.NoError(t, err)
	_, err = devA.engine.Sync(ctx)
	require.NoError(t, err)
	_, err = devB.engine.Sync(ctx)
	require.NoError(t, err)

	require.NoError(t, devA.svc.Delete(ctx, created.ID))
	report, err := devA.engine.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Deleted)

	// The tombstone is gone from A's store entirely.
	recs, err := devA.repo.GetAll(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, recs)

	report, err = devB.engine.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Deleted)

	_, err = devB.svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, notes.ErrNotFound)
}

func TestSyncSurfacesConflictWithoutMerging(t *testing.T) {
	remote := mock.NewRemoteStore()
	devA := newDevice(remote)
	devB := newDevice(remote)
	ctx := context.Background()

	created, err := devA.svc.Create(ctx, "t", "base", nil)
	require.NoError(t, err)
	_, err = devA.engine.Sync(ctx)
	require.NoError(t, err)
	_, err = devB.engine.Sync(ctx)
	require.NoError(t, err)

	bodyA, bodyB := "edited on A", "edited on B"
	_, err = devA.svc.Update(ctx, created.ID, models.NoteFields{Body: &bodyA})
	require.NoError(t, err)
	_, err = devB.svc.Update(ctx, created.ID, models.NoteFields{Body: &bodyB})
	require.NoError(t, err)

	_, err = devA.engine.Sync(ctx)
	require.NoError(t, err)

	report, err := devB.engine.Sync(ctx)
	require.NoError(t, err)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, created.ID, report.Conflicts[0].NoteID)
	assert.Equal(t, models.ConflictBoth, report.Conflicts[0].Kind)

	// Neither side was overwritten.
	gotB, err := devB.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited on B", gotB.Body)
	gotA, err := devA.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited on A", gotA.Body)
}

func TestResolveKeepRemote(t *testing.T) {
	remote := mock.NewRemoteStore()
	devA := newDevice(remote)
	devB := newDevice(remote)
	ctx := context.Background()

	created, err := devA.svc.Create(ctx, "t", "base", nil)
	require.NoError(t, err)
	_, err = devA.engine.Sync(ctx)
	require.NoError(t, err)
	_, err = devB.engine.Sync(ctx)
	require.NoError(t, err)

	bodyA, bodyB := "A wins", "B loses"
	_, err = devA.svc.Update(ctx, created.ID, models.NoteFields{Body: &bodyA})
	require.NoError(t, err)
	_, err = devA.engine.Sync(ctx)
	require.NoError(t, err)
	_, err = devB.svc.Update(ctx, created.ID, models.NoteFields{Body: &bodyB})
	require.NoError(t, err)

	require.NoError(t, devB.engine.ResolveKeepRemote(ctx, created.ID))

	got, err := devB.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "A wins", got.Body)

	// The conflict is settled: the next run is clean.
	report, err := devB.engine.Sync(ctx)
	require.NoError(t, err)
	assert.Empty(t, report.Conflicts)
}

func TestResolveKeepLocal(t *testing.T) {
	remote := mock.NewRemoteStore()
	devA := newDevice(remote)
	devB := newDevice(remote)
	ctx := context.Background()

	created, err := devA.svc.Create(ctx, "t", "base", nil)
	require.NoError(t, err)
	_, err = devA.engine.Sync(ctx)
	require.NoError(t, err)
	_, err = devB.engine.Sync(ctx)
	require.NoError(t, err)

	bodyA, bodyB := "A loses", "B wins"
	_, err = devA.svc.Update(ctx, created.ID, models.NoteFields{Body: &bodyA})
	require.NoError(t, err)
	_, err = devA.engine.Sync(ctx)
	require.NoError(t, err)
	_, err = devB.svc.Update(ctx, created.ID, models.NoteFields{Body: &bodyB})
	require.NoError(t, err)

	require.NoError(t, devB.engine.ResolveKeepLocal(ctx, created.ID))

	// A pulls the resolved version.
	report, err := devA.engine.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Pulled)

	got, err := devA.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "B wins", got.Body)
}

func TestSyncUnavailableLeavesLocalUntouched(t *testing.T) {
	remote := mock.NewRemoteStore()
	dev := newDevice(remote)
	ctx := context.Background()

	_, err := dev.svc.Create(ctx, "t", "b", nil)
	require.NoError(t, err)

	remote.Unavailable = true
	_, err = dev.engine.Sync(ctx)
	assert.ErrorIs(t, err, ErrSyncUnavailable)

	states, err := dev.repo.GetSyncStates(ctx)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.True(t, states[0].Dirty, "note stays dirty for the next run")
	assert.Equal(t, int64(0), states[0].BaseRev)
}

func TestSyncEncryptedAcrossDevices(t *testing.T) {
	remote := mock.NewRemoteStore()
	kc := crypto.NewKeychain()
	salt, err := kc.GenerateSalt()
	require.NoError(t, err)

	devA := newEncryptedDevice(t, remote, "shared passphrase", salt)
	devB := newEncryptedDevice(t, remote, "shared passphrase", salt)
	ctx := context.Background()

	created, err := devA.svc.Create(ctx, "Secret", "classified body", nil)
	require.NoError(t, err)
	_, err = devA.engine.Sync(ctx)
	require.NoError(t, err)

	// The remote only ever sees ciphertext.
	payload, ok := remote.Payload(created.ID)
	require.True(t, ok)
	assert.NotContains(t, string(payload), "classified body")

	_, err = devB.engine.Sync(ctx)
	require.NoError(t, err)

	got, err := devB.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Secret", got.Title)
	assert.Equal(t, "classified body", got.Body)
}

func TestSyncKeepsLocalReminderOnPull(t *testing.T) {
	remote := mock.NewRemoteStore()
	devA := newDevice(remote)
	devB := newDevice(remote)
	ctx := context.Background()

	created, err := devA.svc.Create(ctx, "t", "v1", nil)
	require.NoError(t, err)
	_, err = devA.engine.Sync(ctx)
	require.NoError(t, err)
	_, err = devB.engine.Sync(ctx)
	require.NoError(t, err)

	// B sets a local reminder; A edits the body. A reminder-only change
	// does not mark the note dirty, so B simply pulls A's edit.
	due := time.Date(2027, 1, 1, 9, 0, 0, 0, time.UTC)
	_, err = devB.svc.Update(ctx, created.ID, models.NoteFields{RemindAt: &due})
	require.NoError(t, err)

	body := "v2"
	_, err = devA.svc.Update(ctx, created.ID, models.NoteFields{Body: &body})
	require.NoError(t, err)
	_, err = devA.engine.Sync(ctx)
	require.NoError(t, err)

	_, err = devB.engine.Sync(ctx)
	require.NoError(t, err)

	rec, err := devB.repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, rec.RemindAt, "pull must not clobber the local reminder")
	assert.True(t, rec.RemindAt.Equal(due))
	assert.Equal(t, "v2", rec.Body)
}

func TestJobRunsPeriodically(t *testing.T) {
	remote := mock.NewRemoteStore()
	dev := newDevice(remote)
	ctx := context.Background()

	note, err := dev.svc.Create(ctx, "t", "b", nil)
	require.NoError(t, err)

	job := NewJob(dev.engine, logger.Nop())
	job.Start(ctx, 10*time.Millisecond)
	defer job.Stop()

	require.Eventually(t, func() bool {
		_, ok := remote.Payload(note.ID)
		return ok
	}, 2*time.Second, 10*time.Millisecond, "background job should push the note")

	job.Stop()
}
