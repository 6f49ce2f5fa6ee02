// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package models

import "time"

// SyncState is the per-note synchronization marker kept by the client.
// It records what this client last saw on the remote and whether the
// local copy has diverged since.
type SyncState struct {
	// NoteID is the note this state belongs to.
	NoteID string `json:"note_id"`

	// BaseRev is the remote revision this client last synchronized
	// against. Zero means the note has never been pushed.
	BaseRev int64 `json:"base_rev"`

	// Dirty reports that the note changed locally since BaseRev.
	Dirty bool `json:"dirty"`

	// Deleted reports a local soft-delete that has not yet been
	// propagated to the remote.
	Deleted bool `json:"deleted"`
}

// RemoteState is the lightweight descriptor the remote exposes for
// planning a sync without downloading payloads.
type RemoteState struct {
	// NoteID identifies the blob on the remote.
	NoteID string `json:"note_id"`

	// Rev is the remote's monotonically increasing revision counter
	// for this note.
	Rev int64 `json:"rev"`

	// Deleted reports a remote tombstone.
	Deleted bool `json:"deleted"`

	// UpdatedAt is the remote-side timestamp of the latest revision.
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ResolutionKind classifies the outcome of reconciling one note's local
// state against its remote state.
type ResolutionKind int

const (
	// InSync means neither side changed since the last common revision.
	InSync ResolutionKind = iota

	// LocalWins means only the local side changed: push.
	LocalWins

	// RemoteWins means only the remote side changed: pull.
	RemoteWins

	// ConflictBoth means both sides changed since the last common
	// revision. The conflict is surfaced to the user; it is never
	// auto-merged.
	ConflictBoth
)

// String returns the human-readable name of the resolution kind.
func (k ResolutionKind) String() string {
	switch k {
	case InSync:
		return "in-sync"
	case LocalWins:
		return "local-wins"
	case RemoteWins:
		return "remote-wins"
	case ConflictBoth:
		return "conflict"
	default:
		return "unknown"
	}
}

// Resolution is the decision produced by the reconcile step for a single
// note. For ConflictBoth both sides are carried so the UI can show them.
type Resolution struct {
	Kind   ResolutionKind
	NoteID string
	Local  SyncState
	Remote RemoteState
}

// SyncReport summarizes one full sync run. Conflicts are returned for
// the caller to surface; counters exist for logging and status output.
type SyncReport struct {
	Pushed    int
	Pulled    int
	Deleted   int
	Conflicts []Resolution
}
