// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

// Package syncer implements conflict-aware synchronization of the local
// note store against the remote blob store. Planning (reconcile) is a
// pure function over sync markers; execution moves payloads and updates
// markers. Conflicts are surfaced to the caller, never auto-merged.
package syncer

import (
	"sort"

	"github.com/anikulin/note-taker-pro/models"
)

// Reconcile compares the client's sync markers against the remote's
// revision descriptors and decides, per note, which side wins. It is a
// pure function: no I/O, deterministic output ordered by note ID.
//
// Decision table, per note:
//
//	remote absent, never pushed        -> LocalWins (initial push)
//	remote absent, was pushed before   -> LocalWins (re-push; remote lost it)
//	local absent, remote live          -> RemoteWins (initial pull)
//	local absent, remote tombstone     -> InSync (nothing to do)
//	rev == base, clean                 -> InSync
//	rev == base, dirty                 -> LocalWins
//	rev > base, clean                  -> RemoteWins
//	rev > base, dirty                  -> ConflictBoth
func Reconcile(local []models.SyncState, remote []models.RemoteState) []models.Resolution {
	localByID := make(map[string]models.SyncState, len(local))
	for _, st := range local {
		localByID[st.NoteID] = st
	}
	remoteByID := make(map[string]models.RemoteState, len(remote))
	for _, st := range remote {
		remoteByID[st.NoteID] = st
	}

	ids := make(map[string]struct{}, len(local)+len(remote))
	for id := range localByID {
		ids[id] = struct{}{}
	}
	for id := range remoteByID {
		ids[id] = struct{}{}
	}

	resolutions := make([]models.Resolution, 0, len(ids))
	for id := range ids {
		loc, hasLocal := localByID[id]
		rem, hasRemote := remoteByID[id]

		res := models.Resolution{NoteID: id, Local: loc, Remote: rem}
		res.Kind = resolve(loc, hasLocal, rem, hasRemote)
		resolutions = append(resolutions, res)
	}

	sort.Slice(resolutions, func(i, j int) bool {
		return resolutions[i].NoteID < resolutions[j].NoteID
	})

	return resolutions
}

func resolve(loc models.SyncState, hasLocal bool, rem models.RemoteState, hasRemote bool) models.ResolutionKind {
	switch {
	case hasLocal && !hasRemote:
		if loc.Deleted && loc.BaseRev == 0 {
			// Deleted before it was ever pushed: nothing to propagate.
			return models.InSync
		}
		return models.LocalWins

	case !hasLocal && hasRemote:
		if rem.Deleted {
			return models.InSync
		}
		return models.RemoteWins

	default:
		remoteChanged := rem.Rev != loc.BaseRev
		switch {
		case !remoteChanged && !loc.Dirty:
			return models.InSync
		case !remoteChanged && loc.Dirty:
			return models.LocalWins
		case remoteChanged && !loc.Dirty:
			return models.RemoteWins
		default:
			return models.ConflictBoth
		}
	}
}
