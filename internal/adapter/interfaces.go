// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

// Package adapter provides the transport layer between the client and
// the sync server: a revision-tagged blob store accessed over HTTP. The
// adapter knows nothing about notes or encryption; it moves opaque
// payloads and maps transport failures to sentinel errors.
package adapter

import (
	"context"

	"github.com/anikulin/note-taker-pro/models"
)

// RemoteStore is the client's view of the sync server.
//
// All methods are safe for concurrent use. Authentication is handled
// internally: the adapter exchanges its access secret for a bearer token
// on first use and re-authenticates once when a token expires mid-run.
type RemoteStore interface {
	// States returns the revision descriptors of every blob on the
	// remote, tombstones included. This is the planning input for a sync
	// run; no payloads are transferred.
	States(ctx context.Context) ([]models.RemoteState, error)

	// GetBlob downloads the payload and current revision of one blob.
	GetBlob(ctx context.Context, noteID string) (models.BlobResponse, error)

	// PutBlob uploads payload conditionally on baseRev (0 to create) and
	// returns the newly assigned revision. A stale baseRev yields
	// [ErrRemoteConflict].
	PutBlob(ctx context.Context, noteID string, payload []byte, baseRev int64) (int64, error)

	// DeleteBlob tombstones the blob conditionally on baseRev and
	// returns the tombstone's revision.
	DeleteBlob(ctx context.Context, noteID string, baseRev int64) (int64, error)
}
