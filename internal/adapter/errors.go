// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package adapter

import "errors"

// Sentinel errors the remote adapter maps transport and HTTP failures
// onto. Callers match them with [errors.Is]; the original cause stays
// wrapped for logs.
var (
	// ErrSyncUnavailable is returned when the remote cannot be reached
	// after the bounded retry schedule is exhausted, or when it answers
	// with a server-side failure. Local data is untouched when this is
	// returned.
	ErrSyncUnavailable = errors.New("sync unavailable: remote not reachable")

	// ErrRemoteConflict is returned when a conditional write is rejected
	// because the base revision is stale: another client has pushed a
	// newer revision since this client last synchronized.
	ErrRemoteConflict = errors.New("remote revision conflict")

	// ErrUnauthorized is returned when the remote rejects the access
	// secret or the bearer token.
	ErrUnauthorized = errors.New("remote authorization failed")

	// ErrNotFound is returned when the requested blob does not exist on
	// the remote.
	ErrNotFound = errors.New("blob not found on remote")

	// ErrBadRequest is returned when the remote rejects the request as
	// malformed.
	ErrBadRequest = errors.New("remote rejected request")
)
