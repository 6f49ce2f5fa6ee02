// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package models

import "time"

// TokenRequest is the body of POST /api/auth/token. The client exchanges
// the pre-shared access secret for a short-lived signed token.
type TokenRequest struct {
	AccessSecret string `json:"access_secret"`
}

// TokenResponse carries the signed bearer token and its expiry.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PutBlobRequest is the body of PUT /api/notes/{id}. Payload is opaque to
// the server; the expected base revision travels in the If-Match header.
type PutBlobRequest struct {
	Payload []byte `json:"payload"`
}

// PutBlobResponse reports the revision assigned to the accepted write.
type PutBlobResponse struct {
	NoteID string `json:"note_id"`
	Rev    int64  `json:"rev"`
}

// BlobResponse is the body of GET /api/notes/{id}: the stored payload
// together with its current revision.
type BlobResponse struct {
	NoteID    string     `json:"note_id"`
	Payload   []byte     `json:"payload"`
	Rev       int64      `json:"rev"`
	Deleted   bool       `json:"deleted"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// StatesResponse is the body of GET /api/notes/states.
type StatesResponse struct {
	States []RemoteState `json:"states"`
}

// ErrorResponse is the uniform error body returned by the sync server.
type ErrorResponse struct {
	Error string `json:"error"`
}
