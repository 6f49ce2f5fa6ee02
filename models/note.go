// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package models

import "time"

// Note is the primary domain record of the application: a user-authored
// text entry with metadata. All fields except ID are mutable; ID is
// assigned once at creation and never changes.
type Note struct {
	// ID is the stable unique identifier of the note (UUID string).
	ID string `json:"id"`

	// Title is the human-readable heading of the note.
	Title string `json:"title"`

	// Body is the free-form note text. Markdown is allowed and is
	// rendered by the HTML exporter.
	Body string `json:"body"`

	// Tags is the set of user-assigned labels. Order is not significant.
	Tags []string `json:"tags,omitempty"`

	// CreatedAt is the UTC creation timestamp.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the UTC timestamp of the last mutation. It strictly
	// increases on every update, even when two updates land within the
	// clock's resolution.
	UpdatedAt time.Time `json:"updated_at"`

	// RemindAt is the optional reminder due time, normalized to UTC.
	RemindAt *time.Time `json:"remind_at,omitempty"`

	// Encrypted reports whether the note payload is sealed at rest.
	Encrypted bool `json:"encrypted"`
}

// NoteFields is a partial update for a note. Nil pointers mean
// "keep the current value".
type NoteFields struct {
	Title    *string    `json:"title,omitempty"`
	Body     *string    `json:"body,omitempty"`
	Tags     *[]string  `json:"tags,omitempty"`
	RemindAt *time.Time `json:"remind_at,omitempty"`
}

// SearchField selects which note attributes a search query is matched
// against.
type SearchField int

const (
	// SearchAll matches the query against title, body and tags.
	SearchAll SearchField = iota

	// SearchTitle matches the query against the title only.
	SearchTitle

	// SearchBody matches the query against the body only.
	SearchBody

	// SearchTag matches the query against tags only.
	SearchTag
)

// NotePayload groups the confidential fields of a note: everything that
// is sealed into a single EncryptedBlob when encryption at rest is on.
// Timestamps and sync markers stay outside the blob so that the store
// and the sync planner can operate without the key.
type NotePayload struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags,omitempty"`
}

// TableName returns the name of the database table associated with the
// Note model.
func (n *Note) TableName() string {
	return "notes"
}
