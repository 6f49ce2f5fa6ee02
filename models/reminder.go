// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package models

import "time"

// Reminder is a due-time marker attached to a note. Due times are stored
// normalized to UTC regardless of the timezone they were entered in.
//
// Lifecycle: created when a note's reminder time is set, cleared when the
// note is deleted or the reminder fires and is acknowledged.
type Reminder struct {
	// NoteID is the note this reminder belongs to.
	NoteID string `json:"note_id"`

	// Title is the note title, carried for display when the reminder
	// fires.
	Title string `json:"title"`

	// DueAt is the absolute due time in UTC.
	DueAt time.Time `json:"due_at"`

	// Acknowledged reports that the user has seen and dismissed the
	// fired reminder.
	Acknowledged bool `json:"acknowledged"`
}

// Due reports whether the reminder has fired at the given instant and is
// still waiting for acknowledgement.
func (r Reminder) Due(now time.Time) bool {
	return !r.Acknowledged && !now.Before(r.DueAt)
}
