// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

// Package app contains shared user-facing message constants.
//
// All Msg* constants are human-readable strings printed by the CLI to
// describe the outcome of an operation. Keeping them in one place
// ensures consistent wording throughout the application.
package app

const (
	// MsgNoteNotFound is printed when an operation targets a note ID
	// that does not exist or has been deleted.
	MsgNoteNotFound = "Note not found!"

	// MsgDecryptionFailed is printed when a sealed note cannot be
	// opened with the derived key.
	MsgDecryptionFailed = "Unable to decrypt: wrong passphrase or corrupted data."

	// MsgSyncUnavailable is printed when the sync server stays
	// unreachable after retries.
	MsgSyncUnavailable = "Sync server is unavailable. Try again later."

	// MsgSyncConflict is printed when a remote write is rejected
	// because another device updated the note first.
	MsgSyncConflict = "Sync conflict detected. Run Sync Now to resolve it."

	// MsgSyncDisabled is printed when a sync action is requested while
	// cloud sync is turned off.
	MsgSyncDisabled = "Cloud sync is disabled. Enable it in Settings."

	// MsgUnsupportedFormat is printed when an export format is neither
	// html nor md.
	MsgUnsupportedFormat = "Unsupported format!"

	// MsgInvalidChoice is printed when a menu selection is out of range.
	MsgInvalidChoice = "Invalid choice. Please enter a number between 1 and 11."

	// MsgInvalidTimezone is printed when an entered IANA zone name does
	// not resolve.
	MsgInvalidTimezone = "Invalid timezone!"

	// MsgInvalidReminderTime is printed when a reminder time does not
	// match the expected layout.
	MsgInvalidReminderTime = "Invalid date format!"

	// MsgReminderInPast is printed when a reminder time has already
	// passed.
	MsgReminderInPast = "Reminder time is in the past!"

	// MsgNoNotes is printed when a listing finds no notes.
	MsgNoNotes = "No notes available."

	// MsgNoMatches is printed when a search finds nothing.
	MsgNoMatches = "No matching notes found."

	// MsgRestartRequired is printed after a settings change that only
	// takes effect on the next start.
	MsgRestartRequired = "Please restart the app for changes to take effect."
)
