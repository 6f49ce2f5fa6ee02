// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package store

const noteColumns = `id, title, body, tags, blob, encrypted, created_at, updated_at, remind_at, remind_acked, base_rev, dirty, deleted`

const (
	sqlInsertNote = `INSERT INTO notes (` + noteColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`

	sqlUpdateNote = `UPDATE notes
SET title = $1, body = $2, tags = $3, blob = $4, encrypted = $5,
    updated_at = $6, remind_at = $7, remind_acked = $8, base_rev = $9, dirty = $10, deleted = $11
WHERE id = $12;`

	sqlSelectNoteByID = `SELECT ` + noteColumns + ` FROM notes WHERE id = $1;`

	sqlSelectNotes = `SELECT ` + noteColumns + ` FROM notes WHERE deleted = FALSE ORDER BY seq;`

	sqlSelectNotesWithDeleted = `SELECT ` + noteColumns + ` FROM notes ORDER BY seq;`

	sqlSoftDeleteNote = `UPDATE notes
SET deleted = TRUE, dirty = TRUE, updated_at = $1, remind_at = NULL, remind_acked = FALSE
WHERE id = $2 AND deleted = FALSE;`

	sqlHardDeleteNote = `DELETE FROM notes WHERE id = $1;`

	sqlSelectSyncStates = `SELECT id, base_rev, dirty, deleted FROM notes ORDER BY seq;`

	sqlUpdateSyncState = `UPDATE notes SET base_rev = $1, dirty = $2 WHERE id = $3;`

	sqlSelectDueReminders = `SELECT ` + noteColumns + ` FROM notes
WHERE remind_at IS NOT NULL AND remind_at <= $1 AND remind_acked = FALSE AND deleted = FALSE
ORDER BY remind_at;`

	sqlAcknowledgeReminder = `UPDATE notes SET remind_acked = TRUE
WHERE id = $1 AND remind_at IS NOT NULL;`

	sqlClearReminder = `UPDATE notes SET remind_at = NULL, remind_acked = FALSE WHERE id = $1;`
)
