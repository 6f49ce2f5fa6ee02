// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package cli

import (
	"errors"
	"strings"

	"github.com/anikulin/note-taker-pro/internal/adapter"
	"github.com/anikulin/note-taker-pro/internal/app"
	"github.com/anikulin/note-taker-pro/internal/crypto"
	"github.com/anikulin/note-taker-pro/internal/export"
	"github.com/anikulin/note-taker-pro/internal/reminder"
	"github.com/anikulin/note-taker-pro/internal/store"
)

// humanizeError turns domain errors into the user-facing wording the
// menu prints. Unknown errors pass through as-is unless they look like
// network failures.
func humanizeError(err error) string {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return app.MsgNoteNotFound
	case errors.Is(err, crypto.ErrDecryption):
		return app.MsgDecryptionFailed
	case errors.Is(err, adapter.ErrSyncUnavailable):
		return app.MsgSyncUnavailable
	case errors.Is(err, adapter.ErrRemoteConflict):
		return app.MsgSyncConflict
	case errors.Is(err, export.ErrUnsupportedFormat):
		return app.MsgUnsupportedFormat
	case errors.Is(err, reminder.ErrInvalidTime):
		return app.MsgInvalidReminderTime
	case errors.Is(err, reminder.ErrUnknownTimezone):
		return app.MsgInvalidTimezone
	case errors.Is(err, reminder.ErrPastTime):
		return app.MsgReminderInPast
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return app.MsgSyncUnavailable
	}

	return err.Error()
}
