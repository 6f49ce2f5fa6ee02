// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

// Package reminder implements timezone-aware note reminders. Due times
// are entered as wall-clock strings in an IANA zone, normalized to UTC
// for storage, and surfaced by polling: there is no background timer,
// the CLI asks for due reminders at startup and before each menu cycle.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anikulin/note-taker-pro/internal/logger"
	"github.com/anikulin/note-taker-pro/internal/notes"
	"github.com/anikulin/note-taker-pro/internal/store"
	"github.com/anikulin/note-taker-pro/models"
)

// TimeLayout is the wall-clock input format for reminder due times.
const TimeLayout = "2006-01-02 15:04"

var (
	// ErrInvalidTime is returned when the due time string does not match
	// [TimeLayout].
	ErrInvalidTime = errors.New("invalid reminder time, expected YYYY-MM-DD HH:MM")

	// ErrUnknownTimezone is returned when the zone name is not a valid
	// IANA timezone.
	ErrUnknownTimezone = errors.New("unknown timezone")

	// ErrPastTime is returned when the due time is not in the future.
	ErrPastTime = errors.New("reminder time is in the past")
)

// Scheduler manages reminders on top of the note store. Titles shown in
// due notifications go through the note service so sealed notes decrypt
// before display.
type Scheduler struct {
	notes  notes.Store
	repo   store.NoteRepository
	defLoc *time.Location
	logger *logger.Logger

	now func() time.Time
}

// NewScheduler constructs a [Scheduler]. defLoc is the zone applied when
// the caller schedules without naming one; it comes from configuration.
func NewScheduler(noteStore notes.Store, repo store.NoteRepository, defLoc *time.Location, log *logger.Logger) *Scheduler {
	if defLoc == nil {
		defLoc = time.UTC
	}
	return &Scheduler{
		notes:  noteStore,
		repo:   repo,
		defLoc: defLoc,
		logger: &logger.Logger{Logger: log.With().Str("component", "reminder").Logger()},
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Schedule attaches a reminder to the note. dueAt is a wall-clock time in
// [TimeLayout]; tz names the IANA zone it is read in, empty meaning the
// scheduler's default. The stored due time is UTC, so a reminder set for
// "2026-03-10 14:00" in America/New_York fires at 18:00 UTC.
func (s *Scheduler) Schedule(ctx context.Context, noteID, dueAt, tz string) (models.Reminder, error) {
	loc := s.defLoc
	if tz != "" {
		var err error
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return models.Reminder{}, fmt.Errorf("%w: %q", ErrUnknownTimezone, tz)
		}
	}

	local, err := time.ParseInLocation(TimeLayout, dueAt, loc)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("%w: %q", ErrInvalidTime, dueAt)
	}

	due := local.UTC()
	if !due.After(s.now()) {
		return models.Reminder{}, ErrPastTime
	}

	note, err := s.notes.Update(ctx, noteID, models.NoteFields{RemindAt: &due})
	if err != nil {
		return models.Reminder{}, err
	}
	s.logger.Debug().Str("note_id", noteID).Time("due_at", due).Msg("reminder scheduled")

	return models.Reminder{NoteID: note.ID, Title: note.Title, DueAt: due}, nil
}

// DueNow returns reminders whose due time has passed and that have not
// been acknowledged, ordered by due time.
func (s *Scheduler) DueNow(ctx context.Context) ([]models.Reminder, error) {
	records, err := s.repo.DueReminders(ctx, s.now())
	if err != nil {
		return nil, err
	}

	due := make([]models.Reminder, 0, len(records))
	for _, rec := range records {
		note, err := s.notes.Get(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
		due = append(due, models.Reminder{
			NoteID: note.ID,
			Title:  note.Title,
			DueAt:  *rec.RemindAt,
		})
	}

	return due, nil
}

// Pending returns all unacknowledged reminders, fired or not, in note
// insertion order.
func (s *Scheduler) Pending(ctx context.Context) ([]models.Reminder, error) {
	records, err := s.repo.GetAll(ctx, false)
	if err != nil {
		return nil, err
	}

	pending := make([]models.Reminder, 0)
	for _, rec := range records {
		if rec.RemindAt == nil || rec.RemindAcked {
			continue
		}
		note, err := s.notes.Get(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
		pending = append(pending, models.Reminder{
			NoteID: note.ID,
			Title:  note.Title,
			DueAt:  *rec.RemindAt,
		})
	}

	return pending, nil
}

// Acknowledge marks a fired reminder as seen so it stops reappearing.
func (s *Scheduler) Acknowledge(ctx context.Context, noteID string) error {
	if err := s.repo.AcknowledgeReminder(ctx, noteID); err != nil {
		return err
	}
	s.logger.Debug().Str("note_id", noteID).Msg("reminder acknowledged")
	return nil
}

// Cancel removes the note's reminder entirely.
func (s *Scheduler) Cancel(ctx context.Context, noteID string) error {
	if err := s.repo.ClearReminder(ctx, noteID); err != nil {
		return err
	}
	s.logger.Debug().Str("note_id", noteID).Msg("reminder cancelled")
	return nil
}
