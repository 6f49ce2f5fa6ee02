// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

// Package cli implements the interactive menu-driven terminal interface
// of the note-taking application.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/anikulin/note-taker-pro/internal/app"
	"github.com/anikulin/note-taker-pro/internal/config"
	"github.com/anikulin/note-taker-pro/internal/export"
	"github.com/anikulin/note-taker-pro/internal/logger"
	"github.com/anikulin/note-taker-pro/internal/notes"
	"github.com/anikulin/note-taker-pro/internal/reminder"
	"github.com/anikulin/note-taker-pro/internal/syncer"
)

// timestampLayout is how note timestamps are shown to the user, always
// in the configured display timezone.
const timestampLayout = "2006-01-02 15:04"

// CLI drives the interactive session: it renders the menu, dispatches
// user choices to the services, and prints results. The sync engine and
// job are nil when cloud sync is disabled.
type CLI struct {
	notes     *notes.Service
	reminders *reminder.Scheduler
	exporter  *export.Exporter
	engine    *syncer.Engine
	job       *syncer.Job
	cfg       *config.ClientConfig
	loc       *time.Location
	logger    *logger.Logger

	scanner *bufio.Scanner
	out     io.Writer
}

// New constructs the CLI. in and out are injectable for tests; the
// display timezone falls back to UTC when the configured zone does not
// resolve.
func New(
	noteSvc *notes.Service,
	reminders *reminder.Scheduler,
	exporter *export.Exporter,
	engine *syncer.Engine,
	job *syncer.Job,
	cfg *config.ClientConfig,
	log *logger.Logger,
	in io.Reader,
	out io.Writer,
) *CLI {
	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		loc = time.UTC
	}

	return &CLI{
		notes:     noteSvc,
		reminders: reminders,
		exporter:  exporter,
		engine:    engine,
		job:       job,
		cfg:       cfg,
		loc:       loc,
		logger:    &logger.Logger{Logger: log.With().Str("component", "cli").Logger()},
		scanner:   bufio.NewScanner(in),
		out:       out,
	}
}

// Run shows due reminders once, then loops over the main menu until the
// user exits or the input stream closes.
func (c *CLI) Run(ctx context.Context) error {
	if err := c.checkReminders(ctx); err != nil && !errors.Is(err, io.EOF) {
		c.printError(err)
	}

	for {
		if c.job != nil {
			if pending := c.job.PendingConflicts(); len(pending) > 0 {
				fmt.Fprintln(c.out, warnStyle.Render(fmt.Sprintf(
					"%d sync conflict(s) pending. Run Sync Now to resolve.", len(pending))))
			}
		}
		c.showMenu()

		choice, err := c.prompt("\nEnter your choice (1-11):")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		done, err := c.dispatch(ctx, choice)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			c.printError(err)
			continue
		}
		if done {
			fmt.Fprintln(c.out, titleStyle.Render("\nGoodbye!"))
			return nil
		}
	}
}

func (c *CLI) showMenu() {
	fmt.Fprintln(c.out, titleStyle.Render("\nNOTE TAKER PRO"))
	fmt.Fprintln(c.out, promptStyle.Render("1. Create Note"))
	fmt.Fprintln(c.out, "2. List Notes")
	fmt.Fprintln(c.out, "3. View Note")
	fmt.Fprintln(c.out, "4. Edit Note")
	fmt.Fprintln(c.out, "5. Delete Note")
	fmt.Fprintln(c.out, "6. Search Notes")
	fmt.Fprintln(c.out, "7. Check Reminders")
	fmt.Fprintln(c.out, "8. Export Note")
	fmt.Fprintln(c.out, "9. Settings")
	fmt.Fprintln(c.out, "10. Sync Now")
	fmt.Fprintln(c.out, "11. Exit")
}

// dispatch routes a menu choice. The boolean result signals exit.
func (c *CLI) dispatch(ctx context.Context, choice string) (bool, error) {
	switch choice {
	case "1":
		return false, c.createNote(ctx)
	case "2":
		return false, c.listNotes(ctx)
	case "3":
		return false, c.viewNote(ctx)
	case "4":
		return false, c.editNote(ctx)
	case "5":
		return false, c.deleteNote(ctx)
	case "6":
		return false, c.searchNotes(ctx)
	case "7":
		return false, c.checkReminders(ctx)
	case "8":
		return false, c.exportNote(ctx)
	case "9":
		return false, c.settingsMenu()
	case "10":
		return false, c.syncNow(ctx)
	case "11":
		return true, nil
	default:
		fmt.Fprintln(c.out, errorStyle.Render("\n"+app.MsgInvalidChoice))
		return false, nil
	}
}

// formatTime renders a timestamp in the display timezone.
func (c *CLI) formatTime(t time.Time) string {
	return t.In(c.loc).Format(timestampLayout)
}

func (c *CLI) printError(err error) {
	c.logger.Err(err).Msg("cli action failed")
	fmt.Fprintln(c.out, errorStyle.Render(humanizeError(err)))
}
