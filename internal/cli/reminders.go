// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package cli

import (
	"context"
	"fmt"
)

// checkReminders prints every fired, unacknowledged reminder and offers
// to mark it completed. Runs once at startup and on menu demand.
func (c *CLI) checkReminders(ctx context.Context) error {
	due, err := c.reminders.DueNow(ctx)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		fmt.Fprintln(c.out, helpStyle.Render("No reminders due."))
		return nil
	}

	for _, rem := range due {
		fmt.Fprintln(c.out, errorStyle.Render(
			fmt.Sprintf("\nREMINDER: %s (Due: %s)", rem.Title, c.formatTime(rem.DueAt))))

		note, err := c.notes.Get(ctx, rem.NoteID)
		if err == nil {
			fmt.Fprintln(c.out, note.Body)
		}

		done, err := c.promptYesNo("Mark as completed?")
		if err != nil {
			return err
		}
		if done {
			if err = c.reminders.Acknowledge(ctx, rem.NoteID); err != nil {
				return err
			}
			fmt.Fprintln(c.out, successStyle.Render("Reminder completed."))
		}
	}
	return nil
}
