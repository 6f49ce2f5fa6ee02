// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package cli

import (
	"context"
	"fmt"

	"github.com/anikulin/note-taker-pro/internal/app"
	"github.com/anikulin/note-taker-pro/models"
)

// syncNow runs a full sync pass and walks the user through any
// conflicts. Conflicting notes are never merged: the user picks which
// side survives, or skips to decide later.
func (c *CLI) syncNow(ctx context.Context) error {
	if c.engine == nil {
		fmt.Fprintln(c.out, warnStyle.Render(app.MsgSyncDisabled))
		return nil
	}

	report, err := c.engine.Sync(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, successStyle.Render(fmt.Sprintf(
		"Sync complete: pushed %d, pulled %d, deleted %d.",
		report.Pushed, report.Pulled, report.Deleted)))

	if len(report.Conflicts) == 0 {
		return nil
	}
	return c.resolveConflicts(ctx, report.Conflicts)
}

func (c *CLI) resolveConflicts(ctx context.Context, conflicts []models.Resolution) error {
	fmt.Fprintln(c.out, errorStyle.Render(
		fmt.Sprintf("\n%d note(s) changed both locally and remotely.", len(conflicts))))

	for _, conflict := range conflicts {
		fmt.Fprintln(c.out, titleStyle.Render("\nCONFLICT: "+conflict.NoteID))
		fmt.Fprintf(c.out, "Local copy:  based on revision %d, edited on this device\n", conflict.Local.BaseRev)
		fmt.Fprintf(c.out, "Remote copy: revision %d", conflict.Remote.Rev)
		if conflict.Remote.UpdatedAt != nil {
			fmt.Fprintf(c.out, ", updated %s", c.formatTime(*conflict.Remote.UpdatedAt))
		}
		fmt.Fprintln(c.out)

		choice, err := c.prompt("Keep which copy? (local/remote/skip):")
		if err != nil {
			return err
		}

		switch choice {
		case "local", "l":
			if err = c.engine.ResolveKeepLocal(ctx, conflict.NoteID); err != nil {
				return err
			}
			fmt.Fprintln(c.out, successStyle.Render("Kept the local copy."))
		case "remote", "r":
			if err = c.engine.ResolveKeepRemote(ctx, conflict.NoteID); err != nil {
				return err
			}
			fmt.Fprintln(c.out, successStyle.Render("Kept the remote copy."))
		default:
			fmt.Fprintln(c.out, warnStyle.Render("Left unresolved. It will surface on the next sync."))
		}
	}
	return nil
}
