// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package cli

import (
	"context"
	"fmt"

	"github.com/anikulin/note-taker-pro/internal/export"
)

func (c *CLI) exportNote(ctx context.Context) error {
	id, err := c.prompt("Enter note ID to export:")
	if err != nil {
		return err
	}
	formatInput, err := c.prompt("Format (html/md):")
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(formatInput)
	if err != nil {
		return err
	}

	note, err := c.notes.Get(ctx, id)
	if err != nil {
		return err
	}

	path, err := c.exporter.Export(note, format, ".")
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, successStyle.Render("Note exported to "+path))
	return nil
}
