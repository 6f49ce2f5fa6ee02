// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/anikulin/note-taker-pro/internal/app"
	"github.com/anikulin/note-taker-pro/models"
)

func (c *CLI) createNote(ctx context.Context) error {
	fmt.Fprintln(c.out, titleStyle.Render("\nCREATE NEW NOTE"))

	title, err := c.prompt("Title:")
	if err != nil {
		return err
	}
	body, err := c.prompt("Content:")
	if err != nil {
		return err
	}
	tagsInput, err := c.prompt("Tags (comma separated):")
	if err != nil {
		return err
	}

	note, err := c.notes.Create(ctx, title, body, splitTags(tagsInput))
	if err != nil {
		return err
	}

	withReminder, err := c.promptYesNo("Add reminder?")
	if err != nil {
		return err
	}
	if withReminder {
		if err = c.scheduleReminder(ctx, note.ID); err != nil {
			// Keep the note; only the reminder failed.
			c.printError(err)
		}
	}

	fmt.Fprintln(c.out, successStyle.Render("\nNote created successfully!"))
	fmt.Fprintln(c.out, helpStyle.Render("ID: "+note.ID))
	return nil
}

func (c *CLI) scheduleReminder(ctx context.Context, noteID string) error {
	dueAt, err := c.prompt("Reminder time (YYYY-MM-DD HH:MM):")
	if err != nil {
		return err
	}
	tz, err := c.prompt(fmt.Sprintf("Timezone (blank for %s):", c.cfg.App.Timezone))
	if err != nil {
		return err
	}

	rem, err := c.reminders.Schedule(ctx, noteID, dueAt, tz)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "%s\n", successStyle.Render(
		"Reminder set for "+c.formatTime(rem.DueAt)+" ("+c.loc.String()+")"))
	return nil
}

func (c *CLI) listNotes(ctx context.Context) error {
	all, err := c.notes.List(ctx)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Fprintln(c.out, warnStyle.Render(app.MsgNoNotes))
		return nil
	}

	fmt.Fprintln(c.out, titleStyle.Render("\nALL NOTES"))
	c.printNoteLines(all)
	return nil
}

func (c *CLI) printNoteLines(list []models.Note) {
	for _, note := range list {
		fmt.Fprintf(c.out, "ID: %s | Title: %s | Tags: %s | Created: %s | Modified: %s\n",
			note.ID, note.Title, strings.Join(note.Tags, ", "),
			c.formatTime(note.CreatedAt), c.formatTime(note.UpdatedAt))
	}
}

func (c *CLI) viewNote(ctx context.Context) error {
	id, err := c.prompt("Enter note ID to view:")
	if err != nil {
		return err
	}

	note, err := c.notes.Get(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, titleStyle.Render("\nNOTE "+note.ID))
	fmt.Fprintln(c.out, promptStyle.Render("Title: ")+note.Title)
	fmt.Fprintf(c.out, "Content:\n%s\n", note.Body)
	fmt.Fprintf(c.out, "Tags: %s\n", strings.Join(note.Tags, ", "))
	fmt.Fprintf(c.out, "Created: %s\n", c.formatTime(note.CreatedAt))
	fmt.Fprintf(c.out, "Modified: %s\n", c.formatTime(note.UpdatedAt))
	if note.RemindAt != nil {
		fmt.Fprintf(c.out, "Reminder: %s\n", c.formatTime(*note.RemindAt))
	}

	copyIt, err := c.promptYesNo("Copy content to clipboard?")
	if err != nil {
		return err
	}
	if copyIt {
		if err = clipboard.WriteAll(note.Body); err != nil {
			return fmt.Errorf("error copying to clipboard: %w", err)
		}
		fmt.Fprintln(c.out, successStyle.Render("Copied to clipboard."))
	}
	return nil
}

func (c *CLI) editNote(ctx context.Context) error {
	id, err := c.prompt("Enter note ID to edit:")
	if err != nil {
		return err
	}

	note, err := c.notes.Get(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, titleStyle.Render("\nEDIT NOTE "+note.ID))
	newTitle, err := c.prompt(fmt.Sprintf("New Title (leave blank to keep %q):", note.Title))
	if err != nil {
		return err
	}
	newBody, err := c.prompt("New Content (leave blank to keep current content):")
	if err != nil {
		return err
	}
	newTags, err := c.prompt("New Tags (comma separated, leave blank to keep current tags):")
	if err != nil {
		return err
	}

	var fields models.NoteFields
	if newTitle != "" {
		fields.Title = &newTitle
	}
	if newBody != "" {
		fields.Body = &newBody
	}
	if newTags != "" {
		tags := splitTags(newTags)
		fields.Tags = &tags
	}

	if fields == (models.NoteFields{}) {
		fmt.Fprintln(c.out, warnStyle.Render("Nothing to change."))
		return nil
	}

	if _, err = c.notes.Update(ctx, id, fields); err != nil {
		return err
	}
	fmt.Fprintln(c.out, successStyle.Render("Note updated successfully!"))
	return nil
}

func (c *CLI) deleteNote(ctx context.Context) error {
	id, err := c.prompt("Enter note ID to delete:")
	if err != nil {
		return err
	}

	note, err := c.notes.Get(ctx, id)
	if err != nil {
		return err
	}

	confirm, err := c.promptYesNo(fmt.Sprintf("Are you sure you want to delete note %q?", note.Title))
	if err != nil {
		return err
	}
	if !confirm {
		fmt.Fprintln(c.out, warnStyle.Render("Delete cancelled."))
		return nil
	}

	if err = c.notes.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(c.out, successStyle.Render("Note deleted successfully!"))
	return nil
}

func (c *CLI) searchNotes(ctx context.Context) error {
	keyword, err := c.prompt("Enter keyword to search:")
	if err != nil {
		return err
	}
	scope, err := c.prompt("Search in (all/title/body/tag, blank for all):")
	if err != nil {
		return err
	}

	field, err := parseSearchField(scope)
	if err != nil {
		return err
	}

	results, err := c.notes.Search(ctx, keyword, field)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(c.out, warnStyle.Render(app.MsgNoMatches))
		return nil
	}

	fmt.Fprintln(c.out, titleStyle.Render(fmt.Sprintf("\nSEARCH RESULTS (%d found):", len(results))))
	c.printNoteLines(results)
	return nil
}

func parseSearchField(scope string) (models.SearchField, error) {
	switch strings.ToLower(scope) {
	case "", "all":
		return models.SearchAll, nil
	case "title":
		return models.SearchTitle, nil
	case "body", "content":
		return models.SearchBody, nil
	case "tag", "tags":
		return models.SearchTag, nil
	default:
		return models.SearchAll, fmt.Errorf("unknown search scope %q", scope)
	}
}
