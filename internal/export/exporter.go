// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

// Package export renders notes to standalone HTML or Markdown files.
// Note bodies are treated as Markdown; the HTML exporter renders them
// through goldmark into a self-contained styled document.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/anikulin/note-taker-pro/models"
)

// ErrUnsupportedFormat is returned for any format other than the
// supported ones. The set of valid inputs never changes silently; an
// unknown format is an error, not a fallback to a default.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format identifies an export output format.
type Format string

const (
	// FormatHTML renders the note as a standalone HTML document.
	FormatHTML Format = "html"

	// FormatMarkdown renders the note as a Markdown file.
	FormatMarkdown Format = "md"
)

// ParseFormat maps user input to a [Format], case-insensitively.
// "markdown" is accepted as an alias for "md".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "html":
		return FormatHTML, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

const timestampLayout = "2006-01-02 15:04"

var htmlTemplate = template.Must(template.New("note").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>{{.Title}}</title>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; max-width: 800px; margin: 0 auto; padding: 20px; }
        h1 { color: #333; }
        .meta { color: #666; font-size: 0.9em; }
        .content { margin-top: 20px; }
        .tags { margin-top: 20px; color: #0066cc; }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    <div class="meta">
        Created: {{.Created}}<br>
        Modified: {{.Modified}}
    </div>
    <div class="content">
        {{.Content}}
    </div>
    <div class="tags">
        Tags: {{.Tags}}
    </div>
</body>
</html>
`))

const markdownTemplate = `# %s

**Created:** %s
**Modified:** %s

%s

**Tags:** %s
`

// Exporter renders notes into export documents.
type Exporter struct {
	md goldmark.Markdown
}

// NewExporter constructs an [Exporter] with GitHub Flavored Markdown
// extensions (tables, strikethrough, task lists, autolinks).
func NewExporter() *Exporter {
	return &Exporter{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Render returns the note serialized in the requested format.
func (e *Exporter) Render(note models.Note, format Format) ([]byte, error) {
	switch format {
	case FormatHTML:
		return e.renderHTML(note)
	case FormatMarkdown:
		return e.renderMarkdown(note), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// FileName returns the export file name for the note:
// note_<id>_<title>.<ext> with spaces and path separators replaced by
// underscores.
func (e *Exporter) FileName(note models.Note, format Format) string {
	return fmt.Sprintf("note_%s_%s.%s", note.ID, sanitizeTitle(note.Title), format)
}

// Export renders the note and writes it into dir, returning the full
// path of the written file.
func (e *Exporter) Export(note models.Note, format Format, dir string) (string, error) {
	content, err := e.Render(note, format)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, e.FileName(note, format))
	if err = os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}

	return path, nil
}

func (e *Exporter) renderHTML(note models.Note) ([]byte, error) {
	var body bytes.Buffer
	if err := e.md.Convert([]byte(note.Body), &body); err != nil {
		return nil, fmt.Errorf("render markdown body: %w", err)
	}

	var out bytes.Buffer
	err := htmlTemplate.Execute(&out, struct {
		Title    string
		Created  string
		Modified string
		Content  template.HTML
		Tags     string
	}{
		Title:    note.Title,
		Created:  note.CreatedAt.Format(timestampLayout),
		Modified: note.UpdatedAt.Format(timestampLayout),
		Content:  template.HTML(body.String()), //nolint:gosec // body is rendered by goldmark, which escapes raw HTML by default
		Tags:     strings.Join(note.Tags, ", "),
	})
	if err != nil {
		return nil, fmt.Errorf("render html document: %w", err)
	}

	return out.Bytes(), nil
}

func (e *Exporter) renderMarkdown(note models.Note) []byte {
	return fmt.Appendf(nil, markdownTemplate,
		note.Title,
		note.CreatedAt.Format(timestampLayout),
		note.UpdatedAt.Format(timestampLayout),
		note.Body,
		strings.Join(note.Tags, ", "),
	)
}

func sanitizeTitle(title string) string {
	replacer := strings.NewReplacer(" ", "_", string(filepath.Separator), "_", "/", "_")
	sanitized := replacer.Replace(title)
	if sanitized == "" {
		sanitized = "untitled"
	}
	return sanitized
}
