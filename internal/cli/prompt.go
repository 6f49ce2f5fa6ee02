// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readLine reads one line of input, trimmed of surrounding whitespace.
// On EOF it returns io.EOF so the main loop can exit cleanly when the
// input stream is closed.
func (c *CLI) readLine() (string, error) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.scanner.Text()), nil
}

// prompt prints a styled prompt and reads the answer.
func (c *CLI) prompt(label string) (string, error) {
	fmt.Fprint(c.out, promptStyle.Render(label)+" ")
	return c.readLine()
}

// promptYesNo asks a y/n question. Anything other than "y" counts as no.
func (c *CLI) promptYesNo(label string) (bool, error) {
	answer, err := c.prompt(label + " (y/n):")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y"), nil
}

// splitTags parses a comma-separated tag list, dropping empty entries.
func splitTags(input string) []string {
	parts := strings.Split(input, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ReadPassphrase reads a passphrase from the terminal without echoing.
// When stdin is not a terminal (tests, piped input) it falls back to a
// plain line read.
func ReadPassphrase(label string) (string, error) {
	fmt.Fprint(os.Stderr, promptStyle.Render(label)+" ")

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("error reading passphrase: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("error reading passphrase: %w", err)
	}
	return strings.TrimSpace(line), nil
}
