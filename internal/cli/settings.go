// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package cli

import (
	"fmt"
	"time"

	"github.com/anikulin/note-taker-pro/internal/app"
	"github.com/anikulin/note-taker-pro/internal/config"
)

// defaultConfigFile is where settings are persisted when no config file
// was named on startup.
const defaultConfigFile = "config.json"

// settingsMenu edits the persisted configuration. Encryption and sync
// toggles only take effect on the next start because the service wiring
// happens at startup.
func (c *CLI) settingsMenu() error {
	for {
		fmt.Fprintln(c.out, titleStyle.Render("\nSETTINGS"))
		fmt.Fprintf(c.out, "%s\n", promptStyle.Render(
			"1. Toggle Encryption (Currently: "+onOff(c.cfg.App.Encrypt)+")"))
		fmt.Fprintln(c.out, "2. Toggle Cloud Sync (Currently: "+onOff(c.cfg.App.Sync)+")")
		fmt.Fprintln(c.out, "3. Set Timezone (Currently: "+c.cfg.App.Timezone+")")
		fmt.Fprintln(c.out, "4. Set Sync Server URL (Currently: "+displayOrUnset(c.cfg.Remote.BaseURL)+")")
		fmt.Fprintln(c.out, "5. Set Access Secret")
		fmt.Fprintln(c.out, "6. Back to Main Menu")

		choice, err := c.prompt("Enter your choice (1-6):")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			c.cfg.App.Encrypt = !c.cfg.App.Encrypt
			if err = c.saveConfig(); err != nil {
				return err
			}
			fmt.Fprintln(c.out, successStyle.Render("Encryption toggled. "+app.MsgRestartRequired))
		case "2":
			c.cfg.App.Sync = !c.cfg.App.Sync
			if err = c.saveConfig(); err != nil {
				return err
			}
			fmt.Fprintln(c.out, successStyle.Render("Cloud sync toggled. "+app.MsgRestartRequired))
		case "3":
			if err = c.setTimezone(); err != nil {
				return err
			}
		case "4":
			url, perr := c.prompt("Enter sync server URL:")
			if perr != nil {
				return perr
			}
			c.cfg.Remote.BaseURL = url
			if err = c.saveConfig(); err != nil {
				return err
			}
			fmt.Fprintln(c.out, successStyle.Render("Sync server URL updated. "+app.MsgRestartRequired))
		case "5":
			secret, perr := ReadPassphrase("Enter access secret:")
			if perr != nil {
				return perr
			}
			c.cfg.Remote.AccessSecret = secret
			if err = c.saveConfig(); err != nil {
				return err
			}
			fmt.Fprintln(c.out, successStyle.Render("Access secret updated."))
		case "6":
			return nil
		default:
			fmt.Fprintln(c.out, errorStyle.Render("Invalid choice. Please enter a number between 1 and 6."))
		}
	}
}

func (c *CLI) setTimezone() error {
	tz, err := c.prompt("Enter timezone (e.g. UTC, America/New_York):")
	if err != nil {
		return err
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		fmt.Fprintln(c.out, errorStyle.Render(app.MsgInvalidTimezone))
		return nil
	}

	c.cfg.App.Timezone = tz
	c.loc = loc
	if err = c.saveConfig(); err != nil {
		return err
	}
	fmt.Fprintln(c.out, successStyle.Render("Timezone set to "+tz+". "+app.MsgRestartRequired))
	return nil
}

// saveConfig persists the current settings to the JSON config file.
func (c *CLI) saveConfig() error {
	path := c.cfg.JSONFilePath
	if path == "" {
		path = defaultConfigFile
		c.cfg.JSONFilePath = path
	}
	return config.WriteJSON(path, c.structuredFromClient())
}

// structuredFromClient maps the client view back onto the full config
// shape the JSON file stores.
func (c *CLI) structuredFromClient() *config.StructuredConfig {
	return &config.StructuredConfig{
		App: config.App{
			Encrypt:  c.cfg.App.Encrypt,
			Sync:     c.cfg.App.Sync,
			Timezone: c.cfg.App.Timezone,
		},
		Storage: config.Storage{
			DB:      config.DB{DSN: c.cfg.Storage.DB.DSN},
			KeyFile: c.cfg.Storage.KeyFile,
		},
		Remote: config.Remote{
			BaseURL:        c.cfg.Remote.BaseURL,
			AccessSecret:   c.cfg.Remote.AccessSecret,
			RequestTimeout: c.cfg.Remote.RequestTimeout,
		},
		Workers: config.Workers{SyncInterval: c.cfg.Workers.SyncInterval},
	}
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}

func displayOrUnset(v string) string {
	if v == "" {
		return "unset"
	}
	return v
}
