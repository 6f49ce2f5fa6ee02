// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/anikulin/note-taker-pro/internal/adapter"
	"github.com/anikulin/note-taker-pro/internal/cli"
	"github.com/anikulin/note-taker-pro/internal/config"
	"github.com/anikulin/note-taker-pro/internal/crypto"
	"github.com/anikulin/note-taker-pro/internal/export"
	"github.com/anikulin/note-taker-pro/internal/logger"
	"github.com/anikulin/note-taker-pro/internal/notes"
	"github.com/anikulin/note-taker-pro/internal/reminder"
	"github.com/anikulin/note-taker-pro/internal/store"
	"github.com/anikulin/note-taker-pro/internal/syncer"
)

var errEmptyPassphrase = errors.New("passphrase must not be empty")

// App assembles the services behind the interactive CLI and owns the
// background sync job's lifecycle.
type App struct {
	ui           *cli.CLI
	job          *syncer.Job
	syncInterval time.Duration
	logger       *logger.Logger
}

// NewApp wires the client from configuration: local SQLite store, the
// keychain when encryption is on, and the sync engine when cloud sync
// is on. The passphrase is prompted once here, before the menu starts.
func NewApp(cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	ctx := context.Background()

	db, err := store.NewConnectSQLite(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to local store: %w", err)
	}
	storages := store.NewClientStorages(db, log)

	keychain := crypto.NewKeychain()

	var key, salt []byte
	if cfg.App.Encrypt {
		salt, err = crypto.LoadOrCreateSalt(keychain, cfg.Storage.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("error loading key file: %w", err)
		}

		passphrase, err := cli.ReadPassphrase("Passphrase:")
		if err != nil {
			return nil, err
		}
		if passphrase == "" {
			return nil, errEmptyPassphrase
		}
		key = keychain.DeriveKey(passphrase, salt)
	}

	noteSvc := notes.NewService(storages.Notes, keychain, key, salt, cfg.App.Encrypt, log)

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.App.Timezone, err)
	}
	scheduler := reminder.NewScheduler(noteSvc, storages.Notes, loc, log)
	exporter := export.NewExporter()

	var (
		engine *syncer.Engine
		job    *syncer.Job
	)
	if cfg.App.Sync {
		remote, err := adapter.NewHTTPRemoteStore(cfg.Remote, log)
		if err != nil {
			return nil, fmt.Errorf("error creating sync transport: %w", err)
		}
		engine = syncer.NewEngine(storages.Notes, remote, log)
		job = syncer.NewJob(engine, log)
	}

	ui := cli.New(noteSvc, scheduler, exporter, engine, job, cfg, log, os.Stdin, os.Stdout)

	return &App{
		ui:           ui,
		job:          job,
		syncInterval: cfg.Workers.SyncInterval,
		logger:       log,
	}, nil
}

// Run starts the background sync job when configured and blocks in the
// menu loop until the user exits.
func (a *App) Run() error {
	ctx := context.Background()

	if a.job != nil {
		a.job.Start(ctx, a.syncInterval)
		defer a.job.Stop()
	}

	return a.ui.Run(ctx)
}
