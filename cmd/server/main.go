// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package main

import (
	"context"
	"fmt"

	"github.com/anikulin/note-taker-pro/internal/config"
	handler "github.com/anikulin/note-taker-pro/internal/handler/http"
	"github.com/anikulin/note-taker-pro/internal/logger"
	"github.com/anikulin/note-taker-pro/internal/server"
	"github.com/anikulin/note-taker-pro/internal/store"
	"github.com/anikulin/note-taker-pro/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewLogger("notetaker-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	db, err := store.NewConnectServerDB(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	storages := store.NewServerStorages(db, log)
	handlers := handler.NewHandler(storages, cfg.Auth, log)

	srv, err := server.NewServer(handlers.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
