// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

// Package http implements the HTTP transport layer of the sync server:
// route handlers, middleware, and error mapping for the revision-tagged
// blob API consumed by the client's sync engine.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/anikulin/note-taker-pro/internal/config"
	"github.com/anikulin/note-taker-pro/internal/logger"
	"github.com/anikulin/note-taker-pro/internal/store"
	"github.com/anikulin/note-taker-pro/models"
)

// Handler carries the dependencies of all HTTP endpoints.
type Handler struct {
	storages *store.ServerStorages
	authCfg  config.Auth

	logger *logger.Logger
}

// NewHandler constructs a [Handler].
func NewHandler(storages *store.ServerStorages, authCfg config.Auth, log *logger.Logger) *Handler {
	log.Info().Msg("http handler created")
	return &Handler{
		storages: storages,
		authCfg:  authCfg,
		logger:   log,
	}
}

// writeJSON serializes v into the response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err onto an HTTP status and writes the uniform JSON
// error body.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFromError(err), models.ErrorResponse{Error: err.Error()})
}
