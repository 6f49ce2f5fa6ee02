// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init assembles the router: trace IDs and access logging on every
// route, bearer-token auth on the blob API.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/token", h.token)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/notes/states", h.states)
		r.Get("/api/notes/{id}", h.getBlob)
		r.Put("/api/notes/{id}", h.putBlob)
		r.Delete("/api/notes/{id}", h.deleteBlob)
	})

	return router
}
