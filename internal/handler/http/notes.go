// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/anikulin/note-taker-pro/internal/logger"
	"github.com/anikulin/note-taker-pro/models"
)

// states handles GET /api/notes/states: the revision descriptors of all
// blobs, tombstones included, for sync planning.
func (h *Handler) states(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	states, err := h.storages.Blobs.States(r.Context())
	if err != nil {
		log.Err(err).Msg("error listing blob states")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.StatesResponse{States: states})
}

// getBlob handles GET /api/notes/{id}.
func (h *Handler) getBlob(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	noteID := chi.URLParam(r, "id")

	rec, err := h.storages.Blobs.Get(r.Context(), noteID)
	if err != nil {
		log.Err(err).Str("note_id", noteID).Msg("error loading blob")
		writeError(w, err)
		return
	}

	resp := models.BlobResponse{
		NoteID:  rec.NoteID,
		Payload: rec.Payload,
		Rev:     rec.Rev,
		Deleted: rec.Deleted,
	}
	if !rec.UpdatedAt.IsZero() {
		resp.UpdatedAt = &rec.UpdatedAt
	}

	writeJSON(w, http.StatusOK, resp)
}

// putBlob handles PUT /api/notes/{id}: a conditional write guarded by
// the If-Match revision header. A stale revision yields 409.
func (h *Handler) putBlob(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	noteID := chi.URLParam(r, "id")

	baseRev, err := ifMatchRevision(r)
	if err != nil {
		log.Err(err).Str("note_id", noteID).Send()
		writeError(w, err)
		return
	}

	var req models.PutBlobRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("note_id", noteID).Msg("error decoding put request")
		writeError(w, ErrInvalidRequestBody)
		return
	}

	rev, err := h.storages.Blobs.Put(r.Context(), noteID, req.Payload, baseRev)
	if err != nil {
		log.Err(err).Str("note_id", noteID).Int64("base_rev", baseRev).Msg("error storing blob")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.PutBlobResponse{NoteID: noteID, Rev: rev})
}

// deleteBlob handles DELETE /api/notes/{id}: a conditional tombstone.
func (h *Handler) deleteBlob(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	noteID := chi.URLParam(r, "id")

	baseRev, err := ifMatchRevision(r)
	if err != nil {
		log.Err(err).Str("note_id", noteID).Send()
		writeError(w, err)
		return
	}

	rev, err := h.storages.Blobs.Delete(r.Context(), noteID, baseRev)
	if err != nil {
		log.Err(err).Str("note_id", noteID).Int64("base_rev", baseRev).Msg("error tombstoning blob")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.PutBlobResponse{NoteID: noteID, Rev: rev})
}

// ifMatchRevision parses the If-Match header as a base revision.
func ifMatchRevision(r *http.Request) (int64, error) {
	raw := r.Header.Get("If-Match")
	if raw == "" {
		return 0, ErrInvalidIfMatch
	}

	rev, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || rev < 0 {
		return 0, ErrInvalidIfMatch
	}

	return rev, nil
}
