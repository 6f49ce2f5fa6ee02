// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package http

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/anikulin/note-taker-pro/internal/logger"
	"github.com/anikulin/note-taker-pro/internal/utils"
	"github.com/anikulin/note-taker-pro/models"
)

// tokenSubject is the sub claim of every issued token. The server is
// single-tenant: one access secret guards one blob namespace.
const tokenSubject = "sync-client"

// token handles POST /api/auth/token: it exchanges the pre-shared access
// secret for a short-lived signed bearer token. The comparison is
// constant-time.
func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("error decoding token request")
		writeError(w, ErrInvalidRequestBody)
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.AccessSecret), []byte(h.authCfg.AccessSecret)) != 1 {
		log.Err(ErrWrongAccessSecret).Msg("token exchange rejected")
		writeError(w, ErrWrongAccessSecret)
		return
	}

	tokenString, expiresAt, err := utils.GenerateJWTToken(
		h.authCfg.TokenIssuer,
		tokenSubject,
		h.authCfg.TokenDuration,
		h.authCfg.TokenSignKey,
	)
	if err != nil {
		log.Err(err).Msg("error generating token")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.TokenResponse{Token: tokenString, ExpiresAt: expiresAt})
}
