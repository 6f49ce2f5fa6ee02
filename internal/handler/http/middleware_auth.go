// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/anikulin/note-taker-pro/internal/logger"
	"github.com/anikulin/note-taker-pro/internal/utils"
)

// auth enforces bearer-token authentication. On success the token's
// subject is stored in the request context under [utils.SubjectCtxKey].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			writeError(w, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			writeError(w, err)
			return
		}

		subject, err := utils.ValidateJWTToken(tokenString, h.authCfg.TokenSignKey, h.authCfg.TokenIssuer)
		if err != nil {
			if errors.Is(err, utils.ErrTokenExpired) {
				log.Err(err).Msg("token expired")
				writeError(w, err)
				return
			}
			log.Err(err).Msg("error occurred during parsing token")
			writeError(w, ErrInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), utils.SubjectCtxKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the token from a "Bearer <token>"
// Authorization header value.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}
	if parts[1] == "" {
		return "", ErrEmptyToken
	}
	return parts[1], nil
}
