// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package http

import (
	"errors"
	"net/http"

	"github.com/anikulin/note-taker-pro/internal/store"
	"github.com/anikulin/note-taker-pro/internal/utils"
)

var errorStatusMap = map[error]int{
	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrEmptyToken:                 http.StatusUnauthorized,
	ErrInvalidToken:               http.StatusUnauthorized,
	ErrWrongAccessSecret:          http.StatusUnauthorized,
	utils.ErrTokenExpired:         http.StatusUnauthorized,
	ErrInvalidIfMatch:             http.StatusBadRequest,
	ErrInvalidRequestBody:         http.StatusBadRequest,

	store.ErrNotFound:    http.StatusNotFound,
	store.ErrRevConflict: http.StatusConflict,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommittingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
