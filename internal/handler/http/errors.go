// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package http

import "errors"

// Sentinel errors produced by the HTTP layer itself.
var (
	// ErrEmptyAuthorizationHeader is returned when a protected endpoint
	// is called without an Authorization header.
	ErrEmptyAuthorizationHeader = errors.New("empty Authorization header")

	// ErrInvalidAuthorizationHeader is returned when the Authorization
	// header does not follow the "Bearer <token>" format.
	ErrInvalidAuthorizationHeader = errors.New("invalid Authorization header")

	// ErrEmptyToken is returned when the bearer token part of the
	// Authorization header is empty.
	ErrEmptyToken = errors.New("empty token")

	// ErrInvalidToken is returned when the bearer token fails signature
	// or claim validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrWrongAccessSecret is returned by the token endpoint when the
	// presented access secret does not match the server's.
	ErrWrongAccessSecret = errors.New("wrong access secret")

	// ErrInvalidIfMatch is returned when the If-Match header is missing
	// or is not a non-negative integer revision.
	ErrInvalidIfMatch = errors.New("missing or invalid If-Match revision header")

	// ErrInvalidRequestBody is returned when the JSON request body
	// cannot be decoded.
	ErrInvalidRequestBody = errors.New("invalid request body")
)
