// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

// Package utils provides small cross-cutting helpers: type-safe context
// keys and JWT token generation and validation.
package utils

import "context"

// contextKey is a private type for context keys. A dedicated type
// prevents collisions with other packages storing string-keyed values in
// the same context.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// SubjectCtxKey is the key under which the auth middleware stores the
// validated token subject in the request context.
var SubjectCtxKey = contextKey("subject")

// GetSubjectFromContext retrieves the authenticated token subject from
// the context. ok is false when the request was not authenticated.
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectCtxKey).(string)
	return subject, ok
}
