// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package server

// Server runs the sync server until a stop signal arrives and then
// shuts it down gracefully.
type Server interface {
	RunServer()
	Shutdown()
}
