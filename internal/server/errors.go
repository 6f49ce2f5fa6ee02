// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package server

import "errors"

var (
	errNoListenAddress = errors.New("no HTTP listen address is configured")
)
