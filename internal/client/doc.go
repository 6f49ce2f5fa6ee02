// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

// Package client implements the interactive client application runtime.
//
// It wires the local note store, encryption, reminders, export, and
// background synchronization into a single process lifecycle behind the
// menu-driven terminal interface.
package client
