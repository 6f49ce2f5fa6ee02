// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// notetaker CLI and the sync server. It aggregates all sub-configurations
// and is populated by merging values from environment variables,
// command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: encryption and sync toggles
	// and the display timezone.
	App App `envPrefix:"APP_"`

	// Storage holds persistence settings for the local note database and
	// the key file.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the sync
	// server's HTTP listener.
	Server Server `envPrefix:"SERVER_"`

	// Auth holds the sync server's token-issuing settings.
	Auth Auth `envPrefix:"AUTH_"`

	// Remote holds the CLI's view of the sync server: base URL,
	// credentials, and request timeout.
	Remote Remote `envPrefix:"REMOTE_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings of the note-taking CLI.
type App struct {
	// Encrypt enables encryption at rest for note payloads.
	// Env: APP_ENCRYPT, flag: -encrypt
	Encrypt bool `env:"ENCRYPT"`

	// Sync enables cloud synchronization of the local note store.
	// Env: APP_SYNC, flag: -sync
	Sync bool `env:"SYNC"`

	// Timezone is the IANA timezone identifier used to interpret
	// reminder times entered by the user (e.g. "America/New_York").
	// Env: APP_TIMEZONE, flag: -timezone
	Timezone string `env:"TIMEZONE"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups persistence settings.
type Storage struct {
	// DB holds the database connection settings. For the CLI this is
	// the SQLite file path; for the server it may also be a
	// postgres:// DSN.
	DB DB `envPrefix:"DB_"`

	// KeyFile is the path of the access-restricted file holding the
	// key-derivation salt. Defaults to "<db dir>/notetaker.key".
	// Env: STORAGE_KEY_FILE
	KeyFile string `env:"KEY_FILE"`
}

// DB holds connection settings for a database backend.
type DB struct {
	// DSN is the data source name. SQLite file path for the client
	// (e.g. "notetaker.db"), SQLite path or PostgreSQL URI for the
	// server.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the sync server.
type Server struct {
	// HTTPAddress is the TCP address the HTTP server listens on,
	// in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single
	// inbound request before the server cancels it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Auth holds the sync server's token settings.
type Auth struct {
	// AccessSecret is the pre-shared secret clients exchange for a
	// signed bearer token. Must be kept confidential.
	// Env: AUTH_ACCESS_SECRET
	AccessSecret string `env:"ACCESS_SECRET"`

	// TokenSignKey is the secret key used to sign and verify JWT
	// bearer tokens. Must be kept confidential.
	// Env: AUTH_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Env: AUTH_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long an issued token remains valid
	// (e.g. "1h", "30m").
	// Env: AUTH_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// Remote holds the CLI's settings for reaching the sync server.
type Remote struct {
	// BaseURL is the sync server's root URL (e.g. "https://sync.example.com").
	// Env: REMOTE_BASE_URL, flag: -server-url
	BaseURL string `env:"BASE_URL"`

	// AccessSecret is the pre-shared secret used to obtain a bearer
	// token from the sync server.
	// Env: REMOTE_ACCESS_SECRET
	AccessSecret string `env:"ACCESS_SECRET"`

	// RequestTimeout is the per-request timeout for outbound sync calls.
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval defines how often the background sync job runs when
	// cloud sync is enabled.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
