package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidRemoteConfigs indicates invalid sync transport settings
	// (for example, sync enabled without a server URL or access secret).
	ErrInvalidRemoteConfigs = errors.New("invalid remote configuration")
	// ErrInvalidStorageConfigs indicates invalid client storage settings
	// (for example, empty DSN or unsupported in-memory DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero sync interval with sync enabled).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidTimezone indicates that the configured timezone is not a
	// recognized IANA zone name.
	ErrInvalidTimezone = errors.New("invalid timezone configuration")
)
