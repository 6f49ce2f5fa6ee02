// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package config

import (
	"strings"
	"time"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants required before the sync server starts. Client-side
// requirements are validated separately on [ClientConfig].
func (cfg *StructuredConfig) validate() error {
	if cfg.App.Timezone != "" {
		if _, err := time.LoadLocation(cfg.App.Timezone); err != nil {
			return ErrInvalidTimezone
		}
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if _, err := time.LoadLocation(cfg.App.Timezone); err != nil {
		return ErrInvalidTimezone
	}

	if cfg.App.Sync {
		if cfg.Remote.BaseURL == "" || cfg.Remote.AccessSecret == "" {
			return ErrInvalidRemoteConfigs
		}
		if cfg.Workers.SyncInterval <= 0 {
			return ErrInvalidWorkerConfigs
		}
	}

	return nil
}
