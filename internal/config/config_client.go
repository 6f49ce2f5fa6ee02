package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Default values applied by [GetClientConfig] when a setting is absent
// from every configuration source.
const (
	DefaultDBPath         = "notetaker.db"
	DefaultTimezone       = "UTC"
	DefaultRequestTimeout = 15 * time.Second
	DefaultSyncInterval   = 5 * time.Minute
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// Encrypt enables encryption at rest.
	Encrypt bool
	// Sync enables cloud synchronization.
	Sync bool
	// Timezone is the IANA zone used to interpret reminder input.
	Timezone string
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path of the local note store.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
	// KeyFile is the path of the key-derivation salt file.
	KeyFile string
}

// ClientRemote holds the settings used by the client sync transport.
type ClientRemote struct {
	// BaseURL is the sync server's root URL.
	BaseURL string
	// AccessSecret is the pre-shared secret exchanged for a bearer token.
	AccessSecret string
	// RequestTimeout is the default timeout for outbound sync requests.
	RequestTimeout time.Duration
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the background sync job runs.
	SyncInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Storage contains client storage settings.
	Storage ClientStorage
	// Remote contains sync transport settings.
	Remote ClientRemote
	// Workers contains background job settings.
	Workers ClientWorkers
	// JSONFilePath is the config file the settings menu persists to.
	JSONFilePath string
}

// GetClientConfig builds and validates a client-specific config view from
// the merged structured configuration, applying CLI defaults for anything
// left unset.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			Encrypt:  cfg.App.Encrypt,
			Sync:     cfg.App.Sync,
			Timezone: cfg.App.Timezone,
		},
		Storage: ClientStorage{
			DB:      ClientDB{DSN: cfg.Storage.DB.DSN},
			KeyFile: cfg.Storage.KeyFile,
		},
		Remote: ClientRemote{
			BaseURL:        cfg.Remote.BaseURL,
			AccessSecret:   cfg.Remote.AccessSecret,
			RequestTimeout: cfg.Remote.RequestTimeout,
		},
		Workers:      ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
		JSONFilePath: cfg.JSONFilePath,
	}
	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = DefaultDBPath
	}
	if cfg.Storage.KeyFile == "" {
		base := strings.TrimSuffix(cfg.Storage.DB.DSN, filepath.Ext(cfg.Storage.DB.DSN))
		cfg.Storage.KeyFile = base + ".key"
	}
	if cfg.App.Timezone == "" {
		cfg.App.Timezone = DefaultTimezone
	}
	if cfg.Remote.RequestTimeout == 0 {
		cfg.Remote.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Workers.SyncInterval == 0 {
		cfg.Workers.SyncInterval = DefaultSyncInterval
	}
}
