package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations. It is the on-disk shape of the config file
// that the CLI settings menu reads and writes.
type StructuredJSONConfig struct {
	App struct {
		Encrypt  bool   `json:"encrypt"`
		Sync     bool   `json:"sync"`
		Timezone string `json:"timezone,omitempty"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn,omitempty"`
		} `json:"db,omitempty"`
		KeyFile string `json:"key_file,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address,omitempty"`
		RequestTimeout Duration `json:"request_timeout,omitempty"`
	} `json:"server,omitempty"`

	Auth struct {
		AccessSecret  string   `json:"access_secret,omitempty"`
		TokenSignKey  string   `json:"token_sign_key,omitempty"`
		TokenIssuer   string   `json:"token_issuer,omitempty"`
		TokenDuration Duration `json:"token_duration,omitempty"`
	} `json:"auth,omitempty"`

	Remote struct {
		BaseURL        string   `json:"base_url,omitempty"`
		AccessSecret   string   `json:"access_secret,omitempty"`
		RequestTimeout Duration `json:"request_timeout,omitempty"`
	} `json:"remote,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval,omitempty"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return jsonCfg.toStructured(), nil
}

// WriteJSON persists cfg to jsonFilePath in the on-disk JSON shape.
// Used by the CLI settings menu so toggles survive restarts. The file is
// written with owner-only permissions because it may carry the sync
// access secret.
func WriteJSON(jsonFilePath string, cfg *StructuredConfig) error {
	jsonCfg := fromStructured(cfg)

	payload, err := json.MarshalIndent(jsonCfg, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding json configs: %w", err)
	}

	if err = os.WriteFile(jsonFilePath, payload, 0o600); err != nil {
		return fmt.Errorf("error writing json config file: %w", err)
	}

	return nil
}

func (j *StructuredJSONConfig) toStructured() *StructuredConfig {
	cfg := &StructuredConfig{
		App: App{
			Encrypt:  j.App.Encrypt,
			Sync:     j.App.Sync,
			Timezone: j.App.Timezone,
		},
		Storage: Storage{
			DB:      DB{DSN: j.Storage.DB.DSN},
			KeyFile: j.Storage.KeyFile,
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
		},
		Auth: Auth{
			AccessSecret:  j.Auth.AccessSecret,
			TokenSignKey:  j.Auth.TokenSignKey,
			TokenIssuer:   j.Auth.TokenIssuer,
			TokenDuration: time.Duration(j.Auth.TokenDuration),
		},
		Remote: Remote{
			BaseURL:        j.Remote.BaseURL,
			AccessSecret:   j.Remote.AccessSecret,
			RequestTimeout: time.Duration(j.Remote.RequestTimeout),
		},
		Workers: Workers{SyncInterval: time.Duration(j.Workers.SyncInterval)},
	}

	return cfg
}

func fromStructured(cfg *StructuredConfig) *StructuredJSONConfig {
	j := &StructuredJSONConfig{}
	j.App.Encrypt = cfg.App.Encrypt
	j.App.Sync = cfg.App.Sync
	j.App.Timezone = cfg.App.Timezone
	j.Storage.DB.DSN = cfg.Storage.DB.DSN
	j.Storage.KeyFile = cfg.Storage.KeyFile
	j.Server.HTTPAddress = cfg.Server.HTTPAddress
	j.Server.RequestTimeout = Duration(cfg.Server.RequestTimeout)
	j.Auth.AccessSecret = cfg.Auth.AccessSecret
	j.Auth.TokenSignKey = cfg.Auth.TokenSignKey
	j.Auth.TokenIssuer = cfg.Auth.TokenIssuer
	j.Auth.TokenDuration = Duration(cfg.Auth.TokenDuration)
	j.Remote.BaseURL = cfg.Remote.BaseURL
	j.Remote.AccessSecret = cfg.Remote.AccessSecret
	j.Remote.RequestTimeout = Duration(cfg.Remote.RequestTimeout)
	j.Workers.SyncInterval = Duration(cfg.Workers.SyncInterval)

	return j
}

// Duration is a wrapper around time.Duration that supports JSON
// unmarshaling from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
