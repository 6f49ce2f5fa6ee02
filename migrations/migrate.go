// Package migrations holds the embedded goose migrations for both the
// client note store (SQLite) and the sync server blob store (SQLite or
// PostgreSQL).
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed client/*.sql
var clientMigrations embed.FS

//go:embed server/*.sql
var serverMigrations embed.FS

// MigrateClient brings the local SQLite note database up to the latest
// schema version.
func MigrateClient(db *sql.DB) error {
	goose.SetBaseFS(clientMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("migration error setting dialect for client db: %w", err)
	}

	if err := goose.Up(db, "client"); err != nil {
		return fmt.Errorf("client migration error: %w", err)
	}

	return nil
}

// MigrateServer brings the sync server database up to the latest schema
// version. dialect is the goose dialect matching the opened driver
// ("sqlite3" or "pgx").
func MigrateServer(db *sql.DB, dialect string) error {
	goose.SetBaseFS(serverMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for server db: %w", err)
	}

	if err := goose.Up(db, "server"); err != nil {
		return fmt.Errorf("server migration error: %w", err)
	}

	return nil
}
