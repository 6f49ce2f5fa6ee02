// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/anikulin/note-taker-pro/internal/config"
	"github.com/anikulin/note-taker-pro/internal/logger"
	"github.com/anikulin/note-taker-pro/migrations"
)

// NewConnectServerDB opens the sync server database and runs the server
// migrations. The backend is chosen by DSN scheme: "postgres://" (or
// "postgresql://") selects PostgreSQL via the pgx stdlib driver, anything
// else is treated as a SQLite file path.
func NewConnectServerDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	driver, dialect := "sqlite3", "sqlite3"
	if isPostgresDSN(cfg.DSN) {
		driver, dialect = "pgx", "pgx"
	}

	if driver == "sqlite3" {
		if err := createLocalDBFileIfNotExists(cfg.DSN); err != nil {
			log.Err(err).Str("func", "NewConnectServerDB").Msg("error creating database file")
			return nil, fmt.Errorf("error creating database file: %w", err)
		}
	}

	conn, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectServerDB").Msg("error connecting database")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	if driver == "pgx" {
		conn.SetMaxOpenConns(10)
		conn.SetMaxIdleConns(4)
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectServerDB").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectServerDB").Str("dialect", dialect).Msg("connected to database successfully")

	if err = migrations.MigrateServer(conn, dialect); err != nil {
		log.Err(err).Str("func", "NewConnectServerDB").Msg("error migrating database")
		return nil, err
	}

	db := &DB{
		DB:      conn,
		dialect: dialect,
		logger:  log,
	}
	if dialect == "pgx" {
		db.errorClassificator = NewPostgresErrorClassifier()
	}

	return db, nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
