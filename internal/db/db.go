// Copyright (c) 2026 IR Cloner Team
// IR Cloner - infrared remote code capture tool
// This source code is licensed under the MIT license found in the LICENSE file.

// package db provides the data access layer for IR Cloner.
// It abstracts the underlying database (SQLite by default, PostgreSQL or
// MySQL when configured) behind a single Store type.
package db // import "github.com/toeirei/ircloner/internal/db"

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	// SQL drivers for the optional server backends.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	//go:embed schema
	embeddedSchema embed.FS
	// sqlOpenFunc allows tests to override database opening behavior.
	sqlOpenFunc = sql.Open
)

// Supported database types.
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
	TypeMySQL    = "mysql"
)

// Store is the persistence layer for remotes and their keys. It holds no
// open connection; see withDB.
type Store struct {
	dbType string
	dsn    string
}

// NewStore validates dbType, creates the schema if it is missing and returns
// a Store for the given DSN.
func NewStore(dbType, dsn string) (*Store, error) {
	switch dbType {
	case TypeSQLite, TypePostgres, TypeMySQL:
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedType, dbType)
	}
	s := &Store{dbType: dbType, dsn: dsn}

	start := time.Now()
	if err := s.withDB(context.Background(), func(ctx context.Context, bdb *bun.DB) error {
		return ensureSchema(ctx, bdb, dbType)
	}); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	dbLogf("db: schema for %s ready in %s", dbType, time.Since(start))
	return s, nil
}

// driverName maps a database type to the registered database/sql driver.
// The pgx stdlib registers driver name "pgx".
func driverName(dbType string) string {
	if dbType == TypePostgres {
		return "pgx"
	}
	return dbType
}

// createBunDB constructs a *bun.DB for the provided *sql.DB and dbType.
func createBunDB(sqlDB *sql.DB, dbType string) *bun.DB {
	switch dbType {
	case TypePostgres:
		return bun.NewDB(sqlDB, pgdialect.New())
	case TypeMySQL:
		return bun.NewDB(sqlDB, mysqldialect.New())
	default:
		return bun.NewDB(sqlDB, sqlitedialect.New())
	}
}

// withDB opens a connection, hands it to fn and closes it again. Each Store
// operation is one withDB call.
func (s *Store) withDB(ctx context.Context, fn func(ctx context.Context, bdb *bun.DB) error) error {
	sqlDB, err := sqlOpenFunc(driverName(s.dbType), s.dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	bdb := createBunDB(sqlDB, s.dbType)
	defer func() { _ = bdb.Close() }()
	return fn(ctx, bdb)
}

// ensureSchema applies the embedded schema for dbType. Every statement is
// CREATE TABLE IF NOT EXISTS, so running it again is a no-op.
func ensureSchema(ctx context.Context, bdb *bun.DB, dbType string) error {
	data, err := embeddedSchema.ReadFile("schema/" + dbType + ".sql")
	if err != nil {
		return fmt.Errorf("failed to read embedded schema for %s: %w", dbType, err)
	}
	for _, stmt := range splitStatements(string(data)) {
		if _, err := ExecRaw(ctx, bdb, stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}

// splitStatements splits a schema file on ';'. The schema files contain no
// string literals, so no quoting rules are needed.
func splitStatements(script string) []string {
	var out []string
	for _, part := range strings.Split(script, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
