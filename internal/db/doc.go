// Package db contains the data-access layer for IR Cloner.
//
// The store keeps two tables, Remote and Key, behind a Bun model on top of
// database/sql. SQLite is the default backend; Postgres and MySQL are
// supported through the same dialect switch.
//
// Connections
//   - Every Store method opens its own *sql.DB, runs its statements and closes
//     it again. No connection is held between operations, so file-level locking
//     of the backend is the only coordination needed.
//   - Because of this, tests must use a file-backed SQLite DSN (for example a
//     path under t.TempDir()); a private ":memory:" database would vanish
//     between calls.
//
// Schema
//   - The schema is embedded per dialect under schema/ and applied with
//     CREATE TABLE IF NOT EXISTS when the store is created. There is no
//     versioning.
package db
