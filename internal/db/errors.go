// Copyright (c) 2026 IR Cloner Team
// IR Cloner - infrared remote code capture tool
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicate is returned when attempting to insert a record that already exists.
var ErrDuplicate = errors.New("duplicate record")

var (
	// ErrDuplicateName is returned by CreateRemote when the name is taken.
	ErrDuplicateName = fmt.Errorf("remote name already exists: %w", ErrDuplicate)
	// ErrEmptyName is returned by CreateRemote for a blank name.
	ErrEmptyName = errors.New("remote name cannot be empty")
	// ErrEmptyKeyName is returned by UpsertKey for a blank key name.
	ErrEmptyKeyName = errors.New("key name cannot be empty")
	// ErrUnknownRemote is returned by UpsertKey when the owning remote does not exist.
	ErrUnknownRemote = errors.New("unknown remote")
	// ErrUnsupportedType is returned for a database type without a dialect.
	ErrUnsupportedType = errors.New("unsupported database type")
)

// MapDBError inspects low-level driver errors and maps common constraint
// violations to package-level sentinel errors (like ErrDuplicate). This is a
// conservative, string-based mapping to avoid importing SQL driver packages
// into this package file.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	le := strings.ToLower(err.Error())
	// MySQL duplicate entry, Postgres unique violation (23505), SQLite unique constraint
	if strings.Contains(le, "duplicate") || strings.Contains(le, "unique") || strings.Contains(le, "23505") || strings.Contains(le, "1062") {
		return ErrDuplicate
	}
	return err
}
