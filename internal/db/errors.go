// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a key has no stored value.
	ErrNotFound = errors.New("key not found")
	// ErrConflict is returned when a write collides with an existing row.
	ErrConflict = errors.New("stored row already exists")
	// ErrNotMigrated is returned when a table is missing, usually because the
	// store was opened without running its migrations.
	ErrNotMigrated = errors.New("local store is not migrated")
)

// classify wraps driver errors of op in the package sentinels. Drivers are
// matched on their message text so this file does not import them.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	// mysql 1062, postgres 23505, sqlite "UNIQUE constraint failed"
	case strings.Contains(msg, "duplicate"), strings.Contains(msg, "unique constraint"),
		strings.Contains(msg, "23505"), strings.Contains(msg, "1062"):
		return fmt.Errorf("%s: %w: %v", op, ErrConflict, err)
	// sqlite "no such table", postgres 42P01, mysql 1146
	case strings.Contains(msg, "no such table"), strings.Contains(msg, "42p01"),
		strings.Contains(msg, "1146"), strings.Contains(msg, "doesn't exist"):
		return fmt.Errorf("%s: %w: %v", op, ErrNotMigrated, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
