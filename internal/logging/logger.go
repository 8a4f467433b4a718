// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package logging wraps the charmbracelet logger shared by every package.
package logging

import (
	"io"
	"os"
	"strings"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger. Callers should use the helper functions
// below rather than holding on to L.
var L = clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "panaderia"})

// Configure sets the minimum level by name (debug, info, warn, error).
// Unknown names leave the level untouched.
func Configure(level string) {
	if level == "" {
		return
	}
	lvl, err := clog.ParseLevel(strings.ToLower(level))
	if err != nil {
		Warnf("unknown log level %q", level)
		return
	}
	L.SetLevel(lvl)
}

// SetDebug switches debug output on or off.
func SetDebug(enabled bool) {
	if enabled {
		L.SetLevel(clog.DebugLevel)
		return
	}
	L.SetLevel(clog.InfoLevel)
}

// SetOutput redirects the logger, e.g. to a file while the TUI owns the screen.
func SetOutput(w io.Writer) {
	L.SetOutput(w)
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...any) {
	L.Debugf(format, v...)
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...any) {
	L.Infof(format, v...)
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...any) {
	L.Warnf(format, v...)
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...any) {
	L.Errorf(format, v...)
}
