// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model holds the data-transfer records exchanged with the bakery
// backend and the small display helpers shared by the CLI and the TUI.
// Field names follow the backend's camelCase JSON keys.
package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The backend reads and writes amounts as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Record status codes shared by customers, employees and products.
const (
	StatusActive   = "A"
	StatusInactive = "I"
	// StatusAll is only used by list filters and the status display helper.
	StatusAll = "T"
)

// DateLayout is the backend's calendar date format.
const DateLayout = "2006-01-02"

// ParseDate parses a backend date. Full timestamps are accepted and
// truncated to their date part.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) < len(DateLayout) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, s[:len(DateLayout)], time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders t in the backend's date format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Money parses a decimal amount, returning zero for empty or invalid input.
func Money(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
