// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/toeirei/panaderia/internal/i18n"
	"github.com/toeirei/panaderia/internal/model"
)

// requestTimeout bounds every backend call issued from a view.
const requestTimeout = 20 * time.Second

// clipboardWriteAll is swapped out by tests; CI machines have no clipboard.
var clipboardWriteAll = clipboard.WriteAll

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// FilterI18nKeys holds the translation keys for filter status messages.
type FilterI18nKeys struct {
	Filtering    string // e.g., "list.filtering"
	FilterActive string // e.g., "list.filter_active"
	FilterHint   string // e.g., "list.filter_hint"
}

var listFilterKeys = FilterI18nKeys{
	Filtering:    "list.filtering",
	FilterActive: "list.filter_active",
	FilterHint:   "list.filter_hint",
}

// getFilterStatusLine generates the standard filter status string for footers.
func getFilterStatusLine(isFiltering bool, filterText string, keys FilterI18nKeys, formatArgs ...interface{}) string {
	allArgs := append(formatArgs, filterText)
	if isFiltering {
		return i18n.T(keys.Filtering, allArgs...)
	}
	if filterText != "" {
		return i18n.T(keys.FilterActive, allArgs...)
	}
	return i18n.T(keys.FilterHint)
}

// statusCycle is the order the status filter steps through with "s".
var statusCycle = []string{model.StatusActive, model.StatusInactive, model.StatusAll}

// nextStatus returns the entry after current in cycle, wrapping around.
// An unknown current starts the cycle over.
func nextStatus(cycle []string, current string) string {
	for i, s := range cycle {
		if s == current {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}

// copyToClipboard copies value and returns the toast to show.
func copyToClipboard(what, value string) toastMsg {
	if value == "" {
		return errorToast(i18n.T("clipboard.empty", what))
	}
	if err := clipboardWriteAll(value); err != nil {
		return errorToast(i18n.T("clipboard.failed", err))
	}
	return infoToast(i18n.T("clipboard.copied", what, value))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, w int) string {
	r := []rune(s)
	if w <= 0 || len(r) <= w {
		return s
	}
	if w <= 3 {
		return string(r[:w])
	}
	return string(r[:w-3]) + "..."
}
