// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore is a map-backed Store and ExportLog for tests and for running
// the console without a writable data directory.
type MemoryStore struct {
	mu      sync.RWMutex
	items   map[string]string
	exports []ReportExport
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.items[key] = value
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for k := range m.items {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryStore) RecordExport(_ context.Context, e ReportExport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ExportedAt.IsZero() {
		e.ExportedAt = time.Now().UTC()
	}
	e.ID = int64(len(m.exports) + 1)
	m.exports = append(m.exports, e)
	return nil
}

func (m *MemoryStore) ListExports(_ context.Context, limit int) ([]ReportExport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ReportExport, 0, len(m.exports))
	for i := len(m.exports) - 1; i >= 0; i-- {
		out = append(out, m.exports[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
