// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import "sync"

var (
	storeMu sync.RWMutex
	store   Store
)

// New opens the store for dbType and dsn and makes it the package default
// returned by Default.
func New(dbType, dsn string) (Store, error) {
	s, err := NewStoreFromDSN(dbType, dsn)
	if err != nil {
		return nil, err
	}
	SetDefault(s)
	return s, nil
}

// Default returns the package default store, or nil before New.
func Default() Store {
	storeMu.RLock()
	defer storeMu.RUnlock()
	return store
}

// SetDefault replaces the package default store. Tests use it to inject
// a MemoryStore.
func SetDefault(s Store) {
	storeMu.Lock()
	store = s
	storeMu.Unlock()
}

// IsInitialized reports whether a default store has been set.
func IsInitialized() bool {
	return Default() != nil
}
