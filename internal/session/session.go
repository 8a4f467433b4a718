// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package session keeps the authenticated user of the console. The user
// record is persisted as one JSON value in the local store so a restarted
// console stays logged in until the token expires or a 401 ends it.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/toeirei/panaderia/internal/db"
	"github.com/toeirei/panaderia/internal/logging"
	"github.com/toeirei/panaderia/internal/model"
	"github.com/toeirei/panaderia/internal/state"
)

// StorageKey is the local store key of the persisted user record.
const StorageKey = "panaderia_auth_data"

// ErrNotAuthenticated is returned by operations that need a session.
var ErrNotAuthenticated = errors.New("not authenticated")

// Manager owns the current user. The zero value is not usable; call
// NewManager.
type Manager struct {
	store db.Store
	user  *state.Signal[*model.User]
	now   func() time.Time
}

// NewManager returns a manager persisting to store. A nil store keeps the
// session in memory only.
func NewManager(store db.Store) *Manager {
	return &Manager{
		store: store,
		user:  state.NewSignal[*model.User](nil),
		now:   time.Now,
	}
}

// Load rehydrates the session from the local store. Unreadable records and
// records whose token has expired are removed.
func (m *Manager) Load(ctx context.Context) error {
	if m.store == nil {
		return nil
	}
	raw, err := m.store.Get(ctx, StorageKey)
	if errors.Is(err, db.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}

	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.Token == "" {
		logging.Warnf("session: discarding unreadable stored session")
		return m.Clear(ctx)
	}
	if exp, ok := TokenExpiry(u.Token); ok && !exp.After(m.now()) {
		logging.Infof("session: stored token for %s expired at %s", u.Username, exp.Format(time.RFC3339))
		return m.Clear(ctx)
	}

	m.user.Set(&u)
	logging.Debugf("session: restored user %s", u.Username)
	return nil
}

// Save makes u the current user and persists it.
func (m *Manager) Save(ctx context.Context, u model.User) error {
	m.user.Set(&u)
	if m.store == nil {
		return nil
	}
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := m.store.Set(ctx, StorageKey, string(data)); err != nil {
		logging.Errorf("session: could not persist user %s: %v", u.Username, err)
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear drops the current user and the persisted record.
func (m *Manager) Clear(ctx context.Context) error {
	m.user.Set(nil)
	if m.store == nil {
		return nil
	}
	if err := m.store.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current returns a copy of the current user, or nil.
func (m *Manager) Current() *model.User {
	u := m.user.Get()
	if u == nil {
		return nil
	}
	cp := *u
	cp.Roles = append([]string(nil), u.Roles...)
	return &cp
}

// IsAuthenticated reports whether a user is logged in.
func (m *Manager) IsAuthenticated() bool { return m.user.Get() != nil }

// Token returns the bearer token, or "".
func (m *Manager) Token() string {
	if u := m.user.Get(); u != nil {
		return u.Token
	}
	return ""
}

// Roles returns the current user's roles.
func (m *Manager) Roles() []string {
	if u := m.user.Get(); u != nil {
		return append([]string(nil), u.Roles...)
	}
	return nil
}

// HasRole reports whether any of the user's roles contains role,
// ignoring case, so "ADMINISTRATOR" matches "ROLE_ADMINISTRATOR".
func (m *Manager) HasRole(role string) bool {
	want := strings.ToUpper(role)
	for _, r := range m.Roles() {
		if strings.Contains(strings.ToUpper(r), want) {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether HasRole holds for at least one of roles.
func (m *Manager) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if m.HasRole(r) {
			return true
		}
	}
	return false
}

// HasExactRole reports whether the user holds role itself. Case and a
// leading "ROLE_" are ignored, so "ADMINISTRATOR" matches
// "ROLE_ADMINISTRATOR" but "INVENTORY" does not match "INVENTORY_VIEWER".
func (m *Manager) HasExactRole(role string) bool {
	want := roleName(role)
	for _, r := range m.Roles() {
		if roleName(r) == want {
			return true
		}
	}
	return false
}

// HasAnyExactRole reports whether HasExactRole holds for one of roles.
func (m *Manager) HasAnyExactRole(roles ...string) bool {
	for _, r := range roles {
		if m.HasExactRole(r) {
			return true
		}
	}
	return false
}

func roleName(r string) string {
	return strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(r)), "ROLE_")
}

// Subscribe calls fn with the new user (nil on logout) after every change.
func (m *Manager) Subscribe(fn func(*model.User)) (unsubscribe func()) {
	return m.user.Subscribe(fn)
}

// TokenExpiry reads the exp claim of a JWT without verifying its
// signature. The second result is false for opaque tokens.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
