// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package session

import (
	"context"
	"errors"
	"strings"

	"github.com/toeirei/panaderia/internal/api"
	"github.com/toeirei/panaderia/internal/i18n"
	"github.com/toeirei/panaderia/internal/logging"
	"github.com/toeirei/panaderia/internal/model"
)

// Authenticator is the backend side of login and registration.
type Authenticator interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error)
}

// LoginError is a rejected login with the message shown to the user.
type LoginError struct {
	Message string
	Err     error
}

func (e *LoginError) Error() string { return e.Message }

func (e *LoginError) Unwrap() error { return e.Err }

// Login validates the credentials, calls the backend and on success stores
// the returned user. Any failure clears the session. The password slice is
// zeroed before returning.
func (m *Manager) Login(ctx context.Context, auth Authenticator, username string, password []byte) (*model.User, error) {
	defer func() {
		for i := range password {
			password[i] = 0
		}
	}()

	req := model.LoginRequest{Username: strings.TrimSpace(username), Password: string(password)}
	if err := model.Validate(req); err != nil {
		return nil, err
	}

	resp, err := auth.Login(ctx, req)
	if err != nil {
		_ = m.Clear(ctx)
		logging.Warnf("session: login for %s failed: %v", req.Username, err)
		return nil, &LoginError{Message: loginFailureMessage(err), Err: err}
	}

	u := model.User{
		ID:       m.now().UnixMilli(),
		Username: resp.Username,
		Roles:    resp.Roles,
		Token:    resp.Token,
	}
	if u.Username == "" {
		u.Username = req.Username
	}
	if err := m.Save(ctx, u); err != nil {
		return nil, err
	}
	logging.Infof("session: %s logged in", u.Username)
	return m.Current(), nil
}

// loginFailureMessage prefers the backend's own explanation.
func loginFailureMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if msg := apiErr.BackendMessage(); msg != "" {
			return msg
		}
	}
	return i18n.T("auth.login.failed")
}

// Register creates an account. The current session is left untouched.
func (m *Manager) Register(ctx context.Context, auth Authenticator, req model.RegisterRequest) (*model.AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := model.Validate(req); err != nil {
		return nil, err
	}
	return auth.Register(ctx, req)
}

// Logout ends the session.
func (m *Manager) Logout(ctx context.Context) error {
	if u := m.user.Get(); u != nil {
		logging.Infof("session: %s logged out", u.Username)
	}
	return m.Clear(ctx)
}
