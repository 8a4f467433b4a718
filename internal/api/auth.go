// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"context"
	"net/http"

	"github.com/toeirei/panaderia/internal/model"
)

// AuthAPI covers login and registration.
type AuthAPI struct {
	c    *Client
	path string
}

// Login exchanges credentials for a token. A rejected login does not fire
// the unauthorized hook.
func (a *AuthAPI) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	var out model.LoginResponse
	if err := a.c.send(ctx, http.MethodPost, ResourceAuth, a.path+"/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a user account.
func (a *AuthAPI) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	var out model.AuthResponse
	if err := a.c.send(ctx, http.MethodPost, ResourceAuth, a.path+"/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
