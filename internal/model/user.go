// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package model

// User is the authenticated session record.
type User struct {
	ID           int64    `json:"id"`
	Username     string   `json:"username"`
	Roles        []string `json:"roles"`
	Token        string   `json:"token"`
	Status       string   `json:"status,omitempty"`
	CreationDate string   `json:"creationDate,omitempty"`
}

// LoginRequest carries the credentials for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResponse is the login endpoint's reply.
type LoginResponse struct {
	Success   bool     `json:"success"`
	Token     string   `json:"token"`
	TokenType string   `json:"tokenType"`
	Email     string   `json:"email"`
	Username  string   `json:"username"`
	Roles     []string `json:"roles"`
	Timestamp string   `json:"timestamp"`
	Message   string   `json:"message,omitempty"`
}

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthResponse is the register endpoint's reply.
type AuthResponse struct {
	Token    string   `json:"token"`
	Message  string   `json:"message"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// ErrorResponse is the backend's error body.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Success   bool   `json:"success"`
	Timestamp string `json:"timestamp"`
}
