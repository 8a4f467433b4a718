// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package testutil provides test doubles shared across packages, most
// notably an in-process fake of the bakery backend.
package testutil

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var tokenKey = []byte("panaderia-test-signing-key")

// Token returns an HS256 JWT for username that expires after ttl. A
// negative ttl yields an already expired token.
func Token(username string, roles []string, ttl time.Duration) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   username,
		"roles": roles,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tokenKey)
	if err != nil {
		panic(err)
	}
	return signed
}
