// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package api is the REST client for the bakery backend.
//
// Every request passes through one interception point (Client.do): it adds
// the bearer token for requests to the configured backend, tags the request
// with an X-Request-ID, and classifies failures by HTTP status into *Error
// values carrying a translated, user-facing message. A 401 additionally
// fires the unauthorized hook so the caller can tear the session down.
package api
