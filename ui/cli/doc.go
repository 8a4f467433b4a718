// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface of the console using
// Cobra. It wires configuration, the local store and the core services, and
// provides commands that delegate to them. CLI code stays thin: business
// rules live in internal/core.
package cli
