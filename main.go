// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for the Panadería admin console.
//
// Usage:
//
//	go run . [flags]
//	./panaderia [command] [flags]
//
// Without a command the terminal UI starts. See --help for options.
package main

import (
	"os"

	"github.com/toeirei/panaderia/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
