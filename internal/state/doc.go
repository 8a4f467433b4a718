// Package state holds the observable in-memory state shared by the CLI and
// the TUI: generic value signals, list stores built from them, and the
// password mailbox used during login.
//
// Subscribers run synchronously on the goroutine that changed the value.
// They must not call Set on the signal they observe.
package state
