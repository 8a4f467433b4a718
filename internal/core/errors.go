package core

import (
	"errors"

	"github.com/toeirei/panaderia/internal/model"
	"github.com/toeirei/panaderia/internal/session"
)

// Sentinel errors surfaced to the CLI and the TUI.
var (
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrNotAuthenticated = session.ErrNotAuthenticated
	ErrValidation       = model.ErrValidation
)
