// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/toeirei/panaderia/internal/i18n"
	"github.com/toeirei/panaderia/internal/model"
)

// Resource names used to pick the conflict message.
const (
	ResourceCustomer = "customer"
	ResourceEmployee = "employee"
	ResourceProduct  = "product"
	ResourceOrder    = "order"
	ResourceAddress  = "address"
	ResourceAuth     = "auth"
)

// Error is a failed backend call. Status is 0 when the backend could not be
// reached at all.
type Error struct {
	Status   int
	Message  string
	Body     []byte
	Resource string
	Err      error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// BackendMessage returns the message or error field of the backend's error
// body, or "" when the body carries neither.
func (e *Error) BackendMessage() string {
	if len(e.Body) == 0 {
		return ""
	}
	var body model.ErrorResponse
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return ""
	}
	if strings.TrimSpace(body.Message) != "" {
		return body.Message
	}
	return strings.TrimSpace(body.Error)
}

// Temporary reports whether retrying the call could succeed. Client errors
// (4xx) are final.
func (e *Error) Temporary() bool {
	return e.Status == 0 || e.Status >= 500
}

// StatusOf returns the HTTP status carried by err, or -1 when err is not an
// *Error.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return -1
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool { return StatusOf(err) == http.StatusUnauthorized }

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool { return StatusOf(err) == http.StatusNotFound }

// MessageFor maps a status to the message shown to the user.
func MessageFor(status int, statusText, resource string) string {
	switch status {
	case 0:
		return i18n.T("api.error.status_0")
	case http.StatusBadRequest:
		return i18n.T("api.error.status_400")
	case http.StatusUnauthorized:
		return i18n.T("api.error.status_401")
	case http.StatusForbidden:
		return i18n.T("api.error.status_403")
	case http.StatusNotFound:
		return i18n.T("api.error.status_404")
	case http.StatusConflict:
		switch resource {
		case ResourceCustomer, ResourceEmployee, ResourceProduct, ResourceOrder, ResourceAddress:
			return i18n.T("api.error.status_409." + resource)
		}
		return i18n.T("api.error.status_409")
	case http.StatusInternalServerError:
		return i18n.T("api.error.status_500")
	}
	if statusText == "" {
		statusText = http.StatusText(status)
	}
	return i18n.T("api.error.status_other", status, statusText)
}

func newError(status int, statusText, resource string, body []byte, cause error) *Error {
	return &Error{
		Status:   status,
		Message:  MessageFor(status, statusText, resource),
		Body:     body,
		Resource: resource,
		Err:      cause,
	}
}

func wrapTransport(resource string, err error) *Error {
	return newError(0, "", resource, nil, fmt.Errorf("request failed: %w", err))
}
