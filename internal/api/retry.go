// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"context"
	"errors"

	"github.com/toeirei/panaderia/internal/logging"
)

// Retry calls fn once and then up to retries more times while the failure
// is temporary. Attempts follow each other without a pause. The last error
// is returned when every attempt fails.
func Retry[T any](ctx context.Context, retries int, fn func(context.Context) (T, error)) (T, error) {
	var (
		out T
		err error
	)
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			logging.Debugf("api: retry %d/%d after %v", attempt, retries, err)
			if cerr := ctx.Err(); cerr != nil {
				return out, cerr
			}
		}
		out, err = fn(ctx)
		if err == nil {
			return out, nil
		}
		var apiErr *Error
		if !errors.As(err, &apiErr) || !apiErr.Temporary() {
			return out, err
		}
	}
	return out, err
}
