package api

import (
	"context"
	"errors"
	"testing"
)

func TestRetry_RetriesTemporaryFailuresOnly(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), 2, func(context.Context) (int, error) {
		calls++
		return 0, &Error{Status: 502}
	})
	if err == nil || calls != 3 {
		t.Fatalf("expected three attempts and an error, got %d calls, err %v", calls, err)
	}

	calls = 0
	_, err = Retry(context.Background(), 2, func(context.Context) (int, error) {
		calls++
		return 0, &Error{Status: 404}
	})
	if err == nil || calls != 1 {
		t.Fatalf("client errors are not retried, got %d calls", calls)
	}
}

func TestRetry_StopsWhenContextIsDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := Retry(ctx, 2, func(context.Context) (string, error) {
		calls++
		cancel()
		return "", &Error{Status: 500}
	})
	if !errors.Is(err, context.Canceled) || calls != 1 {
		t.Fatalf("expected one call and context.Canceled, got %d calls, err %v", calls, err)
	}
}
