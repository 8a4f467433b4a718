package state

import (
	"sync"
	"testing"
)

func TestPasswordMailbox_SetGetClear(t *testing.T) {
	PasswordCache.Clear()

	if got := PasswordCache.Get(); got != nil {
		t.Fatalf("expected nil on empty mailbox, got %v", got)
	}

	pass := []byte("horno123")
	PasswordCache.Set(pass)
	pass[0] = 'X'

	got := PasswordCache.Get()
	if string(got) != "horno123" {
		t.Fatalf("mailbox should keep its own copy, got %q", got)
	}

	got[0] = 'Y'
	if again := PasswordCache.Get(); again[0] != 'h' {
		t.Fatalf("Get should return a copy; mutation leaked: %q", again)
	}

	PasswordCache.Clear()
	if got := PasswordCache.Get(); got != nil {
		t.Fatalf("expected nil after Clear, got %v", got)
	}
}

func TestPasswordMailbox_TakeEmpties(t *testing.T) {
	PasswordCache.Set([]byte("masa-madre"))
	if got := PasswordCache.Take(); string(got) != "masa-madre" {
		t.Fatalf("unexpected Take result %q", got)
	}
	if got := PasswordCache.Get(); got != nil {
		t.Fatalf("mailbox should be empty after Take, got %q", got)
	}
}

func TestPasswordMailbox_ConcurrentAccess(t *testing.T) {
	PasswordCache.Clear()
	defer PasswordCache.Clear()

	PasswordCache.Set([]byte("concurrent"))

	var wg sync.WaitGroup
	errs := make(chan string, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if PasswordCache.Get() == nil {
					errs <- "expected non-nil during concurrent reads"
					return
				}
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		PasswordCache.Set([]byte("updated"))
	}()

	wg.Wait()
	close(errs)
	for e := range errs {
		t.Fatalf("concurrent reader error: %s", e)
	}
}
