package tui

import "testing"

func TestToast_OnlyNewestTimerClears(t *testing.T) {
	var tt toast
	tt.show(infoToast("primero"))
	first := tt.seq
	tt.show(errorToast("segundo"))

	tt.expire(toastExpiredMsg{seq: first})
	if tt.text != "segundo" || !tt.isError {
		t.Fatalf("an old timer must not clear a newer toast, got %q", tt.text)
	}
	tt.expire(toastExpiredMsg{seq: tt.seq})
	if tt.text != "" || tt.View(80) != "" {
		t.Fatalf("expected the toast to be cleared")
	}
}
