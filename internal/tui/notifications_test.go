package tui

import "testing"

func TestNotifications_MarkReadAndClear(t *testing.T) {
	a, _ := newAdminApp(t)
	m := newNotificationsModel(a)
	m, _ = m.Update(run(m.Init()))
	if m.loading {
		t.Fatalf("panel should be loaded")
	}
	if len(m.items) != 1 {
		t.Fatalf("expected Ana's upcoming birthday, got %d items", len(m.items))
	}
	before := a.svc.Notifications.UnreadCount()

	m, _ = m.Update(key("enter"))
	if got := a.svc.Notifications.UnreadCount(); got != before-1 {
		t.Fatalf("enter should mark one read: before=%d after=%d", before, got)
	}
	if !m.items[0].Read {
		t.Fatalf("the first item should show as read")
	}

	m, cmd := m.Update(key("A"))
	if a.svc.Notifications.UnreadCount() != 0 {
		t.Fatalf("A should mark everything read")
	}
	if _, ok := run(cmd).(toastMsg); !ok {
		t.Fatalf("expected a toast after marking all read")
	}

	m, _ = m.Update(key("x"))
	if len(m.items) != 0 {
		t.Fatalf("x should clear the panel, got %d items", len(m.items))
	}
}
