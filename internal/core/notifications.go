// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/toeirei/panaderia/internal/db"
	"github.com/toeirei/panaderia/internal/i18n"
	"github.com/toeirei/panaderia/internal/logging"
	"github.com/toeirei/panaderia/internal/model"
	"github.com/toeirei/panaderia/internal/state"
)

// NotificationKind tells birthday reminders apart.
type NotificationKind string

const (
	BirthdayToday    NotificationKind = "birthday_today"
	BirthdayUpcoming NotificationKind = "birthday_upcoming"
)

// Priority orders notifications within the read/unread groups.
type Priority int

const (
	PriorityHigh Priority = iota
	PriorityMedium
	PriorityLow
)

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	}
	return "low"
}

// Upcoming birthdays further away than this are not announced.
const notifyUpcomingDays = 3

const readKeyPrefix = "notification_read:"

// Notification is one entry of the birthday panel.
type Notification struct {
	ID            string
	Kind          NotificationKind
	Message       string
	CustomerID    int
	DaysRemaining int
	Priority      Priority
	Read          bool
	Date          time.Time
}

// Icon names the glyph shown next to the notification.
func (n Notification) Icon() string {
	if n.Kind == BirthdayToday {
		return "cake"
	}
	return "notifications"
}

// Notifications builds the birthday panel from the customer list and
// remembers which entries were read in the local store.
type Notifications struct {
	customers *CustomerService
	store     db.Store
	Items     *state.Signal[[]Notification]
	Now       func() time.Time

	mu sync.Mutex
}

// NewNotifications returns an empty panel. store may be nil, in which case
// read state lives only in memory.
func NewNotifications(customers *CustomerService, store db.Store) *Notifications {
	return &Notifications{
		customers: customers,
		store:     store,
		Items:     state.NewSignal[[]Notification](nil),
		Now:       time.Now,
	}
}

// BuildNotifications turns a birthday report into panel entries. Upcoming
// birthdays are only announced one to three days ahead.
func BuildNotifications(r BirthdayReport, today time.Time) []Notification {
	var out []Notification
	for _, c := range r.Today {
		out = append(out, Notification{
			ID:         notificationID(c.IDCustomer, today),
			Kind:       BirthdayToday,
			Message:    i18n.T("notification.birthday_today", c.FullName()),
			CustomerID: c.IDCustomer,
			Priority:   PriorityHigh,
			Date:       today,
		})
	}
	for _, c := range r.Upcoming {
		birth, ok := model.ParseDate(c.BirthDate)
		if !ok {
			continue
		}
		days := DaysUntilBirthday(birth, today)
		if days < 1 || days > notifyUpcomingDays {
			continue
		}
		msg := i18n.T("notification.birthday_in_days", c.FullName(), days)
		if days == 1 {
			msg = i18n.T("notification.birthday_tomorrow", c.FullName())
		}
		out = append(out, Notification{
			ID:            notificationID(c.IDCustomer, NextBirthday(birth, today)),
			Kind:          BirthdayUpcoming,
			Message:       msg,
			CustomerID:    c.IDCustomer,
			DaysRemaining: days,
			Priority:      PriorityMedium,
			Date:          today,
		})
	}
	SortNotifications(out)
	return out
}

func notificationID(customerID int, birthday time.Time) string {
	return fmt.Sprintf("birthday:%d:%s", customerID, model.FormatDate(birthday))
}

// SortNotifications puts unread entries first, then orders by priority.
// Entries that compare equal keep their order.
func SortNotifications(ns []Notification) {
	sort.SliceStable(ns, func(i, j int) bool {
		if ns[i].Read != ns[j].Read {
			return !ns[i].Read
		}
		return ns[i].Priority < ns[j].Priority
	})
}

// Refresh rebuilds the panel from the customers' birthdays and applies
// the stored read state.
func (n *Notifications) Refresh(ctx context.Context) ([]Notification, error) {
	report, err := n.customers.CheckBirthdays(ctx)
	if err != nil {
		return n.Items.Get(), err
	}
	list := BuildNotifications(report, n.Now())
	read := n.readIDs(ctx)
	for i := range list {
		list[i].Read = read[list[i].ID]
	}
	SortNotifications(list)
	n.Items.Set(list)
	return list, nil
}

func (n *Notifications) readIDs(ctx context.Context) map[string]bool {
	out := map[string]bool{}
	if n.store == nil {
		return out
	}
	keys, err := n.store.Keys(ctx, readKeyPrefix)
	if err != nil {
		logging.Warnf("notifications: read state unavailable: %v", err)
		return out
	}
	for _, k := range keys {
		out[strings.TrimPrefix(k, readKeyPrefix)] = true
	}
	return out
}

func (n *Notifications) persistRead(ctx context.Context, id string) {
	if n.store == nil {
		return
	}
	if err := n.store.Set(ctx, readKeyPrefix+id, model.FormatDate(n.Now())); err != nil {
		logging.Warnf("notifications: could not store read state for %s: %v", id, err)
	}
}

// MarkRead marks one entry read. Unknown ids are ignored.
func (n *Notifications) MarkRead(ctx context.Context, id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	found := false
	n.Items.Update(func(list []Notification) []Notification {
		out := append([]Notification(nil), list...)
		for i := range out {
			if out[i].ID == id && !out[i].Read {
				out[i].Read = true
				found = true
			}
		}
		SortNotifications(out)
		return out
	})
	if found {
		n.persistRead(ctx, id)
	}
}

// MarkAllRead marks every entry read.
func (n *Notifications) MarkAllRead(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	var ids []string
	n.Items.Update(func(list []Notification) []Notification {
		out := append([]Notification(nil), list...)
		for i := range out {
			if !out[i].Read {
				out[i].Read = true
				ids = append(ids, out[i].ID)
			}
		}
		return out
	})
	for _, id := range ids {
		n.persistRead(ctx, id)
	}
}

// Clear empties the panel until the next Refresh.
func (n *Notifications) Clear() {
	n.Items.Set(nil)
}

// UnreadCount counts the unread entries.
func (n *Notifications) UnreadCount() int {
	c := 0
	for _, it := range n.Items.Get() {
		if !it.Read {
			c++
		}
	}
	return c
}

// ForgetRead drops stored read markers older than the given number of days.
func (n *Notifications) ForgetRead(ctx context.Context, olderThanDays int) (int, error) {
	if n.store == nil {
		return 0, nil
	}
	keys, err := n.store.Keys(ctx, readKeyPrefix)
	if err != nil {
		return 0, err
	}
	cutoff := midnight(n.Now()).AddDate(0, 0, -olderThanDays)
	removed := 0
	for _, k := range keys {
		v, err := n.store.Get(ctx, k)
		if err != nil && !errors.Is(err, db.ErrNotFound) {
			return removed, err
		}
		at, ok := model.ParseDate(v)
		if ok && !at.Before(cutoff) {
			continue
		}
		if err := n.store.Delete(ctx, k); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
