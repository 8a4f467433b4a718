package core

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/panaderia/internal/i18n"
	"github.com/toeirei/panaderia/internal/model"
)

func TestBuildNotifications(t *testing.T) {
	i18n.Init("es")
	today := time.Date(2024, 5, 12, 8, 0, 0, 0, time.Local)
	report := BirthdayReport{
		Today: []model.Customer{{IDCustomer: 1, FirstName: "Ana", LastName: "Quispe", BirthDate: "1990-05-12"}},
		Upcoming: []model.Customer{
			{IDCustomer: 2, FirstName: "Luis", LastName: "Torres", BirthDate: "1985-05-13"},
			{IDCustomer: 3, FirstName: "María", LastName: "Huamán", BirthDate: "2000-05-15"},
			{IDCustomer: 4, FirstName: "Pedro", LastName: "Rojas", BirthDate: "1999-05-18"},
		},
	}

	got := BuildNotifications(report, today)
	require.Len(t, got, 3, "birthdays more than three days away are not announced")

	assert.Equal(t, BirthdayToday, got[0].Kind)
	assert.Equal(t, PriorityHigh, got[0].Priority)
	assert.Equal(t, "🎂 ¡Hoy es el cumpleaños de Ana Quispe!", got[0].Message)
	assert.Equal(t, "cake", got[0].Icon())

	assert.Equal(t, "⏰ Luis Torres cumple años mañana", got[1].Message)
	assert.Equal(t, 1, got[1].DaysRemaining)
	assert.Equal(t, "⏰ María Huamán cumple años en 3 días", got[2].Message)
	assert.Equal(t, PriorityMedium, got[2].Priority)
	assert.Equal(t, "birthday:3:2024-05-15", got[2].ID)
}

func TestSortNotifications_UnreadFirstThenPriority(t *testing.T) {
	ns := []Notification{
		{ID: "a", Priority: PriorityMedium},
		{ID: "b", Priority: PriorityHigh, Read: true},
		{ID: "c", Priority: PriorityHigh},
		{ID: "d", Priority: PriorityMedium, Read: true},
	}
	SortNotifications(ns)
	order := []string{}
	for _, n := range ns {
		order = append(order, n.ID)
	}
	assert.Equal(t, []string{"c", "a", "b", "d"}, order)
}

func TestNotifications_ReadStateIsPersisted(t *testing.T) {
	ctx := context.Background()
	s, _ := newAdminServices(t)

	list, err := s.Notifications.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, strings.Contains(list[0].Message, "Ana Quispe"))
	assert.Equal(t, 1, s.Notifications.UnreadCount())

	s.Notifications.MarkRead(ctx, list[0].ID)
	assert.Equal(t, 0, s.Notifications.UnreadCount())

	keys, err := s.Store.Keys(ctx, "notification_read:")
	require.NoError(t, err)
	assert.Equal(t, []string{"notification_read:" + list[0].ID}, keys)

	s.Notifications.Clear()
	assert.Empty(t, s.Notifications.Items.Get())

	fresh := NewNotifications(s.Customers, s.Store)
	fresh.Now = s.Now
	again, err := fresh.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.True(t, again[0].Read)
}

func TestNotifications_MarkAllReadAndForget(t *testing.T) {
	ctx := context.Background()
	s, _ := newAdminServices(t)
	_, err := s.Notifications.Refresh(ctx)
	require.NoError(t, err)

	s.Notifications.MarkAllRead(ctx)
	assert.Equal(t, 0, s.Notifications.UnreadCount())

	n, err := s.Notifications.ForgetRead(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "markers from today are kept")

	s.Notifications.Now = func() time.Time { return fixedToday.AddDate(0, 2, 0) }
	n, err = s.Notifications.ForgetRead(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
