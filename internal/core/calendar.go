// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"time"

	"github.com/toeirei/panaderia/internal/model"
)

// NewCustomerWindow is how long after registration a customer counts as new.
const NewCustomerWindow = 30

// UpcomingBirthdayWindow is the look-ahead of the birthday check in days.
const UpcomingBirthdayWindow = 7

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Age returns the completed years between birth and today.
func Age(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// AgeOf parses a backend birth date and returns the age, or nil when the
// date is missing or unreadable.
func AgeOf(birthDate string, today time.Time) *int {
	birth, ok := model.ParseDate(birthDate)
	if !ok {
		return nil
	}
	age := Age(birth, today)
	return &age
}

// birthdayIn returns the birthday of birth in the given year. Feb 29 falls
// on Mar 1 in common years.
func birthdayIn(birth time.Time, year int, loc *time.Location) time.Time {
	if birth.Month() == time.February && birth.Day() == 29 && !isLeap(year) {
		return time.Date(year, time.March, 1, 0, 0, 0, 0, loc)
	}
	return time.Date(year, birth.Month(), birth.Day(), 0, 0, 0, 0, loc)
}

func isLeap(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// NextBirthday returns the next birthday on or after today.
func NextBirthday(birth, today time.Time) time.Time {
	day := midnight(today)
	next := birthdayIn(birth, day.Year(), day.Location())
	if next.Before(day) {
		next = birthdayIn(birth, day.Year()+1, day.Location())
	}
	return next
}

// DaysUntilBirthday returns 0 on the birthday itself and counts whole days
// up to the next one otherwise.
func DaysUntilBirthday(birth, today time.Time) int {
	day := midnight(today)
	next := NextBirthday(birth, day)
	// Calendar arithmetic avoids DST hours skewing the division.
	a := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, time.UTC)
	b := time.Date(next.Year(), next.Month(), next.Day(), 12, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// IsBirthdayToday reports whether birth falls on today's month and day.
func IsBirthdayToday(birth, today time.Time) bool {
	return DaysUntilBirthday(birth, today) == 0
}

// IsBirthdayUpcoming reports whether the next birthday is after today and
// no more than within days away.
func IsBirthdayUpcoming(birth, today time.Time, within int) bool {
	d := DaysUntilBirthday(birth, today)
	return d > 0 && d <= within
}

// IsNewCustomer reports whether registration lies within the last
// NewCustomerWindow days.
func IsNewCustomer(registration, today time.Time) bool {
	cutoff := midnight(today).AddDate(0, 0, -NewCustomerWindow)
	return !midnight(registration).Before(cutoff)
}

// BirthdayReport splits customers into birthdays today and upcoming ones.
type BirthdayReport struct {
	Today    []model.Customer
	Upcoming []model.Customer
}

// CheckBirthdays classifies customers by birthday relative to today.
// Customers without a readable birth date are skipped.
func CheckBirthdays(customers []model.Customer, today time.Time) BirthdayReport {
	var r BirthdayReport
	for _, c := range customers {
		birth, ok := model.ParseDate(c.BirthDate)
		if !ok {
			continue
		}
		switch {
		case IsBirthdayToday(birth, today):
			r.Today = append(r.Today, c)
		case IsBirthdayUpcoming(birth, today, UpcomingBirthdayWindow):
			r.Upcoming = append(r.Upcoming, c)
		}
	}
	return r
}

// CountNewCustomers counts customers registered within the new-customer
// window.
func CountNewCustomers(customers []model.Customer, today time.Time) int {
	n := 0
	for _, c := range customers {
		if reg, ok := model.ParseDate(c.RegistrationDate); ok && IsNewCustomer(reg, today) {
			n++
		}
	}
	return n
}
