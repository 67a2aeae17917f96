// Package reminder decides which fill-up and price reminders are due.
package reminder

import "time"

type Kind string

const (
	Weekly     Kind = "weekly"
	Inactivity Kind = "inactivity"
	Price      Kind = "price"
)

const (
	WeeklyAfter     = 7 * 24 * time.Hour
	InactivityAfter = 10 * 24 * time.Hour
	PriceAfter      = 30 * 24 * time.Hour
)

type Reminder struct {
	Kind    Kind   `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

var reminders = map[Kind]Reminder{
	Weekly: {
		Kind:    Weekly,
		Title:   "Time to log your fill-up! ⛽",
		Message: "Keep your fuel tracking accurate, add your latest fill-up.",
	},
	Inactivity: {
		Kind:    Inactivity,
		Title:   "Haven't seen you in a while! 🚗",
		Message: "Log your recent fill-ups to keep your mileage stats up to date.",
	},
	Price: {
		Kind:    Price,
		Title:   "Fuel price check 📈",
		Message: "Have fuel prices changed? Update it with 'motofuel price set'.",
	},
}

// Due returns the reminders that apply at now. lastEntry is the date of the
// newest fill-up and priceUpdatedAt the last price change; nil means never.
func Due(now time.Time, lastEntry, priceUpdatedAt *time.Time) []Reminder {
	var due []Reminder

	if lastEntry == nil || now.Sub(*lastEntry) >= WeeklyAfter {
		due = append(due, reminders[Weekly])
	}
	if lastEntry != nil && now.Sub(*lastEntry) >= InactivityAfter {
		due = append(due, reminders[Inactivity])
	}
	if priceUpdatedAt == nil || now.Sub(*priceUpdatedAt) >= PriceAfter {
		due = append(due, reminders[Price])
	}

	return due
}
