package models

import "time"

// Reminder is a local wall-clock reminder. Label doubles as its identity:
// two reminders never share a label. Each day in Repeat maps to one
// scheduled alarm registration.
type Reminder struct {
	Label  string
	Repeat []time.Weekday
	Hour   int
	Minute int
}

// RepeatsOn reports whether the reminder fires on the given weekday.
func (r Reminder) RepeatsOn(day time.Weekday) bool {
	for _, d := range r.Repeat {
		if d == day {
			return true
		}
	}
	return false
}

// ReminderCache is the durable cache row for Reminder. Repeat is stored as
// a comma-separated list of weekday numbers (0=Sunday).
type ReminderCache struct {
	Label  string
	Repeat string
	Hour   int
	Minute int
}
