// Package recurrence implements schedule advancement for recurring
// transaction and task templates.
package recurrence

import (
	"fmt"
	"time"
)

// Frequency is the step size for schedule advancement.
type Frequency string

const (
	Daily   Frequency = "DAILY"
	Weekly  Frequency = "WEEKLY"
	Monthly Frequency = "MONTHLY"
)

// Valid reports whether f is a recognized frequency.
func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Monthly:
		return true
	}
	return false
}

// Advance returns the next occurrence date after date for the given frequency.
//
// Monthly advancement is a naive month increment: same day-of-month capped at
// day 28, rolling the year when the month overflows. Stored schedules depend
// on this exact policy; do not switch to last-day-of-month semantics.
func Advance(date time.Time, freq Frequency) (time.Time, error) {
	switch freq {
	case Daily:
		return date.AddDate(0, 0, 1), nil
	case Weekly:
		return date.AddDate(0, 0, 7), nil
	case Monthly:
		month := int(date.Month()) + 1
		year := date.Year() + (month-1)/12
		month = (month-1)%12 + 1
		day := date.Day()
		if day > 28 {
			day = 28
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, date.Location()), nil
	default:
		return time.Time{}, fmt.Errorf("unknown recurrence frequency %q", freq)
	}
}

// DateOf truncates t to a calendar date at UTC midnight. All record dates in
// the tracker are stored in this form so equality and <= comparisons behave
// as day comparisons.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
