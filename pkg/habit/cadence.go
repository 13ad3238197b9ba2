// Package habit holds the cadence rules shared by the progress and
// reminder schedulers.
package habit

import (
	"strings"
	"time"
)

// Cadence is how often a habit is supposed to be exercised. Values other
// than the three known ones are kept verbatim; they accrue no automatic
// progress and remind fail-open.
type Cadence string

const (
	Daily   Cadence = "Daily"
	Weekly  Cadence = "Weekly"
	Monthly Cadence = "Monthly"
)

// DefaultTotal is the progress target assigned to every new habit.
const DefaultTotal = 30.0

// ManualIncrement is the progress added by an explicit "complete" action.
const ManualIncrement = 10.0

// ParseCadence normalizes the known cadence labels from user text.
// Unrecognized text passes through trimmed but otherwise untouched.
func ParseCadence(text string) Cadence {
	trimmed := strings.TrimSpace(text)
	switch strings.ToLower(trimmed) {
	case "daily":
		return Daily
	case "weekly":
		return Weekly
	case "monthly":
		return Monthly
	default:
		return Cadence(trimmed)
	}
}

// Known reports whether c is one of the supported cadence values.
func Known(c Cadence) bool {
	switch c {
	case Daily, Weekly, Monthly:
		return true
	default:
		return false
	}
}

// HourlyIncrement is the progress a habit accrues per scheduler hour.
// Daily habits complete over 30 days, Weekly over 4 weeks, Monthly over a
// 30-day month. Unknown cadences accrue nothing.
func HourlyIncrement(c Cadence, total float64) float64 {
	switch c {
	case Daily:
		return total / (30 * 24)
	case Weekly:
		return total / (4 * 7 * 24)
	case Monthly:
		return total / 720
	default:
		return 0
	}
}

// ShouldRemind decides whether now warrants a reminder for the cadence:
// Daily always, Weekly on Mondays, Monthly on the first of the month.
// Unknown cadences remind unconditionally.
func ShouldRemind(c Cadence, now time.Time) bool {
	switch c {
	case Daily:
		return true
	case Weekly:
		return now.Weekday() == time.Monday
	case Monthly:
		return now.Day() == 1
	default:
		return true
	}
}
