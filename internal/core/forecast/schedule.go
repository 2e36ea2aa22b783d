// Package forecast is the pure projection engine: it materializes potential
// transactions from recurring rules, merges them with real history and walks
// the result into monthly balance snapshots. No function in this package
// performs I/O or mutates its inputs; everything is recomputed from scratch
// on every call.
package forecast

import (
	"time"

	"github.com/jmallet/cashplan/internal/core/domain"
)

// HorizonMonths is the rolling forecast window.
const HorizonMonths = 12

// dateKeyFormat renders a calendar date for dedup keys and deterministic ids.
const dateKeyFormat = "2006-01-02"

// Day truncates a timestamp to its calendar date at UTC midnight. The engine
// treats every date as a civil date, never an instant.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NextOccurrence advances a date by one recurrence step. Monthly and annual
// steps use calendar addition, so end-of-month dates roll over the way
// time.AddDate rolls them (Jan 31 + 1 month = Mar 2/3).
func NextOccurrence(d time.Time, f domain.RecurringFrequency) time.Time {
	switch f {
	case domain.Weekly:
		return d.AddDate(0, 0, 7)
	case domain.Annual:
		return d.AddDate(1, 0, 0)
	default:
		return d.AddDate(0, 1, 0)
	}
}

// ruleBound picks the exclusive end bound for rule expansion. The rolling
// horizon itself is exclusive (an annual rule starting today yields one
// occurrence, not two), while a rule's own end date is inclusive.
func ruleBound(endDate *time.Time, today time.Time) time.Time {
	bound := Day(today).AddDate(0, HorizonMonths, 0)
	if endDate != nil {
		if inclusive := Day(*endDate).AddDate(0, 0, 1); inclusive.Before(bound) {
			bound = inclusive
		}
	}
	return bound
}

// monthStart returns the first day of the month containing t.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// clampedDayOfMonth builds a date in the given month, pulling the day back to
// the month's last day when the month is too short (debitDay 31 in February).
func clampedDayOfMonth(year int, month time.Month, day int) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
