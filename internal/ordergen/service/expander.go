package service

import (
	"time"

	subscriptiondomain "github.com/deliverlylabs/deliverly/internal/subscription/domain"
)

// DefaultHorizonDays bounds expansion for subscriptions without an end date:
// open-ended schedules generate up to referenceDate+90d, never unbounded.
const DefaultHorizonDays = 90

// expandSchedule walks the subscription's recurrence from start_date to its
// end bound and returns the ascending list of dates an order should exist
// for. Dates inside the pause window are suppressed without shifting the
// cadence. A start past the end bound yields an empty slice, not an error.
func expandSchedule(sub subscriptiondomain.Subscription, referenceDate time.Time, horizonDays int) ([]time.Time, error) {
	if !subscriptiondomain.ValidFrequency(sub.Frequency) {
		return nil, subscriptiondomain.ErrInvalidFrequency
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	start := truncateToDate(sub.StartDate)
	end := truncateToDate(referenceDate).AddDate(0, 0, horizonDays)
	if sub.EndDate != nil {
		end = truncateToDate(*sub.EndDate)
	}

	var dates []time.Time
	for step := 0; ; step++ {
		date := nthOccurrence(start, sub.Frequency, step)
		if date.After(end) {
			break
		}
		if !isPaused(sub, date) {
			dates = append(dates, date)
		}
	}
	return dates, nil
}

// nthOccurrence computes the step-th date of the cadence from the anchor.
// Monthly stepping is anchored calendar arithmetic clamped to the last valid
// day of the target month: Jan 31 -> Feb 29 -> Mar 31 in a leap year. Each
// occurrence derives from the anchor rather than the previous occurrence so
// the day-of-month never decays after a short month.
func nthOccurrence(anchor time.Time, frequency subscriptiondomain.Frequency, step int) time.Time {
	switch frequency {
	case subscriptiondomain.FrequencyDaily:
		return anchor.AddDate(0, 0, step)
	case subscriptiondomain.FrequencyWeekly:
		return anchor.AddDate(0, 0, 7*step)
	case subscriptiondomain.FrequencyMonthly:
		return addMonthsClamped(anchor, step)
	default:
		return anchor
	}
}

func addMonthsClamped(anchor time.Time, months int) time.Time {
	year, month, day := anchor.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	if max := daysInMonth(first.Year(), first.Month()); day > max {
		day = max
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// isPaused applies the scheduled-gap window: suppressed iff both bounds are
// set and paused_from <= date <= paused_until, inclusive on both ends.
func isPaused(sub subscriptiondomain.Subscription, date time.Time) bool {
	if sub.PausedFrom == nil || sub.PausedUntil == nil {
		return false
	}
	from := truncateToDate(*sub.PausedFrom)
	until := truncateToDate(*sub.PausedUntil)
	return !date.Before(from) && !date.After(until)
}

func truncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
