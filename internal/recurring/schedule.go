package recurring

import (
	"fmt"
	"time"

	"fintrack/internal/models"
)

// NextRunDate advances a due date by exactly one cycle unit from its current
// value. Monthly and yearly steps preserve the day of month; when the target
// month is shorter, the day clamps to the month's last valid day
// (Jan 31 -> Feb 29 in a leap year, Feb 28 otherwise).
func NextRunDate(current time.Time, cycle string) (time.Time, error) {
	switch cycle {
	case models.CycleDaily:
		return current.AddDate(0, 0, 1), nil
	case models.CycleWeekly:
		return current.AddDate(0, 0, 7), nil
	case models.CycleMonthly:
		return addMonthsClamped(current, 1), nil
	case models.CycleYearly:
		return addMonthsClamped(current, 12), nil
	default:
		return time.Time{}, fmt.Errorf("unknown repetition cycle: %q", cycle)
	}
}

// addMonthsClamped shifts t by the given number of months without the
// normalization AddDate would apply (Jan 31 + 1 month must not become Mar 2).
func addMonthsClamped(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)

	day := t.Day()
	if last := lastDayOfMonth(firstOfTarget.Year(), firstOfTarget.Month(), t.Location()); day > last {
		day = last
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// DateOnly truncates t to day granularity in its own location. Due-date
// comparisons and materialized transaction dates are day-granular.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
