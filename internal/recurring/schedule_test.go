package recurring

import (
	"testing"
	"time"

	"fintrack/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextRunDate_Daily(t *testing.T) {
	got, err := NextRunDate(date(2024, time.March, 15), models.CycleDaily)
	if err != nil {
		t.Fatalf("NextRunDate() error = %v", err)
	}
	if want := date(2024, time.March, 16); !got.Equal(want) {
		t.Errorf("NextRunDate() = %s, want %s", got, want)
	}
}

func TestNextRunDate_Weekly(t *testing.T) {
	got, err := NextRunDate(date(2024, time.December, 30), models.CycleWeekly)
	if err != nil {
		t.Fatalf("NextRunDate() error = %v", err)
	}
	// crosses the year boundary
	if want := date(2025, time.January, 6); !got.Equal(want) {
		t.Errorf("NextRunDate() = %s, want %s", got, want)
	}
}

func TestNextRunDate_MonthlyPreservesDay(t *testing.T) {
	testCases := []struct {
		current time.Time
		want    time.Time
	}{
		{date(2024, time.January, 15), date(2024, time.February, 15)},
		{date(2024, time.June, 1), date(2024, time.July, 1)},
		{date(2024, time.December, 10), date(2025, time.January, 10)},
	}

	for _, tc := range testCases {
		got, err := NextRunDate(tc.current, models.CycleMonthly)
		if err != nil {
			t.Fatalf("NextRunDate(%s) error = %v", tc.current, err)
		}
		if !got.Equal(tc.want) {
			t.Errorf("NextRunDate(%s) = %s, want %s", tc.current, got, tc.want)
		}
	}
}

// A monthly step from a day the target month does not have must land on the
// target month's last day, never overflow into the month after.
func TestNextRunDate_MonthlyClampsShortMonths(t *testing.T) {
	testCases := []struct {
		current time.Time
		want    time.Time
	}{
		{date(2024, time.January, 31), date(2024, time.February, 29)}, // leap year
		{date(2023, time.January, 31), date(2023, time.February, 28)},
		{date(2024, time.March, 31), date(2024, time.April, 30)},
		{date(2024, time.January, 30), date(2024, time.February, 29)},
		{date(2024, time.October, 31), date(2024, time.November, 30)},
	}

	for _, tc := range testCases {
		got, err := NextRunDate(tc.current, models.CycleMonthly)
		if err != nil {
			t.Fatalf("NextRunDate(%s) error = %v", tc.current, err)
		}
		if !got.Equal(tc.want) {
			t.Errorf("NextRunDate(%s) = %s, want %s", tc.current, got, tc.want)
		}
	}
}

func TestNextRunDate_Yearly(t *testing.T) {
	testCases := []struct {
		current time.Time
		want    time.Time
	}{
		{date(2024, time.March, 15), date(2025, time.March, 15)},
		{date(2024, time.February, 29), date(2025, time.February, 28)}, // leap day clamps
	}

	for _, tc := range testCases {
		got, err := NextRunDate(tc.current, models.CycleYearly)
		if err != nil {
			t.Fatalf("NextRunDate(%s) error = %v", tc.current, err)
		}
		if !got.Equal(tc.want) {
			t.Errorf("NextRunDate(%s) = %s, want %s", tc.current, got, tc.want)
		}
	}
}

func TestNextRunDate_UnknownCycle(t *testing.T) {
	testCases := []string{"", "biweekly", "Monthly"}

	for _, cycle := range testCases {
		if _, err := NextRunDate(date(2024, time.January, 1), cycle); err == nil {
			t.Errorf("NextRunDate(cycle=%q) error = nil, want error", cycle)
		}
	}
}

func TestDateOnly(t *testing.T) {
	got := DateOnly(time.Date(2024, time.May, 7, 13, 45, 12, 999, time.UTC))
	if want := date(2024, time.May, 7); !got.Equal(want) {
		t.Errorf("DateOnly() = %s, want %s", got, want)
	}
}
