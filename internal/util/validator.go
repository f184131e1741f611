package util

import (
	"fmt"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

var maxAmount = decimal.NewFromInt(10000000)

// ValidateAmount checks a monetary amount (must be positive, below the cap).
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("amount must be positive, got %s", amount)
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("amount too large, got %s", amount)
	}
	return nil
}

// ValidateDate checks date format (must be YYYY-MM-DD) and returns the parsed day.
func ValidateDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}
	return t, nil
}

// ValidateMonth checks month format (must be YYYY-MM).
func ValidateMonth(monthStr string) error {
	if monthStr == "" {
		return fmt.Errorf("month is empty")
	}
	if _, err := time.Parse("2006-01", monthStr); err != nil {
		return fmt.Errorf("invalid month format: %w", err)
	}
	return nil
}

// ValidateCycle checks a recurring expense repetition cycle.
func ValidateCycle(cycle string) error {
	switch cycle {
	case models.CycleDaily, models.CycleWeekly, models.CycleMonthly, models.CycleYearly:
		return nil
	default:
		return fmt.Errorf("invalid cycle %q", cycle)
	}
}
