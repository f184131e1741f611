package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Repetition cycles for recurring expenses.
const (
	CycleDaily   = "daily"
	CycleWeekly  = "weekly"
	CycleMonthly = "monthly"
	CycleYearly  = "yearly"
)

// RecurringExpense is a template describing a repeating expense and when it
// next falls due. The processor only ever moves NextRunDate forward.
type RecurringExpense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"index;not null" json:"user_id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,2);not null" json:"amount"`
	Cycle       string          `gorm:"size:16;not null" json:"cycle"` // daily / weekly / monthly / yearly
	NextRunDate time.Time       `gorm:"index;not null" json:"next_run_date"`
	AutoAdd     bool            `gorm:"index;not null" json:"auto_add"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (r *RecurringExpense) OwnerID() uint { return r.UserID }
