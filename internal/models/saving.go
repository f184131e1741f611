package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Saving represents a savings goal working towards a target amount.
type Saving struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"index;not null" json:"user_id"`
	GoalName      string          `gorm:"size:100;not null" json:"goal_name"`
	TargetAmount  decimal.Decimal `gorm:"type:DECIMAL(20,2);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:DECIMAL(20,2);not null" json:"current_amount"`
	Deadline      time.Time       `gorm:"not null" json:"deadline"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (s *Saving) OwnerID() uint { return s.UserID }
