package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a per-category spending limit for one month.
type Budget struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     uint            `gorm:"index;not null" json:"user_id"`
	CategoryID uint            `gorm:"index;not null" json:"category_id"`
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,2);not null" json:"amount"`
	Month      string          `gorm:"size:7;index;not null" json:"month"` // YYYY-MM
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	User     *User     `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Category *Category `gorm:"constraint:OnDelete:CASCADE" json:"category,omitempty"`
}

func (b *Budget) OwnerID() uint { return b.UserID }
