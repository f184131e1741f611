package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single income or expense record. CategoryID is
// nullable: the recurring processor inserts the row before the category is
// resolved, and deleting a category nulls it out rather than dropping the
// transaction.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"index;not null" json:"user_id"`
	CategoryID  *uint           `gorm:"index" json:"category_id"`
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,2);not null" json:"amount"`
	Type        string          `gorm:"size:16;index;not null" json:"type"` // income / expense
	Description string          `gorm:"size:255" json:"description"`
	Date        time.Time       `gorm:"index;not null" json:"date"` // when the transaction happened
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	User     *User     `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Category *Category `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
}

func (t *Transaction) OwnerID() uint { return t.UserID }
