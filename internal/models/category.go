package models

import "time"

// Transaction/category kinds.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// RecurringCategoryName is the reserved category that tags transactions
// materialized from recurring expense definitions.
const RecurringCategoryName = "Recurring Expense"

// Category represents income/expense category.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_categories_owner_name_type;not null" json:"user_id"`
	Name      string    `gorm:"size:64;uniqueIndex:idx_categories_owner_name_type;not null" json:"name"`
	Type      string    `gorm:"size:16;uniqueIndex:idx_categories_owner_name_type;index;not null" json:"type"` // income / expense
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Category) OwnerID() uint { return c.UserID }
