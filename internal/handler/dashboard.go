package handler

import (
	"net/http"
	"strconv"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardHandler serves the monthly summary and category chart endpoints.
// Dashboards always show the actor's own data, admin or not.
type DashboardHandler struct {
	DB *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

// monthParams reads month/year query parameters, defaulting to the current
// month.
func monthParams(c *gin.Context) (year int, month time.Month) {
	now := time.Now()
	year, _ = strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if year <= 0 {
		year = now.Year()
	}
	m, _ := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if m < 1 || m > 12 {
		m = int(now.Month())
	}
	return year, time.Month(m)
}

func monthRange(year int, month time.Month) (start, end time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

type typeTotal struct {
	Type  string          `json:"type"`
	Total decimal.Decimal `json:"total"`
}

// sumByType returns the income and expense totals of a user's transactions
// within [start, end).
func sumByType(db *gorm.DB, userID uint, start, end time.Time) (income, expense decimal.Decimal, err error) {
	var rows []typeTotal
	err = db.Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	income, expense = decimal.Zero, decimal.Zero
	for _, row := range rows {
		if row.Type == models.TypeIncome {
			income = row.Total
		} else {
			expense = row.Total
		}
	}
	return income, expense, nil
}

// Summary returns the income/expense/balance totals for one month.
func (h *DashboardHandler) Summary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	year, month := monthParams(c)
	start, end := monthRange(year, month)

	income, expense, err := sumByType(h.DB, user.ID, start, end)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	util.Success(c, gin.H{
		"month":   int(month),
		"year":    year,
		"income":  income,
		"expense": expense,
		"balance": income.Sub(expense),
	}, "dashboard summary retrieved successfully")
}

// Chart returns the month's per-category income and expense breakdown.
func (h *DashboardHandler) Chart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	year, month := monthParams(c)
	start, end := monthRange(year, month)

	var transactions []models.Transaction
	if err := h.DB.Preload("Category").
		Where("user_id = ? AND date >= ? AND date < ?", user.ID, start, end).
		Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	incomeByCategory := make(map[string]decimal.Decimal)
	expenseByCategory := make(map[string]decimal.Decimal)

	for i := range transactions {
		t := &transactions[i]
		name := "Uncategorized"
		if t.Category != nil {
			name = t.Category.Name
		}
		if t.Type == models.TypeIncome {
			incomeByCategory[name] = incomeByCategory[name].Add(t.Amount)
		} else {
			expenseByCategory[name] = expenseByCategory[name].Add(t.Amount)
		}
	}

	util.Success(c, gin.H{
		"income_by_category":  incomeByCategory,
		"expense_by_category": expenseByCategory,
	}, "dashboard chart data retrieved successfully")
}
