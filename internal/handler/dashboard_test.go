package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func dashboardRouter(db *gorm.DB, actor *models.User) *gin.Engine {
	r := gin.New()
	r.Use(actingAs(actor))

	h := NewDashboardHandler(db)
	r.GET("/api/dashboard/summary", h.Summary)
	r.GET("/api/dashboard/chart", h.Chart)
	return r
}

func seedDatedTxn(t *testing.T, db *gorm.DB, userID, categoryID uint, amount float64, txnType, day string) {
	t.Helper()

	date, err := time.Parse("2006-01-02", day)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Transaction{
		UserID:     userID,
		CategoryID: &categoryID,
		Amount:     decimal.NewFromFloat(amount),
		Type:       txnType,
		Date:       date,
	}).Error)
}

func TestDashboardSummary_MonthTotals(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice@example.com", models.RoleUser)
	bob := seedUser(t, db, "bob@example.com", models.RoleUser)
	salary := seedCategory(t, db, alice.ID, "Salary", models.TypeIncome)
	food := seedCategory(t, db, alice.ID, "Food", models.TypeExpense)

	seedDatedTxn(t, db, alice.ID, salary.ID, 3000, models.TypeIncome, "2024-01-05")
	seedDatedTxn(t, db, alice.ID, food.ID, 120.50, models.TypeExpense, "2024-01-10")
	seedDatedTxn(t, db, alice.ID, food.ID, 79.50, models.TypeExpense, "2024-01-25")
	// outside the month and another user's row, both excluded
	seedDatedTxn(t, db, alice.ID, food.ID, 999, models.TypeExpense, "2024-02-01")
	seedDatedTxn(t, db, bob.ID, food.ID, 500, models.TypeExpense, "2024-01-15")

	r := dashboardRouter(db, alice)
	w, env := doJSON(t, r, http.MethodGet, "/api/dashboard/summary?year=2024&month=1", nil)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var summary struct {
		Income  decimal.Decimal `json:"income"`
		Expense decimal.Decimal `json:"expense"`
		Balance decimal.Decimal `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.True(t, decimal.NewFromInt(3000).Equal(summary.Income), "income = %s", summary.Income)
	assert.True(t, decimal.NewFromInt(200).Equal(summary.Expense), "expense = %s", summary.Expense)
	assert.True(t, decimal.NewFromInt(2800).Equal(summary.Balance), "balance = %s", summary.Balance)
}

func TestDashboardChart_GroupsByCategory(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice@example.com", models.RoleUser)
	food := seedCategory(t, db, alice.ID, "Food", models.TypeExpense)
	transport := seedCategory(t, db, alice.ID, "Transport", models.TypeExpense)

	seedDatedTxn(t, db, alice.ID, food.ID, 50, models.TypeExpense, "2024-01-03")
	seedDatedTxn(t, db, alice.ID, food.ID, 25, models.TypeExpense, "2024-01-14")
	seedDatedTxn(t, db, alice.ID, transport.ID, 30, models.TypeExpense, "2024-01-20")

	r := dashboardRouter(db, alice)
	w, env := doJSON(t, r, http.MethodGet, "/api/dashboard/chart?year=2024&month=1", nil)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var chart struct {
		ExpenseByCategory map[string]decimal.Decimal `json:"expense_by_category"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &chart))
	require.Len(t, chart.ExpenseByCategory, 2)
	assert.True(t, decimal.NewFromInt(75).Equal(chart.ExpenseByCategory["Food"]))
	assert.True(t, decimal.NewFromInt(30).Equal(chart.ExpenseByCategory["Transport"]))
}
