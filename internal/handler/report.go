package handler

import (
	"net/http"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportHandler serves the daily/monthly report and financial summary
// endpoints. Reports cover the actor's own data only.
type ReportHandler struct {
	DB *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{DB: db}
}

// Daily lists the actor's transactions for one day (?date=YYYY-MM-DD,
// default today).
func (h *ReportHandler) Daily(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	dateStr := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	day, err := util.ValidateDate(dateStr)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var transactions []models.Transaction
	if err := h.DB.Preload("Category").
		Where("user_id = ? AND date >= ? AND date < ?", user.ID, day, day.AddDate(0, 0, 1)).
		Order("id ASC").
		Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	util.Success(c, transactions, "daily report retrieved successfully")
}

// Monthly lists one month's transactions together with its summary.
func (h *ReportHandler) Monthly(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	year, month := monthParams(c)
	start, end := monthRange(year, month)

	var transactions []models.Transaction
	if err := h.DB.Preload("Category").
		Where("user_id = ? AND date >= ? AND date < ?", user.ID, start, end).
		Order("date ASC, id ASC").
		Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	income, expense, err := sumByType(h.DB, user.ID, start, end)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	util.Success(c, gin.H{
		"transactions": transactions,
		"summary": gin.H{
			"income":  income,
			"expense": expense,
			"balance": income.Sub(expense),
		},
	}, "monthly report retrieved successfully")
}

// monthlyData computes one month's totals including the savings accumulated
// in that month.
func (h *ReportHandler) monthlyData(userID uint, year int, month time.Month) (gin.H, error) {
	start, end := monthRange(year, month)

	income, expense, err := sumByType(h.DB, userID, start, end)
	if err != nil {
		return nil, err
	}

	var saving decimal.Decimal
	err = h.DB.Model(&models.Saving{}).
		Select("COALESCE(SUM(current_amount), 0)").
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).
		Scan(&saving).Error
	if err != nil {
		return nil, err
	}

	return gin.H{
		"month":         int(month),
		"year":          year,
		"total_income":  income,
		"total_expense": expense,
		"net_total":     income.Sub(expense),
		"total_saving":  saving,
	}, nil
}

// FinancialSummary returns one month's income, expense, net and saving
// totals.
func (h *ReportHandler) FinancialSummary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	year, month := monthParams(c)

	data, err := h.monthlyData(user.ID, year, month)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	util.Success(c, data, "financial summary retrieved successfully")
}

// MonthlyFinancialData returns the full-year series plus the current and
// next month's totals.
func (h *ReportHandler) MonthlyFinancialData(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	year, _ := monthParams(c)
	now := time.Now()

	monthlyData := make([]gin.H, 0, 12)
	for m := time.January; m <= time.December; m++ {
		data, err := h.monthlyData(user.ID, year, m)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
			return
		}
		monthlyData = append(monthlyData, data)
	}

	current, err := h.monthlyData(user.ID, now.Year(), now.Month())
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	nextMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	next, err := h.monthlyData(user.ID, nextMonth.Year(), nextMonth.Month())
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	util.Success(c, gin.H{
		"monthly_data":  monthlyData,
		"current_month": current,
		"next_month":    next,
	}, "monthly financial data retrieved successfully")
}
