package handler

import (
	"errors"
	"net/http"

	"fintrack/internal/models"
	"fintrack/internal/policy"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetHandler serves the budget CRUD endpoints.
type BudgetHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewBudgetHandler(db *gorm.DB, pageSize int) *BudgetHandler {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &BudgetHandler{DB: db, PageSize: pageSize}
}

type budgetReq struct {
	CategoryID uint    `json:"category_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Month      string  `json:"month" binding:"required"`
}

func (h *BudgetHandler) validate(c *gin.Context, req *budgetReq) (*models.Budget, bool) {
	amount := decimal.NewFromFloat(req.Amount).Round(2)
	if err := util.ValidateAmount(amount); err != nil {
		util.Error(c, http.StatusUnprocessableEntity, util.CodeInvalidParam, err.Error())
		return nil, false
	}

	if err := util.ValidateMonth(req.Month); err != nil {
		util.Error(c, http.StatusUnprocessableEntity, util.CodeInvalidParam, err.Error())
		return nil, false
	}

	var category models.Category
	if err := h.DB.First(&category, req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusUnprocessableEntity, util.CodeInvalidParam, "category does not exist")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return nil, false
	}

	return &models.Budget{
		CategoryID: req.CategoryID,
		Amount:     amount,
		Month:      req.Month,
	}, true
}

func (h *BudgetHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	page, size, offset := pagination(c, h.PageSize)

	base := h.DB.Model(&models.Budget{}).Scopes(policy.ScopeToOwner(user))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	var budgets []models.Budget
	q := base.Session(&gorm.Session{}).Preload("Category")
	if user.IsAdmin() {
		q = q.Preload("User")
	}
	if err := q.
		Order("month DESC, id DESC").
		Limit(size).
		Offset(offset).
		Find(&budgets).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	util.Success(c, gin.H{
		"items": budgets,
		"total": total,
		"page":  page,
		"size":  size,
	}, "budgets retrieved successfully")
}

func (h *BudgetHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req budgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusUnprocessableEntity, util.CodeInvalidParam, "validation error: "+err.Error())
		return
	}

	budget, ok := h.validate(c, &req)
	if !ok {
		return
	}
	budget.UserID = user.ID

	if err := h.DB.Create(budget).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create budget")
		return
	}

	util.Created(c, budget, "budget created successfully")
}

func (h *BudgetHandler) Show(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var budget models.Budget
	if err := policy.Check(h.DB, user, &budget, id, policy.ActionRead); err != nil {
		respondPolicyError(c, err)
		return
	}

	if err := h.DB.Preload("Category").First(&budget, budget.ID).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	util.Success(c, budget, "budget retrieved successfully")
}

func (h *BudgetHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req budgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusUnprocessableEntity, util.CodeInvalidParam, "validation error: "+err.Error())
		return
	}

	var budget models.Budget
	if err := policy.Check(h.DB, user, &budget, id, policy.ActionUpdate); err != nil {
		respondPolicyError(c, err)
		return
	}

	updated, ok := h.validate(c, &req)
	if !ok {
		return
	}

	budget.CategoryID = updated.CategoryID
	budget.Amount = updated.Amount
	budget.Month = updated.Month

	if err := h.DB.Save(&budget).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update budget")
		return
	}

	util.Success(c, budget, "budget updated successfully")
}

func (h *BudgetHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var budget models.Budget
	if err := policy.Check(h.DB, user, &budget, id, policy.ActionDelete); err != nil {
		respondPolicyError(c, err)
		return
	}

	if err := h.DB.Delete(&budget).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete budget")
		return
	}

	util.Success(c, gin.H{}, "budget deleted successfully")
}
