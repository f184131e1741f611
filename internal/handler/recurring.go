package handler

import (
	"net/http"

	"fintrack/internal/models"
	"fintrack/internal/policy"
	"fintrack/internal/recurring"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurringExpenseHandler serves the recurring expense definition CRUD
// endpoints. The definitions are consumed by the batch processor; only the
// processor moves next_run_date forward, but owners may edit it here.
type RecurringExpenseHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewRecurringExpenseHandler(db *gorm.DB, pageSize int) *RecurringExpenseHandler {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &RecurringExpenseHandler{DB: db, PageSize: pageSize}
}

type recurringExpenseReq struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Cycle       string  `json:"cycle" binding:"required"`
	NextRunDate string  `json:"next_run_date" binding:"required"`
	AutoAdd     bool    `json:"auto_add"`
}

func (h *RecurringExpenseHandler) validate(c *gin.Context, req *recurringExpenseReq) (*models.RecurringExpense, bool) {
	amount := decimal.NewFromFloat(req.Amount).Round(2)
	if err := util.ValidateAmount(amount); err != nil {
		util.Error(c, http.StatusUnprocessableEntity, util.CodeInvalidParam, err.Error())
		return nil, false
	}

	if err := util.ValidateCycle(req.Cycle); err != nil {
		util.Error(c, http.StatusUnprocessableEntity, util.CodeInvalidParam, err.Error())
		return nil, false
	}

	nextRun, err := util.ValidateDate(req.NextRunDate)
	if err != nil {
		util.Error(c, http.StatusUnprocessableEntity, util.CodeInvalidParam, err.Error())
		return nil, false
	}

	return &models.RecurringExpense{
		Name:        req.Name,
		Amount:      amount,
		Cycle:       req.Cycle,
		NextRunDate: recurring.DateOnly(nextRun),
		AutoAdd:     req.AutoAdd,
	}, true
}

func (h *RecurringExpenseHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	page, size, offset := pagination(c, h.PageSize)

	base := h.DB.Model(&models.RecurringExpense{}).Scopes(policy.ScopeToOwner(user))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	var defs []models.RecurringExpense
	q := base.Session(&gorm.Session{})
	if user.IsAdmin() {
		q = q.Preload("User")
	}
	if err := q.
		Order("next_run_date ASC, id ASC").
		Limit(size).
		Offset(offset).
		Find(&defs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	util.Success(c, gin.H{
		"items": defs,
		"total": total,
		"page":  page,
		"size":  size,
	}, "recurring expenses retrieved successfully")
}

func (h *RecurringExpenseHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req recurringExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusUnprocessableEntity, util.CodeInvalidParam, "validation error: "+err.Error())
		return
	}

	def, ok := h.validate(c, &req)
	if !ok {
		return
	}
	def.UserID = user.ID

	if err := h.DB.Create(def).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create recurring expense")
		return
	}

	util.Created(c, def, "recurring expense created successfully")
}

func (h *RecurringExpenseHandler) Show(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var def models.RecurringExpense
	if err := policy.Check(h.DB, user, &def, id, policy.ActionRead); err != nil {
		respondPolicyError(c, err)
		return
	}

	util.Success(c, def, "recurring expense retrieved successfully")
}

func (h *RecurringExpenseHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req recurringExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusUnprocessableEntity, util.CodeInvalidParam, "validation error: "+err.Error())
		return
	}

	var def models.RecurringExpense
	if err := policy.Check(h.DB, user, &def, id, policy.ActionUpdate); err != nil {
		respondPolicyError(c, err)
		return
	}

	updated, ok := h.validate(c, &req)
	if !ok {
		return
	}

	def.Name = updated.Name
	def.Amount = updated.Amount
	def.Cycle = updated.Cycle
	def.NextRunDate = updated.NextRunDate
	def.AutoAdd = updated.AutoAdd

	if err := h.DB.Save(&def).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update recurring expense")
		return
	}

	util.Success(c, def, "recurring expense updated successfully")
}

func (h *RecurringExpenseHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var def models.RecurringExpense
	if err := policy.Check(h.DB, user, &def, id, policy.ActionDelete); err != nil {
		respondPolicyError(c, err)
		return
	}

	if err := h.DB.Delete(&def).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete recurring expense")
		return
	}

	util.Success(c, gin.H{}, "recurring expense deleted successfully")
}
