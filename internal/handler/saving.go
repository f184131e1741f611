package handler

import (
	"net/http"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/policy"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SavingHandler serves the savings-goal CRUD endpoints.
type SavingHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewSavingHandler(db *gorm.DB, pageSize int) *SavingHandler {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &SavingHandler{DB: db, PageSize: pageSize}
}

type savingReq struct {
	GoalName      string  `json:"goal_name" binding:"required,max=100"`
	TargetAmount  float64 `json:"target_amount" binding:"required,gt=0"`
	CurrentAmount float64 `json:"current_amount" binding:"gte=0"`
	Deadline      string  `json:"deadline" binding:"required"`
}

// requireFutureDeadline applies only on create: an existing goal may be
// edited past its deadline.
func (h *SavingHandler) validate(c *gin.Context, req *savingReq, requireFutureDeadline bool) (*models.Saving, bool) {
	target := decimal.NewFromFloat(req.TargetAmount).Round(2)
	if err := util.ValidateAmount(target); err != nil {
		util.Error(c, http.StatusUnprocessableEntity, util.CodeInvalidParam, err.Error())
		return nil, false
	}

	current := decimal.NewFromFloat(req.CurrentAmount).Round(2)
	if current.IsNegative() {
		util.Error(c, http.StatusUnprocessableEntity, util.CodeInvalidParam, "current amount must not be negative")
		return nil, false
	}

	deadline, err := util.ValidateDate(req.Deadline)
	if err != nil {
		util.Error(c, http.StatusUnprocessableEntity, util.CodeInvalidParam, err.Error())
		return nil, false
	}
	if requireFutureDeadline && !deadline.After(time.Now()) {
		util.Error(c, http.StatusUnprocessableEntity, util.CodeInvalidParam, "deadline must be a future date")
		return nil, false
	}

	return &models.Saving{
		GoalName:      req.GoalName,
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      deadline,
	}, true
}

func (h *SavingHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	page, size, offset := pagination(c, h.PageSize)

	base := h.DB.Model(&models.Saving{}).Scopes(policy.ScopeToOwner(user))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	var savings []models.Saving
	q := base.Session(&gorm.Session{})
	if user.IsAdmin() {
		q = q.Preload("User")
	}
	if err := q.
		Order("deadline ASC, id ASC").
		Limit(size).
		Offset(offset).
		Find(&savings).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	util.Success(c, gin.H{
		"items": savings,
		"total": total,
		"page":  page,
		"size":  size,
	}, "savings retrieved successfully")
}

func (h *SavingHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req savingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusUnprocessableEntity, util.CodeInvalidParam, "validation error: "+err.Error())
		return
	}

	saving, ok := h.validate(c, &req, true)
	if !ok {
		return
	}
	saving.UserID = user.ID

	if err := h.DB.Create(saving).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create saving")
		return
	}

	util.Created(c, saving, "saving created successfully")
}

func (h *SavingHandler) Show(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var saving models.Saving
	if err := policy.Check(h.DB, user, &saving, id, policy.ActionRead); err != nil {
		respondPolicyError(c, err)
		return
	}

	util.Success(c, saving, "saving retrieved successfully")
}

func (h *SavingHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req savingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusUnprocessableEntity, util.CodeInvalidParam, "validation error: "+err.Error())
		return
	}

	var saving models.Saving
	if err := policy.Check(h.DB, user, &saving, id, policy.ActionUpdate); err != nil {
		respondPolicyError(c, err)
		return
	}

	updated, ok := h.validate(c, &req, false)
	if !ok {
		return
	}

	saving.GoalName = updated.GoalName
	saving.TargetAmount = updated.TargetAmount
	saving.CurrentAmount = updated.CurrentAmount
	saving.Deadline = updated.Deadline

	if err := h.DB.Save(&saving).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update saving")
		return
	}

	util.Success(c, saving, "saving updated successfully")
}

func (h *SavingHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var saving models.Saving
	if err := policy.Check(h.DB, user, &saving, id, policy.ActionDelete); err != nil {
		respondPolicyError(c, err)
		return
	}

	if err := h.DB.Delete(&saving).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete saving")
		return
	}

	util.Success(c, gin.H{}, "saving deleted successfully")
}
