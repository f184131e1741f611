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

// TransactionHandler serves the transaction CRUD endpoints.
type TransactionHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewTransactionHandler(db *gorm.DB, pageSize int) *TransactionHandler {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &TransactionHandler{DB: db, PageSize: pageSize}
}

type transactionReq struct {
	CategoryID  uint    `json:"category_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Type        string  `json:"type" binding:"required,oneof=income expense"`
	Description string  `json:"description" binding:"max=255"`
	Date        string  `json:"date" binding:"required"`
}

// validate resolves the request into model fields, checking the amount cap,
// the date format and that the referenced category exists.
func (h *TransactionHandler) validate(c *gin.Context, req *transactionReq) (*models.Transaction, bool) {
	amount := decimal.NewFromFloat(req.Amount).Round(2)
	if err := util.ValidateAmount(amount); err != nil {
		util.Error(c, http.StatusUnprocessableEntity, util.CodeInvalidParam, err.Error())
		return nil, false
	}

	date, err := util.ValidateDate(req.Date)
	if err != nil {
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

	return &models.Transaction{
		CategoryID:  &req.CategoryID,
		Amount:      amount,
		Type:        req.Type,
		Description: req.Description,
		Date:        date,
	}, true
}

// List returns transactions, all rows for admins, own rows otherwise.
func (h *TransactionHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	page, size, offset := pagination(c, h.PageSize)

	base := h.DB.Model(&models.Transaction{}).Scopes(policy.ScopeToOwner(user))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	var transactions []models.Transaction
	q := base.Session(&gorm.Session{}).Preload("Category")
	if user.IsAdmin() {
		q = q.Preload("User")
	}
	if err := q.
		Order("date DESC, id DESC").
		Limit(size).
		Offset(offset).
		Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	util.Success(c, gin.H{
		"items": transactions,
		"total": total,
		"page":  page,
		"size":  size,
	}, "transactions retrieved successfully")
}

// Create stores a transaction owned by the actor, regardless of any owner id
// in the request body.
func (h *TransactionHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusUnprocessableEntity, util.CodeInvalidParam, "validation error: "+err.Error())
		return
	}

	txn, ok := h.validate(c, &req)
	if !ok {
		return
	}
	txn.UserID = user.ID

	if err := h.DB.Create(txn).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create transaction")
		return
	}

	util.Created(c, txn, "transaction created successfully")
}

func (h *TransactionHandler) Show(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var txn models.Transaction
	if err := policy.Check(h.DB, user, &txn, id, policy.ActionRead); err != nil {
		respondPolicyError(c, err)
		return
	}

	if err := h.DB.Preload("Category").First(&txn, txn.ID).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	util.Success(c, txn, "transaction retrieved successfully")
}

func (h *TransactionHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusUnprocessableEntity, util.CodeInvalidParam, "validation error: "+err.Error())
		return
	}

	var txn models.Transaction
	if err := policy.Check(h.DB, user, &txn, id, policy.ActionUpdate); err != nil {
		respondPolicyError(c, err)
		return
	}

	updated, ok := h.validate(c, &req)
	if !ok {
		return
	}

	txn.CategoryID = updated.CategoryID
	txn.Amount = updated.Amount
	txn.Type = updated.Type
	txn.Description = updated.Description
	txn.Date = updated.Date

	if err := h.DB.Save(&txn).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update transaction")
		return
	}

	util.Success(c, txn, "transaction updated successfully")
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var txn models.Transaction
	if err := policy.Check(h.DB, user, &txn, id, policy.ActionDelete); err != nil {
		respondPolicyError(c, err)
		return
	}

	if err := h.DB.Delete(&txn).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete transaction")
		return
	}

	util.Success(c, gin.H{}, "transaction deleted successfully")
}
