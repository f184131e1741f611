package handler

import (
	"net/http"
	"strings"

	"fintrack/internal/models"
	"fintrack/internal/policy"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler serves the category CRUD endpoints.
type CategoryHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewCategoryHandler(db *gorm.DB, pageSize int) *CategoryHandler {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &CategoryHandler{DB: db, PageSize: pageSize}
}

type categoryReq struct {
	Name string `json:"name" binding:"required,max=64"`
	Type string `json:"type" binding:"required,oneof=income expense"`
}

// List returns categories, all of them for admins, own rows otherwise.
func (h *CategoryHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	page, size, offset := pagination(c, h.PageSize)

	base := h.DB.Model(&models.Category{}).Scopes(policy.ScopeToOwner(user))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	var categories []models.Category
	if err := base.Session(&gorm.Session{}).
		Order("id ASC").
		Limit(size).
		Offset(offset).
		Find(&categories).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	util.Success(c, gin.H{
		"items": categories,
		"total": total,
		"page":  page,
		"size":  size,
	}, "categories retrieved successfully")
}

// Create stores a category owned by the actor. Any owner id supplied in the
// body is ignored.
func (h *CategoryHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusUnprocessableEntity, util.CodeInvalidParam, "validation error: "+err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusUnprocessableEntity, util.CodeInvalidParam, "name is required")
		return
	}

	category := models.Category{
		UserID: user.ID,
		Name:   req.Name,
		Type:   req.Type,
	}
	if err := h.DB.Create(&category).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create category")
		return
	}

	util.Created(c, category, "category created successfully")
}

func (h *CategoryHandler) Show(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var category models.Category
	if err := policy.Check(h.DB, user, &category, id, policy.ActionRead); err != nil {
		respondPolicyError(c, err)
		return
	}

	util.Success(c, category, "category retrieved successfully")
}

func (h *CategoryHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusUnprocessableEntity, util.CodeInvalidParam, "validation error: "+err.Error())
		return
	}

	var category models.Category
	if err := policy.Check(h.DB, user, &category, id, policy.ActionUpdate); err != nil {
		respondPolicyError(c, err)
		return
	}

	category.Name = strings.TrimSpace(req.Name)
	category.Type = req.Type
	if err := h.DB.Save(&category).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update category")
		return
	}

	util.Success(c, category, "category updated successfully")
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var category models.Category
	if err := policy.Check(h.DB, user, &category, id, policy.ActionDelete); err != nil {
		respondPolicyError(c, err)
		return
	}

	if err := h.DB.Delete(&category).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete category")
		return
	}

	util.Success(c, gin.H{}, "category deleted successfully")
}
