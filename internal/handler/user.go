package handler

import (
	"net/http"

	"fintrack/internal/models"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserHandler serves the admin-only user listing.
type UserHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewUserHandler(db *gorm.DB, pageSize int) *UserHandler {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &UserHandler{DB: db, PageSize: pageSize}
}

// List returns all users. Guarded by RequireAdmin in the router.
func (h *UserHandler) List(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	page, size, offset := pagination(c, h.PageSize)

	var total int64
	if err := h.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	var users []models.User
	if err := h.DB.
		Order("id ASC").
		Limit(size).
		Offset(offset).
		Find(&users).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	util.Success(c, gin.H{
		"items": users,
		"total": total,
		"page":  page,
		"size":  size,
	}, "users retrieved successfully")
}
