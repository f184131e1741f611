// Package handler contains the HTTP handlers for the fintrack API.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"fintrack/internal/models"
	"fintrack/internal/policy"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated user placed by AuthMiddleware. When it
// is missing the request is answered with 401 and ok is false.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return nil, false
	}
	return user, true
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// pagination reads page/page_size query parameters.
func pagination(c *gin.Context, defaultSize int) (page, size, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultSize)))
	switch {
	case size <= 0:
		size = defaultSize
	case size > 100:
		size = 100
	}
	return page, size, (page - 1) * size
}

// respondPolicyError maps gateway errors onto the response contract: 404 for
// a resource that never existed, 403 for one that exists but is not the
// actor's, 500 otherwise.
func respondPolicyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, policy.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "resource not found")
	case errors.Is(err, policy.ErrForbidden):
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "you do not have access to this resource")
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
	}
}
