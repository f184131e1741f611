package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Business error codes carried alongside the HTTP status.
const (
	CodeOK           = 0
	CodeInvalidParam = 40001
	CodeAuth         = 40101
	CodeForbidden    = 40301
	CodeNotFound     = 40401
	CodeServerErr    = 50001
)

// Success writes the uniform success envelope.
func Success(c *gin.Context, data interface{}, msg string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"message": msg,
	})
}

// Created writes the success envelope with a 201 status.
func Created(c *gin.Context, data interface{}, msg string) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    data,
		"message": msg,
	})
}

// Error writes the uniform error envelope.
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"success": false,
		"code":    code,
		"message": msg,
	})
}
