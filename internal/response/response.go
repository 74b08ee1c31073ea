package response

import (
	"github.com/gin-gonic/gin"
)

const (
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "ALREADY_EXISTS"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// SendError writes the standard error envelope.
func SendError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}

// AbortError writes the error envelope and aborts the handler chain.
func AbortError(c *gin.Context, status int, code, message string) {
	SendError(c, status, code, message)
	c.Abort()
}
