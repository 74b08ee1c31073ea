package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"messaging-service/internal/response"
	"messaging-service/internal/service"
)

// handleServiceError maps service layer errors onto the standard envelope.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotMember):
		response.SendError(c, http.StatusForbidden, response.ErrCodeForbidden, "Not a member of this conversation")
	case errors.Is(err, service.ErrAlreadyMember):
		response.SendError(c, http.StatusConflict, response.ErrCodeConflict, "User is already a member")
	case errors.Is(err, service.ErrInvalidMembers):
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Private conversation requires exactly one other user")
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Resource not found")
	default:
		response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
	}
}
