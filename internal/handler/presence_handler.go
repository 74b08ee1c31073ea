package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"messaging-service/internal/repository"
	"messaging-service/internal/response"
	"messaging-service/internal/ws"
)

type PresenceHandler struct {
	registry *ws.Registry
	users    repository.UserRepository
	logger   *zap.Logger
}

func NewPresenceHandler(registry *ws.Registry, users repository.UserRepository, logger *zap.Logger) *PresenceHandler {
	return &PresenceHandler{
		registry: registry,
		users:    users,
		logger:   logger,
	}
}

// Online godoc
// @Summary      List online users
// @Description  Returns the ids of users with a live connection on this node
// @Tags         presence
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Router       /api/presence/online [get]
func (h *PresenceHandler) Online(c *gin.Context) {
	ids := h.registry.OnlineUsers()
	c.JSON(http.StatusOK, gin.H{"userIds": ids, "count": len(ids)})
}

// Status godoc
// @Summary      Get a user's presence
// @Description  Live status comes from the registry, last seen from the durable record
// @Tags         presence
// @Produce      json
// @Security     BearerAuth
// @Param        userId path int true "User ID"
// @Success      200 {object} PresenceResponse
// @Failure      404 {object} map[string]interface{}
// @Router       /api/presence/{userId} [get]
func (h *PresenceHandler) Status(c *gin.Context) {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid user id")
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "User not found")
			return
		}
		h.logger.Error("failed to load user presence", zap.Uint("userId", userID), zap.Error(err))
		response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Failed to load presence")
		return
	}

	c.JSON(http.StatusOK, PresenceResponse{
		UserID:   user.ID,
		IsOnline: h.registry.IsOnline(user.ID),
		LastSeen: user.LastSeen,
	})
}
