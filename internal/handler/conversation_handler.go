package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"messaging-service/internal/domain"
	"messaging-service/internal/middleware"
	"messaging-service/internal/response"
	"messaging-service/internal/service"
)

type ConversationHandler struct {
	conversations service.ConversationService
	logger        *zap.Logger
}

func NewConversationHandler(conversations service.ConversationService, logger *zap.Logger) *ConversationHandler {
	return &ConversationHandler{
		conversations: conversations,
		logger:        logger,
	}
}

// Create godoc
// @Summary      Create a conversation
// @Description  Creates a private or group conversation; private creation is idempotent per user pair
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateConversationRequest true "Conversation payload"
// @Success      201 {object} domain.Conversation
// @Failure      400 {object} map[string]interface{}
// @Router       /api/conversations [post]
func (h *ConversationHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	conversation, err := h.conversations.Create(
		c.Request.Context(),
		userID,
		req.Name,
		domain.ConversationType(req.Type),
		req.UserIDs,
	)
	if err != nil {
		h.logger.Error("failed to create conversation", zap.Uint("userId", userID), zap.Error(err))
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, conversation)
}

// List godoc
// @Summary      List my conversations
// @Tags         conversations
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} domain.Conversation
// @Router       /api/conversations [get]
func (h *ConversationHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	conversations, err := h.conversations.GetForUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list conversations", zap.Uint("userId", userID), zap.Error(err))
		response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Failed to list conversations")
		return
	}

	c.JSON(http.StatusOK, conversations)
}

// Get godoc
// @Summary      Get a conversation
// @Tags         conversations
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Conversation ID"
// @Success      200 {object} domain.Conversation
// @Failure      403 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /api/conversations/{id} [get]
func (h *ConversationHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	conversationID, err := parseIDParam(c, "id")
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid conversation id")
		return
	}

	conversation, err := h.conversations.Get(c.Request.Context(), conversationID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversation)
}

// AddMember godoc
// @Summary      Add a member to a conversation
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Conversation ID"
// @Param        request body AddMemberRequest true "Member payload"
// @Success      204
// @Failure      403 {object} map[string]interface{}
// @Failure      409 {object} map[string]interface{}
// @Router       /api/conversations/{id}/members [post]
func (h *ConversationHandler) AddMember(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	conversationID, err := parseIDParam(c, "id")
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid conversation id")
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	if err := h.conversations.AddMember(c.Request.Context(), conversationID, userID, req.UserID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
