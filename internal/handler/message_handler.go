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

type MessageHandler struct {
	messages service.MessageService
	logger   *zap.Logger
}

func NewMessageHandler(messages service.MessageService, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{
		messages: messages,
		logger:   logger,
	}
}

// Send godoc
// @Summary      Send a message
// @Description  Persists the message and pushes it to connected members
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Conversation ID"
// @Param        request body SendMessageRequest true "Message payload"
// @Success      201 {object} domain.Message
// @Failure      403 {object} map[string]interface{}
// @Router       /api/conversations/{id}/messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
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

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	msgType := domain.MessageType(req.Type)
	if msgType == "" {
		msgType = domain.MessageTypeText
	}

	message, err := h.messages.Send(c.Request.Context(), conversationID, userID, msgType, req.Content, req.Metadata)
	if err != nil {
		h.logger.Error("failed to send message",
			zap.Uint("conversationId", conversationID),
			zap.Uint("userId", userID),
			zap.Error(err))
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// List godoc
// @Summary      List conversation messages
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Conversation ID"
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset"
// @Success      200 {array} domain.Message
// @Failure      403 {object} map[string]interface{}
// @Router       /api/conversations/{id}/messages [get]
func (h *MessageHandler) List(c *gin.Context) {
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

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	messages, err := h.messages.List(c.Request.Context(), conversationID, userID, limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}
