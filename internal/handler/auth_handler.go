package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"messaging-service/internal/auth"
	"messaging-service/internal/response"
)

type AuthHandler struct {
	auth   *auth.Service
	logger *zap.Logger
}

func NewAuthHandler(authService *auth.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   authService,
		logger: logger,
	}
}

// Register godoc
// @Summary      Register a new account
// @Description  Creates an account and returns a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration payload"
// @Success      201 {object} AuthResponse
// @Failure      400 {object} map[string]interface{}
// @Failure      409 {object} map[string]interface{}
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	user, token, err := h.auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			response.SendError(c, http.StatusConflict, response.ErrCodeConflict, "Username already taken")
			return
		}
		h.logger.Error("failed to register user", zap.String("username", req.Username), zap.Error(err))
		response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Failed to register")
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: user})
}

// Login godoc
// @Summary      Log in
// @Description  Verifies credentials and returns a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login payload"
// @Success      200 {object} AuthResponse
// @Failure      401 {object} map[string]interface{}
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid username or password")
			return
		}
		h.logger.Error("failed to log in user", zap.String("username", req.Username), zap.Error(err))
		response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}
