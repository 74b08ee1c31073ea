package handler

import (
	"time"

	"messaging-service/internal/domain"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type CreateConversationRequest struct {
	Name    *string `json:"name"`
	Type    string  `json:"type" binding:"required,oneof=private group"`
	UserIDs []uint  `json:"userIds" binding:"required,min=1"`
}

type AddMemberRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

type SendMessageRequest struct {
	Type     string         `json:"type" binding:"omitempty,oneof=text image voice code"`
	Content  *string        `json:"content"`
	Metadata map[string]any `json:"metadata"`
}

type PresenceResponse struct {
	UserID   uint      `json:"userId"`
	IsOnline bool      `json:"isOnline"`
	LastSeen time.Time `json:"lastSeen"`
}
