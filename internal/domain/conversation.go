package domain

import (
	"time"
)

// ConversationType defines the type of conversation
type ConversationType string

const (
	ConversationTypePrivate ConversationType = "private"
	ConversationTypeGroup   ConversationType = "group"
)

// Conversation represents a private or group chat
type Conversation struct {
	ID        uint                 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      *string              `gorm:"type:varchar(100)" json:"name,omitempty"`
	Type      ConversationType     `gorm:"type:varchar(20);not null" json:"type"`
	CreatedBy uint                 `gorm:"not null" json:"createdBy"`
	CreatedAt time.Time            `gorm:"type:timestamptz;default:now();not null" json:"createdAt"`
	UpdatedAt time.Time            `gorm:"type:timestamptz;default:now();not null" json:"updatedAt"`
	Members   []ConversationMember `gorm:"foreignKey:ConversationID" json:"members,omitempty"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// ConversationMember represents a user belonging to a conversation
type ConversationMember struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"memberId"`
	ConversationID uint      `gorm:"not null;uniqueIndex:idx_conversation_user" json:"conversationId"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_conversation_user;index" json:"userId"`
	JoinedAt       time.Time `gorm:"type:timestamptz;default:now();not null" json:"joinedAt"`
}

func (ConversationMember) TableName() string {
	return "conversation_members"
}
