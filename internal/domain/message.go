package domain

import (
	"time"
)

// MessageType defines the type of message
type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeVoice MessageType = "voice"
	MessageTypeCode  MessageType = "code"
)

// Message represents a chat message. Messages are immutable once created;
// the fan-out path treats them as opaque payloads addressed by ConversationID.
type Message struct {
	ID             uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID uint           `gorm:"not null;index:idx_message_conversation_created" json:"conversationId"`
	SenderID       uint           `gorm:"not null;index" json:"senderId"`
	Type           MessageType    `gorm:"type:varchar(20);default:'text';not null" json:"type"`
	Content        *string        `gorm:"type:text" json:"content"`
	Metadata       map[string]any `gorm:"serializer:json" json:"metadata,omitempty"`
	CreatedAt      time.Time      `gorm:"type:timestamptz;default:now();not null;index:idx_message_conversation_created" json:"createdAt"`
}

func (Message) TableName() string {
	return "messages"
}
