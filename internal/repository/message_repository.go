package repository

import (
	"context"

	"gorm.io/gorm"

	"messaging-service/internal/domain"
)

// MessageRepository defines the interface for message data access
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	FindByConversation(ctx context.Context, conversationID uint, limit, offset int) ([]domain.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// FindByConversation returns messages ordered by creation time, oldest first.
func (r *messageRepository) FindByConversation(ctx context.Context, conversationID uint, limit, offset int) ([]domain.Message, error) {
	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	return messages, err
}
