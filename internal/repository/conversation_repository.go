package repository

import (
	"context"

	"gorm.io/gorm"

	"messaging-service/internal/domain"
)

// ConversationRepository defines the interface for conversation data access
type ConversationRepository interface {
	Create(ctx context.Context, conversation *domain.Conversation, memberIDs []uint) error
	FindByID(ctx context.Context, id uint) (*domain.Conversation, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.Conversation, error)
	FindPrivateBetween(ctx context.Context, userA, userB uint) (*domain.Conversation, error)
	AddMember(ctx context.Context, conversationID, userID uint) error
	GetMemberIDs(ctx context.Context, conversationID uint) ([]uint, error)
	IsMember(ctx context.Context, conversationID, userID uint) (bool, error)
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// Create persists the conversation and its member rows in one transaction.
func (r *conversationRepository) Create(ctx context.Context, conversation *domain.Conversation, memberIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conversation).Error; err != nil {
			return err
		}
		for _, userID := range memberIDs {
			member := &domain.ConversationMember{
				ConversationID: conversation.ID,
				UserID:         userID,
			}
			if err := tx.Create(member).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *conversationRepository) FindByID(ctx context.Context, id uint) (*domain.Conversation, error) {
	var conversation domain.Conversation
	if err := r.db.WithContext(ctx).Preload("Members").First(&conversation, id).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Conversation, error) {
	var conversations []domain.Conversation
	err := r.db.WithContext(ctx).
		Joins("JOIN conversation_members ON conversation_members.conversation_id = conversations.id").
		Where("conversation_members.user_id = ?", userID).
		Preload("Members").
		Order("conversations.updated_at DESC").
		Find(&conversations).Error
	return conversations, err
}

// FindPrivateBetween returns the existing private conversation containing
// exactly the given pair, or nil when none exists.
func (r *conversationRepository) FindPrivateBetween(ctx context.Context, userA, userB uint) (*domain.Conversation, error) {
	var conversation domain.Conversation
	err := r.db.WithContext(ctx).
		Joins("JOIN conversation_members m1 ON m1.conversation_id = conversations.id AND m1.user_id = ?", userA).
		Joins("JOIN conversation_members m2 ON m2.conversation_id = conversations.id AND m2.user_id = ?", userB).
		Where("conversations.type = ?", domain.ConversationTypePrivate).
		Preload("Members").
		First(&conversation).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepository) AddMember(ctx context.Context, conversationID, userID uint) error {
	member := &domain.ConversationMember{
		ConversationID: conversationID,
		UserID:         userID,
	}
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *conversationRepository) GetMemberIDs(ctx context.Context, conversationID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&domain.ConversationMember{}).
		Where("conversation_id = ?", conversationID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *conversationRepository) IsMember(ctx context.Context, conversationID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.ConversationMember{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	return count > 0, err
}
