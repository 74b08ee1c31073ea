package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"messaging-service/internal/domain"
	"messaging-service/internal/middleware"
	"messaging-service/internal/repository"
	"messaging-service/internal/ws"
)

// Broadcaster delivers a persisted message to currently connected members.
type Broadcaster interface {
	Deliver(message *domain.Message, memberIDs []uint) ws.DeliveryReport
}

type MessageService interface {
	Send(ctx context.Context, conversationID, senderID uint, msgType domain.MessageType, content *string, metadata map[string]any) (*domain.Message, error)
	List(ctx context.Context, conversationID, requesterID uint, limit, offset int) ([]domain.Message, error)
}

type messageService struct {
	messages      repository.MessageRepository
	conversations repository.ConversationRepository
	broadcaster   Broadcaster
	logger        *zap.Logger
}

func NewMessageService(
	messages repository.MessageRepository,
	conversations repository.ConversationRepository,
	broadcaster Broadcaster,
	logger *zap.Logger,
) MessageService {
	return &messageService{
		messages:      messages,
		conversations: conversations,
		broadcaster:   broadcaster,
		logger:        logger,
	}
}

// Send persists the message and then fans it out to connected members.
// Fan-out happens synchronously after a successful persist, so per
// conversation the push order equals the persistence order. A message that
// fails to persist is never broadcast.
func (s *messageService) Send(
	ctx context.Context,
	conversationID, senderID uint,
	msgType domain.MessageType,
	content *string,
	metadata map[string]any,
) (*domain.Message, error) {
	isMember, err := s.conversations.IsMember(ctx, conversationID, senderID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !isMember {
		return nil, ErrNotMember
	}

	message := &domain.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Type:           msgType,
		Content:        content,
		Metadata:       metadata,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	middleware.RecordMessageSent()

	memberIDs, err := s.conversations.GetMemberIDs(ctx, conversationID)
	if err != nil {
		// The message is persisted; offline-style fetch still works, so a
		// failed member resolution only costs the live pushes.
		s.logger.Warn("failed to resolve members for fan-out",
			zap.Uint("conversationId", conversationID),
			zap.Uint("messageId", message.ID),
			zap.Error(err))
		return message, nil
	}

	report := s.broadcaster.Deliver(message, memberIDs)
	middleware.RecordMessagePushes(len(report.Delivered), len(report.Missed))
	s.logger.Debug("message fanned out",
		zap.Uint("messageId", message.ID),
		zap.Int("delivered", len(report.Delivered)),
		zap.Int("missed", len(report.Missed)))

	return message, nil
}

func (s *messageService) List(ctx context.Context, conversationID, requesterID uint, limit, offset int) ([]domain.Message, error) {
	isMember, err := s.conversations.IsMember(ctx, conversationID, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !isMember {
		return nil, ErrNotMember
	}

	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}

	return s.messages.FindByConversation(ctx, conversationID, limit, offset)
}
