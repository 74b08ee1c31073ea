package service

import (
	"context"
	"errors"
	"fmt"

	"messaging-service/internal/domain"
	"messaging-service/internal/repository"
)

var (
	ErrNotMember      = errors.New("user is not a member of this conversation")
	ErrAlreadyMember  = errors.New("user is already a member of this conversation")
	ErrInvalidMembers = errors.New("private conversation requires exactly one other user")
)

type ConversationService interface {
	Create(ctx context.Context, creatorID uint, name *string, convType domain.ConversationType, userIDs []uint) (*domain.Conversation, error)
	Get(ctx context.Context, conversationID, requesterID uint) (*domain.Conversation, error)
	GetForUser(ctx context.Context, userID uint) ([]domain.Conversation, error)
	AddMember(ctx context.Context, conversationID, requesterID, userID uint) error
	MemberIDs(ctx context.Context, conversationID uint) ([]uint, error)
	IsMember(ctx context.Context, conversationID, userID uint) (bool, error)
}

type conversationService struct {
	conversations repository.ConversationRepository
}

func NewConversationService(conversations repository.ConversationRepository) ConversationService {
	return &conversationService{conversations: conversations}
}

// Create starts a new conversation with the creator and the given users as
// members. Private creation is idempotent: an existing private conversation
// for the same pair is returned instead of creating a duplicate.
func (s *conversationService) Create(
	ctx context.Context,
	creatorID uint,
	name *string,
	convType domain.ConversationType,
	userIDs []uint,
) (*domain.Conversation, error) {
	if convType == domain.ConversationTypePrivate {
		if len(userIDs) != 1 || userIDs[0] == creatorID {
			return nil, ErrInvalidMembers
		}

		existing, err := s.conversations.FindPrivateBetween(ctx, creatorID, userIDs[0])
		if err != nil {
			return nil, fmt.Errorf("failed to look up private conversation: %w", err)
		}
		if existing != nil {
			return existing, nil
		}
	}

	memberIDs := dedupeMembers(creatorID, userIDs)

	conversation := &domain.Conversation{
		Name:      name,
		Type:      convType,
		CreatedBy: creatorID,
	}
	if err := s.conversations.Create(ctx, conversation, memberIDs); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	return s.conversations.FindByID(ctx, conversation.ID)
}

func (s *conversationService) Get(ctx context.Context, conversationID, requesterID uint) (*domain.Conversation, error) {
	isMember, err := s.conversations.IsMember(ctx, conversationID, requesterID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotMember
	}
	return s.conversations.FindByID(ctx, conversationID)
}

func (s *conversationService) GetForUser(ctx context.Context, userID uint) ([]domain.Conversation, error) {
	return s.conversations.FindByUser(ctx, userID)
}

func (s *conversationService) AddMember(ctx context.Context, conversationID, requesterID, userID uint) error {
	isMember, err := s.conversations.IsMember(ctx, conversationID, requesterID)
	if err != nil {
		return err
	}
	if !isMember {
		return ErrNotMember
	}

	alreadyMember, err := s.conversations.IsMember(ctx, conversationID, userID)
	if err != nil {
		return err
	}
	if alreadyMember {
		return ErrAlreadyMember
	}

	return s.conversations.AddMember(ctx, conversationID, userID)
}

func (s *conversationService) MemberIDs(ctx context.Context, conversationID uint) ([]uint, error) {
	return s.conversations.GetMemberIDs(ctx, conversationID)
}

func (s *conversationService) IsMember(ctx context.Context, conversationID, userID uint) (bool, error) {
	return s.conversations.IsMember(ctx, conversationID, userID)
}

func dedupeMembers(creatorID uint, userIDs []uint) []uint {
	seen := map[uint]bool{creatorID: true}
	members := []uint{creatorID}
	for _, id := range userIDs {
		if !seen[id] {
			seen[id] = true
			members = append(members, id)
		}
	}
	return members
}
