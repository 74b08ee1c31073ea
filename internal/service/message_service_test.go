package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"messaging-service/internal/domain"
	"messaging-service/internal/ws"
)

// MockMessageRepository is a func-field mock of MessageRepository
type MockMessageRepository struct {
	CreateFunc             func(ctx context.Context, message *domain.Message) error
	FindByConversationFunc func(ctx context.Context, conversationID uint, limit, offset int) ([]domain.Message, error)
}

func (m *MockMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, message)
	}
	message.ID = 1
	return nil
}

func (m *MockMessageRepository) FindByConversation(ctx context.Context, conversationID uint, limit, offset int) ([]domain.Message, error) {
	if m.FindByConversationFunc != nil {
		return m.FindByConversationFunc(ctx, conversationID, limit, offset)
	}
	return nil, nil
}

type fakeBroadcaster struct {
	delivered []*domain.Message
	memberIDs []uint
}

func (b *fakeBroadcaster) Deliver(message *domain.Message, memberIDs []uint) ws.DeliveryReport {
	b.delivered = append(b.delivered, message)
	b.memberIDs = memberIDs
	return ws.DeliveryReport{Delivered: memberIDs}
}

func memberRepo(members map[uint]bool, memberIDs []uint) *MockConversationRepository {
	return &MockConversationRepository{
		IsMemberFunc: func(ctx context.Context, conversationID, userID uint) (bool, error) {
			return members[userID], nil
		},
		GetMemberIDsFunc: func(ctx context.Context, conversationID uint) ([]uint, error) {
			return memberIDs, nil
		},
	}
}

func TestMessageService_SendPersistsThenBroadcasts(t *testing.T) {
	broadcaster := &fakeBroadcaster{}
	messages := &MockMessageRepository{}
	svc := NewMessageService(messages, memberRepo(map[uint]bool{1: true}, []uint{1, 2}), broadcaster, zap.NewNop())

	content := "hello"
	message, err := svc.Send(context.Background(), 5, 1, domain.MessageTypeText, &content, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if message.ID == 0 {
		t.Fatal("message must be persisted before broadcast")
	}
	if len(broadcaster.delivered) != 1 {
		t.Fatalf("expected 1 broadcast, got %d", len(broadcaster.delivered))
	}
	if broadcaster.delivered[0].ID != message.ID {
		t.Fatal("broadcast must carry the persisted message")
	}
	if len(broadcaster.memberIDs) != 2 {
		t.Fatalf("expected fan-out to 2 members, got %v", broadcaster.memberIDs)
	}
}

func TestMessageService_SendRejectsNonMember(t *testing.T) {
	broadcaster := &fakeBroadcaster{}
	svc := NewMessageService(&MockMessageRepository{}, memberRepo(map[uint]bool{1: true}, []uint{1}), broadcaster, zap.NewNop())

	content := "hello"
	_, err := svc.Send(context.Background(), 5, 9, domain.MessageTypeText, &content, nil)
	if !errors.Is(err, ErrNotMember) {
		t.Fatalf("got %v, want ErrNotMember", err)
	}
	if len(broadcaster.delivered) != 0 {
		t.Fatal("non-member send must not broadcast")
	}
}

func TestMessageService_SendDoesNotBroadcastOnPersistFailure(t *testing.T) {
	broadcaster := &fakeBroadcaster{}
	messages := &MockMessageRepository{
		CreateFunc: func(ctx context.Context, message *domain.Message) error {
			return errors.New("db down")
		},
	}
	svc := NewMessageService(messages, memberRepo(map[uint]bool{1: true}, []uint{1}), broadcaster, zap.NewNop())

	content := "hello"
	_, err := svc.Send(context.Background(), 5, 1, domain.MessageTypeText, &content, nil)
	if err == nil {
		t.Fatal("expected persist error")
	}
	if len(broadcaster.delivered) != 0 {
		t.Fatal("a message that failed to persist must never be broadcast")
	}
}

func TestMessageService_SendSurvivesMemberLookupFailure(t *testing.T) {
	broadcaster := &fakeBroadcaster{}
	conversations := &MockConversationRepository{
		IsMemberFunc: func(ctx context.Context, conversationID, userID uint) (bool, error) {
			return true, nil
		},
		GetMemberIDsFunc: func(ctx context.Context, conversationID uint) ([]uint, error) {
			return nil, errors.New("db down")
		},
	}
	svc := NewMessageService(&MockMessageRepository{}, conversations, broadcaster, zap.NewNop())

	content := "hello"
	message, err := svc.Send(context.Background(), 5, 1, domain.MessageTypeText, &content, nil)
	if err != nil {
		t.Fatalf("persisted message must be returned despite fan-out failure: %v", err)
	}
	if message == nil || message.ID == 0 {
		t.Fatal("expected the persisted message back")
	}
	if len(broadcaster.delivered) != 0 {
		t.Fatal("no broadcast without the member list")
	}
}

func TestMessageService_ListRequiresMembership(t *testing.T) {
	svc := NewMessageService(&MockMessageRepository{}, memberRepo(map[uint]bool{1: true}, nil), &fakeBroadcaster{}, zap.NewNop())

	if _, err := svc.List(context.Background(), 5, 9, 50, 0); !errors.Is(err, ErrNotMember) {
		t.Fatalf("got %v, want ErrNotMember", err)
	}
}

func TestMessageService_ListClampsLimit(t *testing.T) {
	var gotLimit int
	messages := &MockMessageRepository{
		FindByConversationFunc: func(ctx context.Context, conversationID uint, limit, offset int) ([]domain.Message, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	svc := NewMessageService(messages, memberRepo(map[uint]bool{1: true}, nil), &fakeBroadcaster{}, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.List(ctx, 5, 1, 0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 50 {
		t.Fatalf("default limit: got %d, want 50", gotLimit)
	}

	if _, err := svc.List(ctx, 5, 1, 500, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 100 {
		t.Fatalf("clamped limit: got %d, want 100", gotLimit)
	}
}
