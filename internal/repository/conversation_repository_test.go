package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"messaging-service/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	// Create tables for SQLite compatibility
	db.Exec(`CREATE TABLE conversations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT,
		type TEXT NOT NULL,
		created_by INTEGER NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	db.Exec(`CREATE TABLE conversation_members (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		conversation_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		joined_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (conversation_id, user_id)
	)`)
	db.Exec(`CREATE TABLE messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		conversation_id INTEGER NOT NULL,
		sender_id INTEGER NOT NULL,
		type TEXT NOT NULL DEFAULT 'text',
		content TEXT,
		metadata TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	db.Exec(`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT 0,
		last_seen DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)

	return db
}

func TestConversationRepository_CreateWithMembers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	conversation := &domain.Conversation{
		Type:      domain.ConversationTypeGroup,
		CreatedBy: 1,
	}
	if err := repo.Create(ctx, conversation, []uint{1, 2, 3}); err != nil {
		t.Fatalf("failed to create conversation: %v", err)
	}

	got, err := repo.FindByID(ctx, conversation.ID)
	if err != nil {
		t.Fatalf("failed to find conversation: %v", err)
	}
	if len(got.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(got.Members))
	}
}

func TestConversationRepository_FindPrivateBetween(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	private := &domain.Conversation{
		Type:      domain.ConversationTypePrivate,
		CreatedBy: 1,
	}
	if err := repo.Create(ctx, private, []uint{1, 2}); err != nil {
		t.Fatalf("failed to create private conversation: %v", err)
	}

	// A group with the same pair must not match.
	group := &domain.Conversation{
		Type:      domain.ConversationTypeGroup,
		CreatedBy: 1,
	}
	if err := repo.Create(ctx, group, []uint{1, 2}); err != nil {
		t.Fatalf("failed to create group conversation: %v", err)
	}

	// Lookup works in both orders.
	for _, pair := range [][2]uint{{1, 2}, {2, 1}} {
		got, err := repo.FindPrivateBetween(ctx, pair[0], pair[1])
		if err != nil {
			t.Fatalf("lookup (%d,%d) failed: %v", pair[0], pair[1], err)
		}
		if got == nil {
			t.Fatalf("lookup (%d,%d) found nothing", pair[0], pair[1])
		}
		if got.ID != private.ID {
			t.Fatalf("lookup (%d,%d) got conversation %d, want %d", pair[0], pair[1], got.ID, private.ID)
		}
	}

	// An uninvolved pair finds nothing.
	got, err := repo.FindPrivateBetween(ctx, 1, 9)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for unknown pair, got conversation %d", got.ID)
	}
}

func TestConversationRepository_Membership(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	conversation := &domain.Conversation{
		Type:      domain.ConversationTypeGroup,
		CreatedBy: 1,
	}
	if err := repo.Create(ctx, conversation, []uint{1, 2}); err != nil {
		t.Fatalf("failed to create conversation: %v", err)
	}

	isMember, err := repo.IsMember(ctx, conversation.ID, 1)
	if err != nil || !isMember {
		t.Fatalf("user 1 should be a member (err=%v)", err)
	}
	isMember, err = repo.IsMember(ctx, conversation.ID, 3)
	if err != nil || isMember {
		t.Fatalf("user 3 should not be a member (err=%v)", err)
	}

	if err := repo.AddMember(ctx, conversation.ID, 3); err != nil {
		t.Fatalf("failed to add member: %v", err)
	}

	ids, err := repo.GetMemberIDs(ctx, conversation.ID)
	if err != nil {
		t.Fatalf("failed to get member ids: %v", err)
	}
	want := []uint{1, 2, 3}
	if len(ids) != len(want) {
		t.Fatalf("expected %d members, got %d", len(want), len(ids))
	}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("member %d: got %d, want %d", i, ids[i], id)
		}
	}
}

func TestConversationRepository_AddMemberDuplicateFails(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	conversation := &domain.Conversation{
		Type:      domain.ConversationTypeGroup,
		CreatedBy: 1,
	}
	if err := repo.Create(ctx, conversation, []uint{1}); err != nil {
		t.Fatalf("failed to create conversation: %v", err)
	}

	if err := repo.AddMember(ctx, conversation.ID, 1); err == nil {
		t.Fatal("duplicate member insert should fail on the unique index")
	}
}

func TestConversationRepository_FindByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	first := &domain.Conversation{Type: domain.ConversationTypeGroup, CreatedBy: 1}
	if err := repo.Create(ctx, first, []uint{1, 2}); err != nil {
		t.Fatalf("failed to create conversation: %v", err)
	}
	second := &domain.Conversation{Type: domain.ConversationTypeGroup, CreatedBy: 2}
	if err := repo.Create(ctx, second, []uint{2, 3}); err != nil {
		t.Fatalf("failed to create conversation: %v", err)
	}

	conversations, err := repo.FindByUser(ctx, 1)
	if err != nil {
		t.Fatalf("failed to list conversations: %v", err)
	}
	if len(conversations) != 1 {
		t.Fatalf("expected 1 conversation for user 1, got %d", len(conversations))
	}
	if conversations[0].ID != first.ID {
		t.Fatalf("got conversation %d, want %d", conversations[0].ID, first.ID)
	}
}
