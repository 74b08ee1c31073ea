package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"messaging-service/internal/domain"
)

// MockUserRepository is a func-field mock of repository.UserRepository
type MockUserRepository struct {
	CreateFunc         func(ctx context.Context, user *domain.User) error
	FindByIDFunc       func(ctx context.Context, id uint) (*domain.User, error)
	FindByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
	FindAllFunc        func(ctx context.Context) ([]domain.User, error)
	SetActiveFunc      func(ctx context.Context, id uint, active bool, lastSeen time.Time) error
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = 1
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockUserRepository) SetActive(ctx context.Context, id uint, active bool, lastSeen time.Time) error {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, id, active, lastSeen)
	}
	return nil
}

func newTestService(users *MockUserRepository) *Service {
	return NewService(users, NewTokenManager("test-secret", time.Hour))
}

func TestService_Register(t *testing.T) {
	var created *domain.User
	users := &MockUserRepository{
		CreateFunc: func(ctx context.Context, user *domain.User) error {
			user.ID = 1
			created = user
			return nil
		},
	}
	svc := newTestService(users)

	user, token, err := svc.Register(context.Background(), "alice", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice", user.Username)

	// Stored password is hashed
	require.NotNil(t, created)
	assert.NotEqual(t, "password123", created.Password)
	assert.True(t, CheckPassword("password123", created.Password))
}

func TestService_RegisterRejectsDuplicateUsername(t *testing.T) {
	users := &MockUserRepository{
		FindByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 1, Username: username}, nil
		},
	}
	svc := newTestService(users)

	_, _, err := svc.Register(context.Background(), "alice", "password123")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestService_Login(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	users := &MockUserRepository{
		FindByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 1, Username: username, Password: hash}, nil
		},
	}
	svc := newTestService(users)
	ctx := context.Background()

	user, token, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, uint(1), user.ID)

	_, _, err = svc.Login(ctx, "alice", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_LoginUnknownUser(t *testing.T) {
	svc := newTestService(&MockUserRepository{})

	_, _, err := svc.Login(context.Background(), "ghost", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Resolve(t *testing.T) {
	users := &MockUserRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.User, error) {
			if id == 1 {
				return &domain.User{ID: 1, Username: "alice"}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newTestService(users)
	ctx := context.Background()

	token, err := svc.tokens.Issue(1)
	require.NoError(t, err)

	user, err := svc.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)

	_, err = svc.Resolve(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Resolve(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Token for a deleted user
	orphan, err := svc.tokens.Issue(99)
	require.NoError(t, err)
	_, err = svc.Resolve(ctx, orphan)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
