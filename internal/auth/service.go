package auth

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"messaging-service/internal/domain"
	"messaging-service/internal/repository"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Service handles registration, login, and credential resolution.
type Service struct {
	users  repository.UserRepository
	tokens *TokenManager
}

func NewService(users repository.UserRepository, tokens *TokenManager) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
	}
}

func (s *Service) Register(ctx context.Context, username, password string) (*domain.User, string, error) {
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, "", ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to look up username: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username: username,
		Password: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !CheckPassword(password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// Resolve maps raw transport credentials to an existing user. Missing,
// malformed, or expired tokens, and tokens whose user no longer exists,
// all resolve to ErrInvalidToken.
func (s *Service) Resolve(ctx context.Context, raw string) (*domain.User, error) {
	if raw == "" {
		return nil, ErrInvalidToken
	}

	userID, err := s.tokens.Verify(raw)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	return user, nil
}
