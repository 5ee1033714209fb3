package services

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/murmurapp/murmur/internal/models"
	"github.com/murmurapp/murmur/internal/repositories"
)

const MaxMessageLength = 1000

// InboxService owns the anonymous-message lifecycle: append gated by the
// recipient's acceptance flag, reverse-chronological listing, and
// owner-scoped deletion.
type InboxService struct {
	userRepo    repositories.UserRepository
	messageRepo repositories.MessageRepository
	logger      *zap.Logger
}

func NewInboxService(userRepo repositories.UserRepository, messageRepo repositories.MessageRepository, logger *zap.Logger) *InboxService {
	return &InboxService{
		userRepo:    userRepo,
		messageRepo: messageRepo,
		logger:      logger,
	}
}

// SendMessage appends an anonymous message to the recipient's inbox. The
// sender is never recorded.
func (s *InboxService) SendMessage(ctx context.Context, username, content string) error {
	if content == "" || utf8.RuneCountInString(content) > MaxMessageLength {
		return ErrInvalidContent
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err == repositories.ErrNotFound {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get recipient: %w", err)
	}

	if !user.AcceptingMessages {
		return ErrNotAccepting
	}

	message := &models.Message{
		UserID:  user.ID,
		Content: content,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return fmt.Errorf("failed to store message: %w", err)
	}

	return nil
}

// ListMessages returns the caller's messages, newest first.
func (s *InboxService) ListMessages(ctx context.Context, userID uuid.UUID) ([]*models.Message, error) {
	// Defensive: the account may have vanished between session issuance and
	// this call.
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	messages, err := s.messageRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// DeleteMessage removes one message from the caller's own inbox. The delete
// is scoped to the caller, so an identifier from another account's inbox
// reports not-found instead of touching that account.
func (s *InboxService) DeleteMessage(ctx context.Context, userID, messageID uuid.UUID) error {
	err := s.messageRepo.Delete(ctx, messageID, userID)
	if err == repositories.ErrNotFound {
		return ErrMessageNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

func (s *InboxService) GetAcceptingMessages(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err == repositories.ErrNotFound {
		return false, ErrUserNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to get user: %w", err)
	}
	return user.AcceptingMessages, nil
}

func (s *InboxService) SetAcceptingMessages(ctx context.Context, userID uuid.UUID, accepting bool) error {
	err := s.userRepo.SetAcceptingMessages(ctx, userID, accepting)
	if err == repositories.ErrNotFound {
		return ErrUpdateFailed
	}
	if err != nil {
		return fmt.Errorf("failed to update accepting_messages: %w", err)
	}

	s.logger.Info("acceptance toggle updated", zap.String("user_id", userID.String()), zap.Bool("accepting", accepting))
	return nil
}
