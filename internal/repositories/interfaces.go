package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/murmurapp/murmur/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetVerifiedByUsername(ctx context.Context, username string) (*models.User, error)
	ReissueVerification(ctx context.Context, id uuid.UUID, passwordHash, code string, expiresAt time.Time) error
	MarkVerified(ctx context.Context, id uuid.UUID) error
	SetAcceptingMessages(ctx context.Context, id uuid.UUID, accepting bool) error
}

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Message, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}
