package handlers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/murmurapp/murmur/internal/models"
	"github.com/murmurapp/murmur/internal/repositories"
)

// Compact in-memory repositories so handlers are exercised over real
// services without Postgres/Redis.

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrConflict
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memUserRepo) GetVerifiedByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username && u.Verified {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memUserRepo) ReissueVerification(ctx context.Context, id uuid.UUID, passwordHash, code string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.Verified {
		return repositories.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.VerifyCode = &code
	u.VerifyCodeExpiresAt = &expiresAt
	return nil
}

func (r *memUserRepo) MarkVerified(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.Verified = true
	u.VerifyCode = nil
	u.VerifyCodeExpiresAt = nil
	return nil
}

func (r *memUserRepo) SetAcceptingMessages(ctx context.Context, id uuid.UUID, accepting bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.AcceptingMessages = accepting
	return nil
}

type memMessageRepo struct {
	mu       sync.Mutex
	messages map[uuid.UUID]*models.Message
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{messages: make(map[uuid.UUID]*models.Message)}
}

func (r *memMessageRepo) Create(ctx context.Context, message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	message.ID = uuid.New()
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	r.messages[message.ID] = message
	return nil
}

func (r *memMessageRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Message
	for _, m := range r.messages {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memMessageRepo) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.messages[id]
	if !ok || m.UserID != userID {
		return repositories.ErrNotFound
	}
	delete(r.messages, id)
	return nil
}

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*models.Session)}
}

func (r *memSessionRepo) Create(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return nil
}

func (r *memSessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		return s, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *memSessionRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Session
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *memSessionRepo) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, id)
		}
	}
	return nil
}

type memSender struct {
	mu   sync.Mutex
	sent int
}

func (s *memSender) SendVerificationEmail(ctx context.Context, to, username, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent++
	return nil
}

type stubSuggester struct {
	suggestions []string
	err         error
}

func (s *stubSuggester) SuggestMessages(ctx context.Context) ([]string, error) {
	return s.suggestions, s.err
}
