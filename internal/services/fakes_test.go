package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/murmurapp/murmur/internal/models"
	"github.com/murmurapp/murmur/internal/repositories"
)

// In-memory fakes implementing the repository interfaces, so service
// behavior is tested without Postgres/Redis.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
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

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var best *models.User
	for _, u := range r.users {
		if u.Username != username {
			continue
		}
		if best == nil || (u.Verified && !best.Verified) ||
			(u.Verified == best.Verified && u.CreatedAt.After(best.CreatedAt)) {
			best = u
		}
	}
	if best == nil {
		return nil, repositories.ErrNotFound
	}
	return best, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetVerifiedByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username && u.Verified {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) ReissueVerification(ctx context.Context, id uuid.UUID, passwordHash, code string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok || user.Verified {
		return repositories.ErrNotFound
	}
	user.PasswordHash = passwordHash
	user.VerifyCode = &code
	user.VerifyCodeExpiresAt = &expiresAt
	user.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) MarkVerified(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	for _, u := range r.users {
		if u.ID != id && u.Username == user.Username && u.Verified {
			return repositories.ErrConflict
		}
	}
	user.Verified = true
	user.VerifyCode = nil
	user.VerifyCodeExpiresAt = nil
	user.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) SetAcceptingMessages(ctx context.Context, id uuid.UUID, accepting bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.AcceptingMessages = accepting
	user.UpdatedAt = time.Now()
	return nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages map[uuid.UUID]*models.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[uuid.UUID]*models.Message)}
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	message.ID = uuid.New()
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	r.messages[message.ID] = message
	return nil
}

func (r *fakeMessageRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Message, error) {
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

func (r *fakeMessageRepo) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.messages[id]
	if !ok || m.UserID != userID {
		return repositories.ErrNotFound
	}
	delete(r.messages, id)
	return nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Session)}
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return session, nil
}

func (r *fakeSessionRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Session, error) {
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

func (r *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, id)
		}
	}
	return nil
}

type fakeSender struct {
	mu    sync.Mutex
	sent  []string // recipient addresses, in order
	codes []string
	fail  bool
}

func (s *fakeSender) SendVerificationEmail(ctx context.Context, to, username, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fail {
		return context.DeadlineExceeded
	}
	s.sent = append(s.sent, to)
	s.codes = append(s.codes, code)
	return nil
}
