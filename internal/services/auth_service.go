package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/murmurapp/murmur/internal/models"
	"github.com/murmurapp/murmur/internal/repositories"
	"github.com/murmurapp/murmur/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid username/email or password")
	ErrNotVerified        = errors.New("account is not verified")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService is the session gate: it issues sessions for verified accounts
// and turns bearer tokens back into an explicit identity.
type AuthService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	jwtSecret   string
	jwtExpiry   time.Duration
}

type LoginRequest struct {
	// Identifier is the account email or handle; either works.
	Identifier string
	Password   string
}

type LoginResponse struct {
	Token     string
	ExpiresAt time.Time
	UserID    uuid.UUID
	Username  string
}

// Identity is the authenticated caller, produced once per request by the
// auth middleware and never re-derived downstream.
type Identity struct {
	UserID    uuid.UUID
	Username  string
	SessionID string
}

func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	jwtSecret string,
	jwtExpiry time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtSecret:   jwtSecret,
		jwtExpiry:   jwtExpiry,
	}
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Identifier)
	if err == repositories.ErrNotFound {
		user, err = s.userRepo.GetByUsername(ctx, req.Identifier)
	}
	if err == repositories.ErrNotFound {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	// Only email-verified accounts may sign in.
	if !user.Verified {
		return nil, ErrNotVerified
	}

	sessionID := uuid.New().String()
	expiresAt := time.Now().Add(s.jwtExpiry)
	session := &models.Session{
		ID:        sessionID,
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	err = s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.generateToken(user.ID, user.Username, sessionID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    user.ID,
		Username:  user.Username,
	}, nil
}

func (s *AuthService) generateToken(userID uuid.UUID, username, sessionID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":      userID.String(),
		"username": username,
		"jti":      sessionID,
		"exp":      expiresAt.Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) VerifyToken(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, ErrInvalidToken
	}

	username, ok := claims["username"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	sessionID, ok := claims["jti"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &Identity{
		UserID:    userID,
		Username:  username,
		SessionID: sessionID,
	}, nil
}

// Authenticate validates the token and confirms its session is still live,
// so a revoked session fails even before the JWT expires.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*Identity, error) {
	identity, err := s.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}

	_, err = s.sessionRepo.GetByID(ctx, identity.SessionID)
	if err == repositories.ErrNotFound {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return identity, nil
}

func (s *AuthService) Logout(ctx context.Context, identity *Identity) error {
	err := s.sessionRepo.Delete(ctx, identity.SessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *AuthService) LogoutAll(ctx context.Context, identity *Identity) error {
	err := s.sessionRepo.DeleteAllForUser(ctx, identity.UserID)
	if err != nil {
		return fmt.Errorf("failed to logout all sessions: %w", err)
	}
	return nil
}
