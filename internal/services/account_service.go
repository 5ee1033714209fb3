package services

import (
	"context"
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/murmurapp/murmur/internal/email"
	"github.com/murmurapp/murmur/internal/models"
	"github.com/murmurapp/murmur/internal/repositories"
	"github.com/murmurapp/murmur/internal/utils"
)

const verifyCodeTTL = time.Hour

var usernameRegexp = regexp.MustCompile(`^[A-Za-z0-9_]{2,20}$`)

// AccountService owns signup, email verification and handle availability.
type AccountService struct {
	userRepo repositories.UserRepository
	sender   email.Sender
	logger   *zap.Logger
}

func NewAccountService(userRepo repositories.UserRepository, sender email.Sender, logger *zap.Logger) *AccountService {
	return &AccountService{
		userRepo: userRepo,
		sender:   sender,
		logger:   logger,
	}
}

func ValidateUsername(username string) error {
	if !usernameRegexp.MatchString(username) {
		return fmt.Errorf("%w: username must be 2-20 characters of letters, digits or underscore", ErrInvalidInput)
	}
	return nil
}

// SignUp registers a new account in the unverified state and emails it a
// verification code. A retry against an existing unverified email re-issues
// the code and replaces the credential hash in place.
func (s *AccountService) SignUp(ctx context.Context, username, emailAddr, password string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(emailAddr); err != nil {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	if len(password) < utils.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, utils.MinPasswordLength)
	}

	// A handle is only taken by a verified account; unverified holders do
	// not block signup.
	_, err := s.userRepo.GetVerifiedByUsername(ctx, username)
	if err == nil {
		return ErrUsernameTaken
	}
	if err != repositories.ErrNotFound {
		return fmt.Errorf("failed to check username: %w", err)
	}

	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(verifyCodeTTL)

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	existing, err := s.userRepo.GetByEmail(ctx, emailAddr)
	switch {
	case err == nil:
		if existing.Verified {
			return ErrEmailTaken
		}
		// Signup retry against an unverified account: fresh code and hash.
		err = s.userRepo.ReissueVerification(ctx, existing.ID, passwordHash, code, expiresAt)
		if err != nil {
			return fmt.Errorf("failed to reissue verification: %w", err)
		}
	case err == repositories.ErrNotFound:
		user := &models.User{
			Username:            username,
			Email:               emailAddr,
			PasswordHash:        passwordHash,
			VerifyCode:          &code,
			VerifyCodeExpiresAt: &expiresAt,
			Verified:            false,
			AcceptingMessages:   true,
		}
		err = s.userRepo.Create(ctx, user)
		if err == repositories.ErrConflict {
			return ErrEmailTaken
		}
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
	default:
		return fmt.Errorf("failed to check email: %w", err)
	}

	// The account row stays either way; a failed delivery is reported to the
	// caller so they can retry signup against the same email.
	if err := s.sender.SendVerificationEmail(ctx, emailAddr, username, code); err != nil {
		s.logger.Error("verification email failed", zap.String("username", username), zap.Error(err))
		return ErrEmailDelivery
	}

	return nil
}

// VerifyCode checks a submitted code against the stored one. Expiry is
// judged before code equality, so a stale code reports expiry even when it
// matches. On success the account is verified and the code is cleared.
func (s *AccountService) VerifyCode(ctx context.Context, rawUsername, code string) error {
	username, err := url.PathUnescape(rawUsername)
	if err != nil {
		return fmt.Errorf("%w: malformed username", ErrInvalidInput)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err == repositories.ErrNotFound {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.VerifyCodeExpiresAt != nil && !time.Now().Before(*user.VerifyCodeExpiresAt) {
		return ErrCodeExpired
	}
	if user.VerifyCode == nil || *user.VerifyCode != code {
		return ErrInvalidCode
	}

	err = s.userRepo.MarkVerified(ctx, user.ID)
	if err == repositories.ErrConflict {
		// Another signup verified this handle first.
		return ErrUsernameTaken
	}
	if err == repositories.ErrNotFound {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}

	s.logger.Info("user verified", zap.String("username", user.Username))
	return nil
}

// IsUsernameAvailable reports whether a verified account already holds the
// handle. Unverified holders do not count.
func (s *AccountService) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	if err := ValidateUsername(username); err != nil {
		return false, err
	}

	_, err := s.userRepo.GetVerifiedByUsername(ctx, username)
	if err == repositories.ErrNotFound {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return false, nil
}
