package services

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrMessageNotFound = errors.New("message not found or already deleted")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUsernameTaken   = errors.New("username already exists")
	ErrEmailTaken      = errors.New("email already exists")
	ErrCodeExpired     = errors.New("verification code expired")
	ErrInvalidCode     = errors.New("invalid verification code")
	ErrNotAccepting    = errors.New("user is not accepting messages")
	ErrInvalidContent  = errors.New("message content must be between 1 and 1000 characters")
	ErrUpdateFailed    = errors.New("failed to update user")
	ErrEmailDelivery   = errors.New("failed to send verification email")
)
