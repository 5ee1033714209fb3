package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                  uuid.UUID  `json:"id"`
	Username            string     `json:"username"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"`
	VerifyCode          *string    `json:"-"`
	VerifyCodeExpiresAt *time.Time `json:"-"`
	Verified            bool       `json:"verified"`
	AcceptingMessages   bool       `json:"accepting_messages"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
