package models

import (
	"strings"
	"time"
)

const PasswordResetTokenTTL = time.Hour

// PasswordReset is a pending reset link. The row is deleted when redeemed;
// expired rows are inert and stay until overwritten.
type PasswordReset struct {
	Token     string    `gorm:"primaryKey;type:varchar(255)"`
	Email     string    `gorm:"type:varchar(150);not null"`
	ExpiresAt time.Time `gorm:"not null"`
}

func (PasswordReset) TableName() string {
	return "password_resets"
}

func (t PasswordReset) IsExpired(reference time.Time) bool {
	if reference.IsZero() {
		reference = time.Now()
	}
	return !reference.Before(t.ExpiresAt)
}

// Matches reports whether the token may be redeemed for email at reference.
func (t PasswordReset) Matches(email string, reference time.Time) bool {
	return strings.EqualFold(t.Email, strings.TrimSpace(email)) && !t.IsExpired(reference)
}
