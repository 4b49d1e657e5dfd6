package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"DocRegistry/models"
	"DocRegistry/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const resetTokenBytes = 32

// ResetTicket is the outcome of a reset request. DeliveryErr is set when the
// token was stored but the mail could not be handed off; the token stays valid.
type ResetTicket struct {
	Token       string
	Email       string
	ResetURL    string
	ExpiresAt   time.Time
	DeliveryErr error
}

type PasswordResetService struct {
	db        *gorm.DB
	notifier  Notifier
	passwords PasswordPolicy
	baseURL   string
	now       func() time.Time
}

func NewPasswordResetService(db *gorm.DB, notifier Notifier, passwords PasswordPolicy, baseURL string, opts ...Option) *PasswordResetService {
	o := applyOptions(opts)
	return &PasswordResetService{
		db:        db,
		notifier:  notifier,
		passwords: passwords,
		baseURL:   baseURL,
		now:       o.now,
	}
}

// Request issues a token for a registered email and mails the reset link.
func (s *PasswordResetService) Request(ctx context.Context, email string) (*ResetTicket, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("LOWER(email) = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if count == 0 {
		return nil, ErrEmailNotRegistered
	}

	token, err := generateResetToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	row := models.PasswordReset{
		Token:     token,
		Email:     email,
		ExpiresAt: s.now().UTC().Add(models.PasswordResetTokenTTL),
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "expires_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("store reset token: %w", err)
	}

	ticket := &ResetTicket{
		Token:     token,
		Email:     email,
		ResetURL:  ResetURL(s.baseURL, token),
		ExpiresAt: row.ExpiresAt,
	}

	if err := s.notifier.SendPasswordReset(ctx, email, ticket.ResetURL); err != nil {
		utils.LoggerFromContext(ctx).Error("password reset mail failed", "email", email, "error", err)
		ticket.DeliveryErr = err
	}

	return ticket, nil
}

// Redeem sets a new password for the token's account and deletes the token,
// both in one transaction. Every rejection is ErrResetTokenInvalid so callers
// cannot tell which check failed.
func (s *PasswordResetService) Redeem(ctx context.Context, token, email, newPassword string) error {
	email = normalizeEmail(email)
	if email == "" || newPassword == "" {
		return ErrMissingResetFields
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return ErrResetTokenInvalid
	}

	encoded, err := s.passwords.Encode(newPassword)
	if err != nil {
		return fmt.Errorf("encode password: %w", err)
	}

	now := s.now().UTC()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.PasswordReset
		if err := tx.Where("token = ?", token).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrResetTokenInvalid
			}
			return fmt.Errorf("load reset token: %w", err)
		}

		// MySQL's default collation matches tokens case-insensitively.
		if row.Token != token || !row.Matches(email, now) {
			return ErrResetTokenInvalid
		}

		if err := tx.Model(&models.User{}).Where("LOWER(email) = ?", email).Update("password", encoded).Error; err != nil {
			return fmt.Errorf("update password: %w", err)
		}

		res := tx.Where("token = ?", token).Delete(&models.PasswordReset{})
		if res.Error != nil {
			return fmt.Errorf("delete reset token: %w", res.Error)
		}
		// A concurrent redemption already consumed it.
		if res.RowsAffected == 0 {
			return ErrResetTokenInvalid
		}
		return nil
	})
}

// ResetURL builds the absolute confirm link for token.
func ResetURL(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/password-reset/confirm/" + url.PathEscape(token)
}

func generateResetToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
