package services

import (
	"context"
	"errors"
	"fmt"

	"DocRegistry/models"

	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	passwords PasswordPolicy
}

func NewAuthService(db *gorm.DB, passwords PasswordPolicy) *AuthService {
	return &AuthService{db: db, passwords: passwords}
}

// Login resolves the account by case-insensitive email and checks the
// password. Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (Identity, error) {
	email = normalizeEmail(email)
	if email == "" {
		return Identity{}, ErrInvalidCredentials
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("LOWER(email) = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, fmt.Errorf("lookup user: %w", err)
	}

	if !s.passwords.Matches(user.Password, password) {
		return Identity{}, ErrInvalidCredentials
	}

	return Identity{UserID: user.ID, Name: user.Name, Role: user.Role}, nil
}
