package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"DocRegistry/models"

	"gorm.io/gorm"
)

// UserService is the credential store. Route gates restrict it to admins;
// the console utility uses it directly.
type UserService struct {
	db        *gorm.DB
	passwords PasswordPolicy
}

func NewUserService(db *gorm.DB, passwords PasswordPolicy) *UserService {
	return &UserService{db: db, passwords: passwords}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user %d: %w", id, err)
	}
	return &user, nil
}

// Create stores a new account. The password goes through the configured
// policy; under the plain scheme it is stored verbatim.
func (s *UserService) Create(ctx context.Context, user models.User) (*models.User, error) {
	normalizeUser(&user)
	if err := validateUser(user, true); err != nil {
		return nil, err
	}

	encoded, err := s.passwords.Encode(user.Password)
	if err != nil {
		return nil, fmt.Errorf("encode password: %w", err)
	}
	user.Password = encoded

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isDuplicateError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Update rewrites name, email and role. The password changes only when
// changes.Password is non-empty.
func (s *UserService) Update(ctx context.Context, id uint, changes models.User) (*models.User, error) {
	normalizeUser(&changes)
	if err := validateUser(changes, false); err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"nombre": changes.Name,
		"email":  changes.Email,
		"rol":    changes.Role,
	}
	if changes.Password != "" {
		encoded, err := s.passwords.Encode(changes.Password)
		if err != nil {
			return nil, fmt.Errorf("encode password: %w", err)
		}
		updates["password"] = encoded
	}

	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		if isDuplicateError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	return s.Get(ctx, id)
}

// Delete removes the account; its documents go with it through the
// cascading foreign keys.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

func normalizeUser(u *models.User) {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = normalizeEmail(u.Email)
	if u.Role == "" {
		u.Role = models.RoleUser
	}
}

func validateUser(u models.User, requirePassword bool) error {
	fields := make(map[string]string)
	if u.Name == "" {
		fields["name"] = "Name is required"
	}
	if u.Email == "" {
		fields["email"] = ErrEmailRequired.Error()
	}
	if requirePassword && u.Password == "" {
		fields["password"] = "Password is required"
	}
	if !u.Role.IsValid() {
		fields["role"] = ErrInvalidRole.Error()
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
