package services

import (
	"errors"
	"sort"
	"strings"

	"DocRegistry/models"

	"gorm.io/gorm"
)

var (
	ErrNotAuthenticated   = errors.New("unauthorized: user not authenticated")
	ErrForbidden          = errors.New("forbidden: insufficient permissions")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrInvalidDocumentKind = models.ErrUnknownDocumentKind
	ErrSubjectRequired     = errors.New("subject is required")

	ErrEmailRequired      = errors.New("email is required")
	ErrEmailNotRegistered = errors.New("email not registered")
	ErrMissingResetFields = errors.New("email and new password are required")
	ErrResetTokenInvalid  = errors.New("reset link is invalid or expired")

	ErrInvalidRole    = errors.New("role must be admin or user")
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// ValidationError carries per-field messages for form re-rendering.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint")
}
