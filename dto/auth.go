package dto

import "strings"

type LoginRequest struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type PasswordResetRequest struct {
	Email string `form:"email"`
}

func (r *PasswordResetRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// PasswordResetSubmission is the confirm form posted to the tokenized link.
type PasswordResetSubmission struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (r *PasswordResetSubmission) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// Complete reports whether both required fields were supplied.
func (r *PasswordResetSubmission) Complete() bool {
	return r.Email != "" && r.Password != ""
}
