package services

import "DocRegistry/models"

// Identity is the caller established at login and carried by the session.
// The zero value is an anonymous caller.
type Identity struct {
	UserID uint
	Name   string
	Role   models.Role
}

// LoggedIn reports whether a login established this identity.
func (i Identity) LoggedIn() bool {
	return i.UserID != 0
}

// IsAdmin reports whether the caller is logged in with the admin role.
func (i Identity) IsAdmin() bool {
	return i.LoggedIn() && i.Role == models.RoleAdmin
}

// CanCreateDocuments holds for logged-in callers with either defined role.
func (i Identity) CanCreateDocuments() bool {
	return i.LoggedIn() && (i.Role == models.RoleUser || i.Role == models.RoleAdmin)
}

func (i Identity) RequireLogin() error {
	if !i.LoggedIn() {
		return ErrNotAuthenticated
	}
	return nil
}

func (i Identity) RequireAdmin() error {
	if err := i.RequireLogin(); err != nil {
		return err
	}
	if !i.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
