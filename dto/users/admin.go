package users

import (
	"strings"

	"DocRegistry/models"
)

// AdminUserForm is the create/edit form of the user admin pages. On edit an
// empty Password keeps the stored one.
type AdminUserForm struct {
	Name     string      `form:"name"`
	Email    string      `form:"email"`
	Password string      `form:"password"`
	Role     models.Role `form:"role"`
}

func (r *AdminUserForm) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = models.Role(strings.ToLower(strings.TrimSpace(string(r.Role))))
	if r.Role == "" {
		r.Role = models.RoleUser
	}
}

func (r *AdminUserForm) Validate(creating bool) map[string]string {
	errors := make(map[string]string)

	if r.Name == "" {
		errors["name"] = "name is required"
	}
	if r.Email == "" {
		errors["email"] = "email is required"
	}
	if creating && r.Password == "" {
		errors["password"] = "password is required"
	}
	if !r.Role.IsValid() {
		errors["role"] = "role must be admin or user"
	}

	return errors
}

func (r *AdminUserForm) ToModel() models.User {
	return models.User{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
	}
}

// FromModel prefills the edit form. The stored password is never echoed.
func FromModel(u models.User) AdminUserForm {
	return AdminUserForm{Name: u.Name, Email: u.Email, Role: u.Role}
}

// UserRow is one line of the admin user table.
type UserRow struct {
	ID    uint
	Name  string
	Email string
	Role  models.Role
}

func NewUserRows(users []models.User) []UserRow {
	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, UserRow{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
	}
	return rows
}
