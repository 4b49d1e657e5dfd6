package models

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is a staff account. Password holds whatever the configured password
// scheme produced: the verbatim secret, or a bcrypt hash.
type User struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"column:nombre;type:varchar(100);not null"`
	Email    string `gorm:"type:varchar(150);uniqueIndex;not null"`
	Password string `gorm:"type:varchar(150);not null"`
	Role     Role   `gorm:"column:rol;type:varchar(20);not null"`
}

func (User) TableName() string {
	return "usuarios"
}

// --- Helper Methods ---

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}
