package models

import "time"

// User roles. Role changes are restricted to admins; see internal/policy.
const (
	RoleAdmin     = "Admin"
	RoleManager   = "Manager"
	RoleDeveloper = "Developer"
)

// User represents a registered account. The password digest is never
// serialized.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:50;default:Developer" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// IsValidUserRole reports whether role is one of the enumerated user roles.
func IsValidUserRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleDeveloper:
		return true
	}
	return false
}
