package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Managers approve events and see every pending submission;
// default users only see their own pending events.
const (
	RoleDefault = "default"
	RoleManager = "manager"
)

// User represents the user model stored in the database
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	SubjectID string         `json:"-" gorm:"type:varchar(100);uniqueIndex"`
	Name      string         `json:"name" gorm:"type:varchar(100)"`
	Email     string         `json:"email" gorm:"type:varchar(100)"`
	Role      string         `json:"role" gorm:"type:varchar(20);default:default"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// IsManager reports whether the user holds the manager role.
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	return role == RoleDefault || role == RoleManager
}
