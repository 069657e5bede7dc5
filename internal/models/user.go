package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the single enumerated role type; all privilege checks go through
// its methods instead of comparing raw strings at call sites.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

func (r Role) IsAdmin() bool     { return r == RoleAdmin }
func (r Role) IsModerator() bool { return r == RoleModerator }

type User struct {
	ID               string     `gorm:"primaryKey;type:uuid" json:"id"`
	Username         string     `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email            string     `gorm:"size:254;uniqueIndex;not null" json:"email"`
	FirstName        *string    `gorm:"size:150" json:"first_name,omitempty"`
	LastName         *string    `gorm:"size:150" json:"last_name,omitempty"`
	Bio              *string    `gorm:"type:text" json:"bio,omitempty"`
	Role             Role       `gorm:"size:20;default:'user';not null" json:"role"`
	IsStaff          bool       `gorm:"default:false;not null" json:"-"`
	ConfirmationCode *string    `gorm:"size:12" json:"-"`
	PasswordHash     *string    `gorm:"size:255" json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	LastLogin        *time.Time `json:"last_login,omitempty"`
}

// BeforeCreate sets the UUID primary key when absent.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

func (User) TableName() string {
	return "users"
}

// CanModerate is the centralized authorization check for mutating someone
// else's review or comment: the resource author, a moderator, an admin or a
// staff account may do it.
func (u *User) CanModerate(authorID string) bool {
	if u == nil {
		return false
	}
	return u.ID == authorID || u.Role.IsAdmin() || u.Role.IsModerator() || u.IsStaff
}

// HasAdminAccess gates the admin-only surface.
func (u *User) HasAdminAccess() bool {
	if u == nil {
		return false
	}
	return u.Role.IsAdmin() || u.IsStaff
}
