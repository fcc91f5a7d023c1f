package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account roles. Unauthenticated callers have no role at all.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	ID        string  `gorm:"primaryKey;type:uuid" json:"id"`
	Email     string  `gorm:"uniqueIndex;not null" json:"email"`
	Username  *string `gorm:"uniqueIndex" json:"username,omitempty"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Role      string  `gorm:"default:'user';not null" json:"role"`
	Bio       string  `gorm:"type:text" json:"bio"`

	// bcrypt hash of the pending confirmation code; nil once the code has
	// been exchanged (codes are single-use).
	ConfirmationCode *string `gorm:"column:confirmation_code_hash" json:"-"`
	IsActive         bool    `gorm:"default:false;not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

// DisplayName is what review/comment responses show as the author:
// the username when one is set, the email otherwise.
func (user *User) DisplayName() string {
	if user.Username != nil && *user.Username != "" {
		return *user.Username
	}
	return user.Email
}

func (User) TableName() string {
	return "users"
}
