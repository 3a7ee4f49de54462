package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles a user can register as. The role is chosen at registration and never edited afterward.
const (
	RoleEmployer  = "EMPLOYER"
	RoleApplicant = "APPLICANT"
	RoleNone      = "NONE"
)

// EditableUserInfo is part of user that owner can edit
type EditableUserInfo struct {
	FirstName string `gorm:"type:text" json:"first_name"`
	LastName  string `gorm:"type:text" json:"last_name"`
	Email     string `gorm:"type:text" json:"email" binding:"omitempty,email"`
}

// User is the identity record shared by employers and applicants
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username string    `gorm:"type:text;uniqueIndex;not null" json:"username"`
	EditableUserInfo
	Password  string    `gorm:"type:text" json:"-"`
	GoogleID  string    `gorm:"type:text;index" json:"-"`
	Role      string    `gorm:"type:text;not null;<-:create" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// BeforeCreate assigns a fresh uuid when none was given
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
