package model

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// EditableApplicantInfo is part of applicant profile that owner can edit
type EditableApplicantInfo struct {
	Skills     pq.StringArray `gorm:"type:text[]" json:"skills"`
	Experience *string        `gorm:"type:text" json:"experience"`
	Education  *string        `gorm:"type:text" json:"education"`
}

// Applicant is the profile of a user that applies to jobs
type Applicant struct {
	ID     uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;<-:create" json:"user"`
	User   User      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	EditableApplicantInfo
	ResumeID *int  `json:"resume"`
	Resume   *File `gorm:"foreignKey:ResumeID;references:ID;constraint:OnDelete:SET NULL" json:"-"`
}
