package model

import (
	"time"

	"github.com/google/uuid"
)

// Application statuses
const (
	// ApplicationStatusPending indicates that the application has not been looked at yet
	ApplicationStatusPending     = "PENDING"
	ApplicationStatusReviewed    = "REVIEWED"
	ApplicationStatusShortlisted = "SHORTLISTED"
	ApplicationStatusRejected    = "REJECTED"
	ApplicationStatusAccepted    = "ACCEPTED"
)

// EditableApplicationInfo is part of application that the owning employer can write
type EditableApplicationInfo struct {
	CoverLetter string `gorm:"type:text" json:"cover_letter"`
	Status      string `gorm:"type:text;not null;default:'PENDING'" json:"status" binding:"omitempty,oneof=PENDING REVIEWED SHORTLISTED REJECTED ACCEPTED"`
}

// Application represents a job application record.
// An applicant may apply to a given job at most once.
type Application struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	JobID uint `gorm:"not null;uniqueIndex:idx_applications_job_applicant;<-:create" json:"job"`
	Job   Job  `gorm:"foreignKey:JobID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	// ApplicantID references User.ID of the applicant
	ApplicantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_applicant;index;<-:create" json:"applicant"`
	Applicant   User      `gorm:"foreignKey:ApplicantID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	ResumeID *int  `json:"resume"`
	Resume   *File `gorm:"foreignKey:ResumeID;references:ID;constraint:OnDelete:SET NULL" json:"-"`

	EditableApplicationInfo
	AppliedAt time.Time `gorm:"autoCreateTime;index" json:"applied_at"`
}
