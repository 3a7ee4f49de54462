package model

import "time"

// Job types
const (
	JobTypeFullTime   = "FULL_TIME"
	JobTypePartTime   = "PART_TIME"
	JobTypeContract   = "CONTRACT"
	JobTypeInternship = "INTERNSHIP"
)

// Job statuses
const (
	JobStatusDraft     = "DRAFT"
	JobStatusPublished = "PUBLISHED"
	JobStatusClosed    = "CLOSED"
)

// EditableJobInfo is part of job that the owning employer can write
type EditableJobInfo struct {
	Title        string     `gorm:"type:text;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	Requirements *string    `gorm:"type:text" json:"requirements"`
	Location     string     `gorm:"type:text;index" json:"location"`
	SalaryMin    float64    `gorm:"type:numeric(12,2)" json:"salary_min" binding:"gte=0"`
	SalaryMax    *float64   `gorm:"type:numeric(12,2)" json:"salary_max" binding:"omitempty,gte=0"`
	JobType      string     `gorm:"type:text;not null;default:'FULL_TIME'" json:"job_type" binding:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	Status       string     `gorm:"type:text;not null;default:'DRAFT';index" json:"status" binding:"omitempty,oneof=DRAFT PUBLISHED CLOSED"`
	Deadline     *Date      `gorm:"type:date" json:"deadline,omitempty"`
}

// Job is gorm model for job listing posted by an employer
type Job struct {
	ID         uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployerID uint     `gorm:"not null;index;<-:create" json:"employer"`
	Employer   Employer `gorm:"foreignKey:EmployerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	EditableJobInfo
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
