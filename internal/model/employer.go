package model

import "github.com/google/uuid"

// EditableEmployerInfo is part of employer profile that owner can edit
type EditableEmployerInfo struct {
	CompanyName string  `gorm:"type:text" json:"company_name"`
	Website     *string `gorm:"type:text" json:"website" binding:"omitempty,url"`
	Description *string `gorm:"type:text" json:"description"`
	Location    *string `gorm:"type:text" json:"location"`
}

// Employer is the profile of a user that posts jobs
type Employer struct {
	ID     uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;<-:create" json:"user"`
	User   User      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	EditableEmployerInfo
	LogoID *int  `json:"logo"`
	Logo   *File `gorm:"foreignKey:LogoID;references:ID;constraint:OnDelete:SET NULL" json:"-"`
}
