package model

// File is a stored resume or logo. Content is kept in the row unless the blob
// lives in cloud storage, in which case StorageObjectName points at it.
type File struct {
	ID                int     `gorm:"primaryKey" json:"id"`
	Content           []byte  `json:"-"`
	Extension         string  `gorm:"type:text" json:"extension"`
	StorageObjectName *string `gorm:"type:text" json:"-"`
}
