package policy

import (
	"context"
	"errors"
	"fmt"

	"JobBoard-backend/internal/apperror"
	"JobBoard-backend/internal/model"

	"gorm.io/gorm"
)

// GetFile returns a stored file if viewer may download it.
// Logos are public. A profile resume is readable by its applicant and by any employer.
// A resume attached to an application follows ScopeApplications.
// Everything else is NotFound, the same as a missing id.
func (p *Policy) GetFile(ctx context.Context, viewer Identity, id int) (model.File, error) {
	var file model.File
	err := p.DB.WithContext(ctx).First(&file, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return file, apperror.NotFound("File not found")
	}
	if err != nil {
		return file, fmt.Errorf("failed to retrieve file: %w", err)
	}

	for _, grant := range p.fileGrants(viewer, id) {
		var n int64
		if err := grant(p.DB.WithContext(ctx)).Count(&n).Error; err != nil {
			return model.File{}, fmt.Errorf("failed to check file access: %w", err)
		}
		if n > 0 {
			return file, nil
		}
	}
	return model.File{}, apperror.NotFound("File not found")
}

func (p *Policy) fileGrants(viewer Identity, id int) []func(*gorm.DB) *gorm.DB {
	grants := []func(*gorm.DB) *gorm.DB{
		func(db *gorm.DB) *gorm.DB {
			return db.Model(&model.Employer{}).Where("logo_id = ?", id)
		},
	}
	if viewer.Applicant != nil {
		grants = append(grants, func(db *gorm.DB) *gorm.DB {
			return db.Model(&model.Applicant{}).Where("id = ? AND resume_id = ?", viewer.Applicant.ID, id)
		})
	}
	if viewer.Employer != nil {
		grants = append(grants, func(db *gorm.DB) *gorm.DB {
			return db.Model(&model.Applicant{}).Where("resume_id = ?", id)
		})
	}
	if viewer.IsAuthenticated() {
		grants = append(grants, func(db *gorm.DB) *gorm.DB {
			return db.Model(&model.Application{}).
				Scopes(ScopeApplications(viewer)).
				Where("applications.resume_id = ?", id)
		})
	}
	return grants
}
