package policy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"JobBoard-backend/internal/apperror"
	"JobBoard-backend/internal/database"
	"JobBoard-backend/internal/model"
	"JobBoard-backend/internal/utilities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const alreadyAppliedMessage = "You have already applied for this job"

var applicationStatuses = []string{
	model.ApplicationStatusPending,
	model.ApplicationStatusReviewed,
	model.ApplicationStatusShortlisted,
	model.ApplicationStatusRejected,
	model.ApplicationStatusAccepted,
}

// ApplicationInput is what an applicant submits. Resume, when set, is a new file not yet stored;
// otherwise the applicant profile's resume is attached.
type ApplicationInput struct {
	CoverLetter string
	Resume      *model.File
}

// ScopeApplications limits an application query to what viewer may see.
// Employers see applications to their jobs, applicants see their own, everyone else sees nothing.
func ScopeApplications(viewer Identity) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case viewer.Employer != nil:
			return db.Joins("JOIN jobs ON jobs.id = applications.job_id").
				Where("jobs.employer_id = ?", viewer.Employer.ID)
		case viewer.Applicant != nil && viewer.User != nil:
			return db.Where("applications.applicant_id = ?", viewer.User.ID)
		default:
			return db.Where("1 = 0")
		}
	}
}

// ListApplications returns viewer's applications, newest first, optionally for one job only
func (p *Policy) ListApplications(ctx context.Context, viewer Identity, jobID *uint) ([]model.Application, error) {
	applications := []model.Application{}

	q := p.DB.WithContext(ctx).Model(&model.Application{}).Scopes(ScopeApplications(viewer))
	if jobID != nil {
		q = q.Where("applications.job_id = ?", *jobID)
	}

	if err := q.Order("applications.applied_at DESC").Order("applications.id DESC").Find(&applications).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch applications: %w", err)
	}
	return applications, nil
}

// GetApplication returns one application of a job if viewer may see it
func (p *Policy) GetApplication(ctx context.Context, viewer Identity, jobID uint, id uint) (model.Application, error) {
	var application model.Application
	err := p.DB.WithContext(ctx).
		Scopes(ScopeApplications(viewer)).
		Where("applications.job_id = ?", jobID).
		First(&application, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return application, apperror.NotFound("Application not found")
	}
	if err != nil {
		return application, fmt.Errorf("failed to retrieve application: %w", err)
	}
	return application, nil
}

// CanApply runs every gate of createApplication short of inserting, in order.
// It returns the job that would be applied to.
func (p *Policy) CanApply(ctx context.Context, applicant Identity, jobID uint) (model.Job, error) {
	var job model.Job

	if applicant.Employer != nil {
		return job, apperror.Denied("Employers cannot apply to job listings")
	}
	if applicant.Applicant == nil || applicant.User == nil {
		return job, apperror.Denied("Only applicants can apply to job listings")
	}

	err := p.DB.WithContext(ctx).First(&job, jobID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return job, apperror.NotFound("Job not found")
	}
	if err != nil {
		return job, fmt.Errorf("failed to retrieve job: %w", err)
	}

	if job.Status != model.JobStatusPublished {
		return job, apperror.Denied("This job is not accepting applications")
	}
	if job.Deadline != nil && job.Deadline.BeforeDay(p.Now()) {
		return job, apperror.Denied("The application deadline has passed")
	}

	var existing int64
	if err := p.DB.WithContext(ctx).Model(&model.Application{}).
		Where("job_id = ? AND applicant_id = ?", job.ID, applicant.User.ID).
		Count(&existing).Error; err != nil {
		return job, fmt.Errorf("failed to check existing application: %w", err)
	}
	if existing > 0 {
		return job, apperror.Denied(alreadyAppliedMessage)
	}

	return job, nil
}

// CreateApplication submits a PENDING application for applicant.
// The existence check in CanApply is advisory; the store's unique index settles races with a Conflict.
func (p *Policy) CreateApplication(ctx context.Context, applicant Identity, jobID uint, in ApplicationInput) (model.Application, error) {
	var application model.Application

	job, err := p.CanApply(ctx, applicant, jobID)
	if err != nil {
		return application, err
	}

	if in.Resume == nil && applicant.Applicant.ResumeID == nil {
		return application, apperror.Validation("A resume is required: upload one or add it to your applicant profile")
	}

	err = p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		resumeID := applicant.Applicant.ResumeID
		if in.Resume != nil {
			if err := tx.Create(in.Resume).Error; err != nil {
				return fmt.Errorf("failed to store resume: %w", err)
			}
			resumeID = &in.Resume.ID
		}

		application = model.Application{
			JobID:       job.ID,
			ApplicantID: applicant.User.ID,
			ResumeID:    resumeID,
			EditableApplicationInfo: model.EditableApplicationInfo{
				CoverLetter: in.CoverLetter,
				Status:      model.ApplicationStatusPending,
			},
		}
		return tx.Omit(clause.Associations).Create(&application).Error
	})

	if database.IsUniqueViolation(err) {
		return model.Application{}, apperror.Conflict(alreadyAppliedMessage)
	}
	if err != nil {
		return model.Application{}, fmt.Errorf("failed to create application: %w", err)
	}
	return application, nil
}

// UpdateApplication lets the employer owning the job change status or cover letter
func (p *Policy) UpdateApplication(ctx context.Context, actor Identity, jobID uint, id uint, patch model.EditableApplicationInfo) (model.Application, error) {
	application, err := p.managedApplication(ctx, actor, jobID, id)
	if err != nil {
		return application, err
	}

	if patch.Status != "" {
		if !utilities.Contains(applicationStatuses, patch.Status) {
			return application, apperror.Validation(fmt.Sprintf("status must be one of [%s]", strings.Join(applicationStatuses, " ")))
		}
		application.Status = patch.Status
	}
	if patch.CoverLetter != "" {
		application.CoverLetter = patch.CoverLetter
	}

	if err := p.DB.WithContext(ctx).Omit(clause.Associations).Save(&application).Error; err != nil {
		return application, fmt.Errorf("failed to update application: %w", err)
	}
	return application, nil
}

// DeleteApplication removes an application; only the employer owning the job may do so
func (p *Policy) DeleteApplication(ctx context.Context, actor Identity, jobID uint, id uint) error {
	application, err := p.managedApplication(ctx, actor, jobID, id)
	if err != nil {
		return err
	}

	if err := p.DB.WithContext(ctx).Delete(&application).Error; err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	return nil
}

// managedApplication loads an application of a job regardless of scope, then checks that actor owns the job
func (p *Policy) managedApplication(ctx context.Context, actor Identity, jobID uint, id uint) (model.Application, error) {
	var application model.Application
	err := p.DB.WithContext(ctx).Preload("Job").
		Where("job_id = ?", jobID).
		First(&application, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return application, apperror.NotFound("Application not found")
	}
	if err != nil {
		return application, fmt.Errorf("failed to retrieve application: %w", err)
	}

	if actor.Employer == nil {
		return application, apperror.Denied("Only employers can update application status")
	}
	if application.Job.EmployerID != actor.Employer.ID {
		return application, apperror.Denied("You can only update applications for your own jobs")
	}
	return application, nil
}
