package policy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"JobBoard-backend/internal/apperror"
	"JobBoard-backend/internal/model"
	"JobBoard-backend/internal/utilities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	jobTypes    = []string{model.JobTypeFullTime, model.JobTypePartTime, model.JobTypeContract, model.JobTypeInternship}
	jobStatuses = []string{model.JobStatusDraft, model.JobStatusPublished, model.JobStatusClosed}
)

// JobFilter narrows a job listing. Empty fields do not filter.
type JobFilter struct {
	JobType  string
	Location string
}

// ScopeJobs limits a job query to what viewer may see: published jobs, plus all of an employer's own jobs.
func ScopeJobs(viewer Identity) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if viewer.Employer != nil {
			return db.Where("(jobs.status = ? OR jobs.employer_id = ?)", model.JobStatusPublished, viewer.Employer.ID)
		}
		return db.Where("jobs.status = ?", model.JobStatusPublished)
	}
}

// OpenJobs keeps jobs without a deadline or whose deadline is today or later
func OpenJobs(today model.Date) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("(jobs.deadline IS NULL OR jobs.deadline >= ?)", today)
	}
}

// listableJobs is what shows up in a listing: published jobs still open, plus an employer's own jobs in any state
func listableJobs(viewer Identity, today model.Date) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if viewer.Employer != nil {
			return db.Where(
				"((jobs.status = ? AND (jobs.deadline IS NULL OR jobs.deadline >= ?)) OR jobs.employer_id = ?)",
				model.JobStatusPublished, today, viewer.Employer.ID,
			)
		}
		return db.Scopes(ScopeJobs(viewer), OpenJobs(today))
	}
}

// ListJobs returns the jobs visible to viewer, newest first. Filters compose with AND.
func (p *Policy) ListJobs(ctx context.Context, viewer Identity, filter JobFilter) ([]model.Job, error) {
	jobs := []model.Job{}

	q := p.DB.WithContext(ctx).Model(&model.Job{}).Scopes(listableJobs(viewer, p.today()))
	if filter.JobType != "" {
		q = q.Where("jobs.job_type = ?", filter.JobType)
	}
	if filter.Location != "" {
		q = q.Where("jobs.location = ?", filter.Location)
	}

	if err := q.Order("jobs.created_at DESC").Order("jobs.id DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch jobs: %w", err)
	}
	return jobs, nil
}

// GetJob returns one job if viewer may see it. Hidden and missing jobs are both NotFound.
func (p *Policy) GetJob(ctx context.Context, viewer Identity, id uint) (model.Job, error) {
	var job model.Job
	err := p.DB.WithContext(ctx).Scopes(ScopeJobs(viewer)).First(&job, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return job, apperror.NotFound("Job not found")
	}
	if err != nil {
		return job, fmt.Errorf("failed to retrieve job: %w", err)
	}
	return job, nil
}

// CreateJob stores a new job owned by creator's employer profile
func (p *Policy) CreateJob(ctx context.Context, creator Identity, info model.EditableJobInfo) (model.Job, error) {
	if creator.Employer == nil {
		return model.Job{}, apperror.Denied("Only employer can create job listings")
	}

	if info.JobType == "" {
		info.JobType = model.JobTypeFullTime
	}
	if info.Status == "" {
		info.Status = model.JobStatusDraft
	}
	if err := validateJobInfo(&info); err != nil {
		return model.Job{}, err
	}

	job := model.Job{
		EmployerID:      creator.Employer.ID,
		EditableJobInfo: info,
	}
	if err := p.DB.WithContext(ctx).Omit(clause.Associations).Create(&job).Error; err != nil {
		return model.Job{}, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// ClearableJobFields are the optional job fields an update may set to zero or null
var ClearableJobFields = []string{"requirements", "salary_min", "salary_max", "deadline"}

// UpdateJob merges the non-empty fields of patch into a job owned by actor.
// Fields named in explicit (see ClearableJobFields) take patch's value even when it is zero or nil.
// Any status may be set; there is no transition ordering.
func (p *Policy) UpdateJob(ctx context.Context, actor Identity, id uint, patch model.EditableJobInfo, explicit ...string) (model.Job, error) {
	job, err := p.ownedJob(ctx, actor, id)
	if err != nil {
		return job, err
	}

	utilities.MergeNonEmpty(&job.EditableJobInfo, &patch)
	for _, field := range explicit {
		switch field {
		case "requirements":
			job.Requirements = patch.Requirements
		case "salary_min":
			job.SalaryMin = patch.SalaryMin
		case "salary_max":
			job.SalaryMax = patch.SalaryMax
		case "deadline":
			job.Deadline = patch.Deadline
		}
	}
	if err := validateJobInfo(&job.EditableJobInfo); err != nil {
		return job, err
	}

	if err := p.DB.WithContext(ctx).Omit(clause.Associations).Save(&job).Error; err != nil {
		return job, fmt.Errorf("failed to update job: %w", err)
	}
	return job, nil
}

// DeleteJob removes a job owned by actor together with its applications
func (p *Policy) DeleteJob(ctx context.Context, actor Identity, id uint) error {
	job, err := p.ownedJob(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := p.DB.WithContext(ctx).Delete(&job).Error; err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}

// ownedJob loads a job by id regardless of visibility, then checks that actor owns it
func (p *Policy) ownedJob(ctx context.Context, actor Identity, id uint) (model.Job, error) {
	var job model.Job
	err := p.DB.WithContext(ctx).First(&job, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return job, apperror.NotFound("Job not found")
	}
	if err != nil {
		return job, fmt.Errorf("failed to retrieve job: %w", err)
	}

	if actor.Employer == nil {
		return job, apperror.Denied("Only employer can modify job listings")
	}
	if job.EmployerID != actor.Employer.ID {
		return job, apperror.Denied("You can only modify your own job listings")
	}
	return job, nil
}

func validateJobInfo(info *model.EditableJobInfo) error {
	info.Title = strings.TrimSpace(info.Title)
	info.Location = strings.TrimSpace(info.Location)

	switch {
	case info.Title == "":
		return apperror.Validation("title is required")
	case strings.TrimSpace(info.Description) == "":
		return apperror.Validation("description is required")
	case info.Location == "":
		return apperror.Validation("location is required")
	case info.SalaryMin < 0:
		return apperror.Validation("salary_min must be greater than or equal to 0")
	case info.SalaryMax != nil && *info.SalaryMax < info.SalaryMin:
		return apperror.Validation("salary_max must be greater than or equal to salary_min")
	case !utilities.Contains(jobTypes, info.JobType):
		return apperror.Validation(fmt.Sprintf("job_type must be one of [%s]", strings.Join(jobTypes, " ")))
	case !utilities.Contains(jobStatuses, info.Status):
		return apperror.Validation(fmt.Sprintf("status must be one of [%s]", strings.Join(jobStatuses, " ")))
	}
	return nil
}
