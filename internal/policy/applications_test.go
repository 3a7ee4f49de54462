package policy

import (
	"context"
	"sync"
	"testing"
	"time"

	"JobBoard-backend/internal/apperror"
	"JobBoard-backend/internal/database"
	"JobBoard-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanApply_GatesInOrder(t *testing.T) {
	ctx := context.Background()
	yesterday := model.NewDate(time.Now().AddDate(0, 0, -1))
	draft := seedJob(t, database.TestEmployer1, model.JobStatusDraft, nil)
	closed := seedJob(t, database.TestEmployer1, model.JobStatusClosed, nil)
	expired := seedJob(t, database.TestEmployer1, model.JobStatusPublished, &yesterday)

	cases := []struct {
		name    string
		who     Identity
		jobID   uint
		kind    error
		message string
	}{
		{"employer on draft job", employer1(t), draft.ID, apperror.ErrPermissionDenied, "Employers cannot apply to job listings"},
		{"employer on missing job", employer2(t), 999999, apperror.ErrPermissionDenied, "Employers cannot apply to job listings"},
		{"no applicant profile", resolve(t, database.TestUserNoProfile), draft.ID, apperror.ErrPermissionDenied, "Only applicants can apply to job listings"},
		{"anonymous", Anonymous(), draft.ID, apperror.ErrPermissionDenied, "Only applicants can apply to job listings"},
		{"missing job", applicant1(t), 999999, apperror.ErrNotFound, "Job not found"},
		{"draft job", applicant1(t), draft.ID, apperror.ErrPermissionDenied, "This job is not accepting applications"},
		{"closed job", applicant1(t), closed.ID, apperror.ErrPermissionDenied, "This job is not accepting applications"},
		{"deadline passed", applicant1(t), expired.ID, apperror.ErrPermissionDenied, "The application deadline has passed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := testPolicy.CanApply(ctx, tc.who, tc.jobID)
			assertKind(t, err, tc.kind)
			assert.EqualError(t, err, tc.message)
		})
	}
}

func TestCreateApplication_DeadlineBoundary(t *testing.T) {
	fixed := time.Date(2031, 2, 1, 9, 0, 0, 0, time.UTC)
	p := &Policy{DB: testDB, Now: func() time.Time { return fixed }}
	ctx := context.Background()

	today := model.NewDate(fixed)
	dueToday := seedJob(t, database.TestEmployer2, model.JobStatusPublished, &today)
	noDeadline := seedJob(t, database.TestEmployer2, model.JobStatusPublished, nil)

	app, err := p.CreateApplication(ctx, applicant1(t), dueToday.ID, ApplicationInput{CoverLetter: "on time"})
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusPending, app.Status)

	_, err = p.CreateApplication(ctx, applicant1(t), noDeadline.ID, ApplicationInput{})
	require.NoError(t, err)

	late := &Policy{DB: testDB, Now: func() time.Time { return fixed.AddDate(0, 0, 1) }}
	_, err = late.CreateApplication(ctx, applicant2(t), dueToday.ID, ApplicationInput{Resume: &model.File{Content: []byte("cv"), Extension: ".pdf"}})
	assertKind(t, err, apperror.ErrPermissionDenied)
	assert.EqualError(t, err, "The application deadline has passed")
}

func TestCreateApplication_Resume(t *testing.T) {
	ctx := context.Background()
	job := seedJob(t, database.TestEmployer2, model.JobStatusPublished, nil)

	// applicant2 has no stored resume
	_, err := testPolicy.CreateApplication(ctx, applicant2(t), job.ID, ApplicationInput{CoverLetter: "hi"})
	assertKind(t, err, apperror.ErrValidation)

	upload := &model.File{Content: []byte("%PDF fresh"), Extension: ".pdf"}
	app, err := testPolicy.CreateApplication(ctx, applicant2(t), job.ID, ApplicationInput{CoverLetter: "hi", Resume: upload})
	require.NoError(t, err)
	require.NotNil(t, app.ResumeID)
	assert.Equal(t, upload.ID, *app.ResumeID)

	// applicant1 falls back to the profile resume
	fallback, err := testPolicy.CreateApplication(ctx, applicant1(t), job.ID, ApplicationInput{})
	require.NoError(t, err)
	require.NotNil(t, fallback.ResumeID)
	assert.Equal(t, *database.TestApplicant1.ResumeID, *fallback.ResumeID)
}

func TestCreateApplication_Duplicate(t *testing.T) {
	ctx := context.Background()
	job := seedJob(t, database.TestEmployer1, model.JobStatusPublished, nil)

	_, err := testPolicy.CreateApplication(ctx, applicant1(t), job.ID, ApplicationInput{CoverLetter: "first"})
	require.NoError(t, err)

	_, err = testPolicy.CreateApplication(ctx, applicant1(t), job.ID, ApplicationInput{CoverLetter: "second"})
	assertKind(t, err, apperror.ErrPermissionDenied)
	assert.EqualError(t, err, "You have already applied for this job")
}

func TestCreateApplication_ConcurrentSubmissions(t *testing.T) {
	ctx := context.Background()
	job := seedJob(t, database.TestEmployer1, model.JobStatusPublished, nil)
	who := applicant1(t)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := testPolicy.CreateApplication(ctx, who, job.ID, ApplicationInput{CoverLetter: "race"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		status := apperror.MapErrorToStatus(err)
		assert.Contains(t, []int{403, 409}, status, "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)

	var stored int64
	require.NoError(t, testDB.Model(&model.Application{}).Where("job_id = ?", job.ID).Count(&stored).Error)
	assert.Equal(t, int64(1), stored)
}

func TestApplicationScopes(t *testing.T) {
	ctx := context.Background()
	job := seedJob(t, database.TestEmployer2, model.JobStatusPublished, nil)

	mine, err := testPolicy.CreateApplication(ctx, applicant1(t), job.ID, ApplicationInput{CoverLetter: "scoped"})
	require.NoError(t, err)

	owner, err := testPolicy.ListApplications(ctx, employer2(t), &job.ID)
	require.NoError(t, err)
	require.Len(t, owner, 1)
	assert.Equal(t, mine.ID, owner[0].ID)

	other, err := testPolicy.ListApplications(ctx, employer1(t), &job.ID)
	require.NoError(t, err)
	assert.Empty(t, other)

	own, err := testPolicy.ListApplications(ctx, applicant1(t), nil)
	require.NoError(t, err)
	for _, a := range own {
		assert.Equal(t, database.TestUserApplicant1.ID, a.ApplicantID)
	}

	foreign, err := testPolicy.ListApplications(ctx, applicant2(t), &job.ID)
	require.NoError(t, err)
	assert.Empty(t, foreign)

	none, err := testPolicy.ListApplications(ctx, resolve(t, database.TestUserNoProfile), nil)
	require.NoError(t, err)
	assert.Empty(t, none)

	got, err := testPolicy.GetApplication(ctx, applicant1(t), job.ID, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, "scoped", got.CoverLetter)

	_, err = testPolicy.GetApplication(ctx, applicant2(t), job.ID, mine.ID)
	assertKind(t, err, apperror.ErrNotFound)

	_, err = testPolicy.GetApplication(ctx, employer2(t), job.ID+1000, mine.ID)
	assertKind(t, err, apperror.ErrNotFound)
}

func TestUpdateAndDeleteApplication(t *testing.T) {
	ctx := context.Background()
	job := seedJob(t, database.TestEmployer1, model.JobStatusPublished, nil)
	app, err := testPolicy.CreateApplication(ctx, applicant1(t), job.ID, ApplicationInput{CoverLetter: "hello"})
	require.NoError(t, err)

	_, err = testPolicy.UpdateApplication(ctx, employer1(t), job.ID, 999999, model.EditableApplicationInfo{Status: model.ApplicationStatusReviewed})
	assertKind(t, err, apperror.ErrNotFound)

	_, err = testPolicy.UpdateApplication(ctx, applicant1(t), job.ID, app.ID, model.EditableApplicationInfo{Status: model.ApplicationStatusAccepted})
	assertKind(t, err, apperror.ErrPermissionDenied)
	assert.EqualError(t, err, "Only employers can update application status")

	_, err = testPolicy.UpdateApplication(ctx, employer2(t), job.ID, app.ID, model.EditableApplicationInfo{Status: model.ApplicationStatusAccepted})
	assertKind(t, err, apperror.ErrPermissionDenied)
	assert.EqualError(t, err, "You can only update applications for your own jobs")

	_, err = testPolicy.UpdateApplication(ctx, employer1(t), job.ID, app.ID, model.EditableApplicationInfo{Status: "HIRED"})
	assertKind(t, err, apperror.ErrValidation)

	updated, err := testPolicy.UpdateApplication(ctx, employer1(t), job.ID, app.ID, model.EditableApplicationInfo{Status: model.ApplicationStatusReviewed})
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusReviewed, updated.Status)
	assert.Equal(t, "hello", updated.CoverLetter)

	err = testPolicy.DeleteApplication(ctx, applicant1(t), job.ID, app.ID)
	assertKind(t, err, apperror.ErrPermissionDenied)

	require.NoError(t, testPolicy.DeleteApplication(ctx, employer1(t), job.ID, app.ID))

	_, err = testPolicy.GetApplication(ctx, employer1(t), job.ID, app.ID)
	assertKind(t, err, apperror.ErrNotFound)
}

// Employer publishes a draft, applicant applies once, employer shortlists, an unrelated applicant is refused.
func TestJobLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	e := employer1(t)
	a := applicant1(t)
	b := applicant2(t)

	job, err := testPolicy.CreateJob(ctx, e, model.EditableJobInfo{Title: "Scenario role", Description: "d", Location: "Scenario City"})
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusDraft, job.Status)
	assert.Nil(t, job.Deadline)

	listed, err := testPolicy.ListJobs(ctx, Anonymous(), JobFilter{Location: "Scenario City"})
	require.NoError(t, err)
	assert.Empty(t, listed)

	_, err = testPolicy.UpdateJob(ctx, e, job.ID, model.EditableJobInfo{Status: model.JobStatusPublished})
	require.NoError(t, err)

	listed, err = testPolicy.ListJobs(ctx, Anonymous(), JobFilter{Location: "Scenario City"})
	require.NoError(t, err)
	assert.Equal(t, []uint{job.ID}, jobIDs(listed))

	app, err := testPolicy.CreateApplication(ctx, a, job.ID, ApplicationInput{CoverLetter: "Please hire me"})
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusPending, app.Status)
	assert.False(t, app.AppliedAt.IsZero())

	_, err = testPolicy.CreateApplication(ctx, a, job.ID, ApplicationInput{CoverLetter: "Again"})
	assertKind(t, err, apperror.ErrPermissionDenied)
	assert.Contains(t, err.Error(), "already applied")

	shortlisted, err := testPolicy.UpdateApplication(ctx, e, job.ID, app.ID, model.EditableApplicationInfo{Status: model.ApplicationStatusShortlisted})
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusShortlisted, shortlisted.Status)

	_, err = testPolicy.UpdateApplication(ctx, b, job.ID, app.ID, model.EditableApplicationInfo{Status: model.ApplicationStatusRejected})
	assertKind(t, err, apperror.ErrPermissionDenied)
}
