package policy

import (
	"context"
	"testing"
	"time"

	"JobBoard-backend/internal/apperror"
	"JobBoard-backend/internal/database"
	"JobBoard-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListJobs_AnonymousSeesOnlyOpenPublished(t *testing.T) {
	jobs, err := testPolicy.ListJobs(context.Background(), Anonymous(), JobFilter{})
	require.NoError(t, err)

	ids := jobIDs(jobs)
	assert.Contains(t, ids, database.TestJobPublished.ID)
	assert.Contains(t, ids, database.TestJobRemote.ID)
	assert.NotContains(t, ids, database.TestJobDraft.ID)
	assert.NotContains(t, ids, database.TestJobExpired.ID)
	assert.NotContains(t, ids, database.TestJobClosed.ID)

	for _, j := range jobs {
		assert.Equal(t, model.JobStatusPublished, j.Status)
	}
}

func TestListJobs_EmployerSeesOwnJobsInAnyState(t *testing.T) {
	jobs, err := testPolicy.ListJobs(context.Background(), employer1(t), JobFilter{})
	require.NoError(t, err)

	ids := jobIDs(jobs)
	assert.Contains(t, ids, database.TestJobDraft.ID)
	assert.Contains(t, ids, database.TestJobExpired.ID)
	assert.Contains(t, ids, database.TestJobRemote.ID)
	assert.NotContains(t, ids, database.TestJobClosed.ID, "another employer's closed job stays hidden")
}

func TestListJobs_NewestFirst(t *testing.T) {
	jobs, err := testPolicy.ListJobs(context.Background(), employer1(t), JobFilter{})
	require.NoError(t, err)

	for i := 1; i < len(jobs); i++ {
		assert.False(t, jobs[i].CreatedAt.After(jobs[i-1].CreatedAt))
	}
}

func TestListJobs_FiltersCompose(t *testing.T) {
	ctx := context.Background()

	both, err := testPolicy.ListJobs(ctx, Anonymous(), JobFilter{JobType: model.JobTypePartTime, Location: "Remote"})
	require.NoError(t, err)
	assert.Equal(t, []uint{database.TestJobRemote.ID}, jobIDs(both))

	mismatched, err := testPolicy.ListJobs(ctx, Anonymous(), JobFilter{JobType: model.JobTypeFullTime, Location: "Remote"})
	require.NoError(t, err)
	assert.Empty(t, mismatched, "location must not override job_type")

	byType, err := testPolicy.ListJobs(ctx, Anonymous(), JobFilter{JobType: model.JobTypeFullTime})
	require.NoError(t, err)
	for _, j := range byType {
		assert.Equal(t, model.JobTypeFullTime, j.JobType)
	}
}

func TestListJobs_DeadlineToday(t *testing.T) {
	fixed := time.Date(2030, 6, 15, 22, 0, 0, 0, time.UTC)
	p := &Policy{DB: testDB, Now: func() time.Time { return fixed }}

	today := model.NewDate(fixed)
	yesterday := model.NewDate(fixed.AddDate(0, 0, -1))
	dueToday := seedJob(t, database.TestEmployer2, model.JobStatusPublished, &today)
	overdue := seedJob(t, database.TestEmployer2, model.JobStatusPublished, &yesterday)

	jobs, err := p.ListJobs(context.Background(), Anonymous(), JobFilter{Location: "Khon Kaen"})
	require.NoError(t, err)
	ids := jobIDs(jobs)
	assert.Contains(t, ids, dueToday.ID)
	assert.NotContains(t, ids, overdue.ID)
}

func TestGetJob(t *testing.T) {
	ctx := context.Background()

	job, err := testPolicy.GetJob(ctx, Anonymous(), database.TestJobPublished.ID)
	require.NoError(t, err)
	assert.Equal(t, database.TestJobPublished.Title, job.Title)

	_, err = testPolicy.GetJob(ctx, Anonymous(), database.TestJobDraft.ID)
	assertKind(t, err, apperror.ErrNotFound)

	_, err = testPolicy.GetJob(ctx, employer2(t), database.TestJobDraft.ID)
	assertKind(t, err, apperror.ErrNotFound)

	own, err := testPolicy.GetJob(ctx, employer1(t), database.TestJobDraft.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusDraft, own.Status)

	_, err = testPolicy.GetJob(ctx, employer1(t), 987654)
	assertKind(t, err, apperror.ErrNotFound)
}

func TestCreateJob(t *testing.T) {
	ctx := context.Background()
	valid := model.EditableJobInfo{Title: "SRE", Description: "Keep it running", Location: "Phuket", SalaryMin: 1000}

	_, err := testPolicy.CreateJob(ctx, applicant1(t), valid)
	assertKind(t, err, apperror.ErrPermissionDenied)
	assert.EqualError(t, err, "Only employer can create job listings")

	_, err = testPolicy.CreateJob(ctx, Anonymous(), valid)
	assertKind(t, err, apperror.ErrPermissionDenied)

	job, err := testPolicy.CreateJob(ctx, employer1(t), valid)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusDraft, job.Status)
	assert.Equal(t, model.JobTypeFullTime, job.JobType)
	assert.Equal(t, database.TestEmployer1.ID, job.EmployerID)
	assert.NotZero(t, job.ID)
}

func TestCreateJob_Validation(t *testing.T) {
	ctx := context.Background()
	low := 10.0

	cases := []struct {
		name string
		info model.EditableJobInfo
	}{
		{"missing title", model.EditableJobInfo{Description: "d", Location: "l"}},
		{"blank description", model.EditableJobInfo{Title: "t", Description: "  ", Location: "l"}},
		{"missing location", model.EditableJobInfo{Title: "t", Description: "d"}},
		{"salary range inverted", model.EditableJobInfo{Title: "t", Description: "d", Location: "l", SalaryMin: 100, SalaryMax: &low}},
		{"unknown job type", model.EditableJobInfo{Title: "t", Description: "d", Location: "l", JobType: "GIG"}},
		{"unknown status", model.EditableJobInfo{Title: "t", Description: "d", Location: "l", Status: "ARCHIVED"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := testPolicy.CreateJob(ctx, employer1(t), tc.info)
			assertKind(t, err, apperror.ErrValidation)
		})
	}
}

func TestUpdateJob(t *testing.T) {
	ctx := context.Background()
	job := seedJob(t, database.TestEmployer1, model.JobStatusDraft, nil)

	_, err := testPolicy.UpdateJob(ctx, employer1(t), 876543, model.EditableJobInfo{Title: "x"})
	assertKind(t, err, apperror.ErrNotFound)

	_, err = testPolicy.UpdateJob(ctx, applicant1(t), job.ID, model.EditableJobInfo{Title: "x"})
	assertKind(t, err, apperror.ErrPermissionDenied)

	_, err = testPolicy.UpdateJob(ctx, employer2(t), job.ID, model.EditableJobInfo{Title: "x"})
	assertKind(t, err, apperror.ErrPermissionDenied)
	assert.EqualError(t, err, "You can only modify your own job listings")

	updated, err := testPolicy.UpdateJob(ctx, employer1(t), job.ID, model.EditableJobInfo{Status: model.JobStatusClosed})
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusClosed, updated.Status)
	assert.Equal(t, job.Title, updated.Title, "empty fields keep their value")

	// no transition ordering: CLOSED back to DRAFT is allowed
	reopened, err := testPolicy.UpdateJob(ctx, employer1(t), job.ID, model.EditableJobInfo{Status: model.JobStatusDraft})
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusDraft, reopened.Status)

	_, err = testPolicy.UpdateJob(ctx, employer1(t), job.ID, model.EditableJobInfo{Status: "ARCHIVED"})
	assertKind(t, err, apperror.ErrValidation)
}

func TestUpdateJob_ExplicitFieldsClear(t *testing.T) {
	ctx := context.Background()
	job := seedJob(t, database.TestEmployer1, model.JobStatusDraft, nil)

	reqs, ceiling, deadline := "Go", 900.0, model.NewDate(time.Now().AddDate(0, 0, 3))
	filled, err := testPolicy.UpdateJob(ctx, employer1(t), job.ID, model.EditableJobInfo{
		Requirements: &reqs, SalaryMin: 100, SalaryMax: &ceiling, Deadline: &deadline,
	})
	require.NoError(t, err)
	require.NotNil(t, filled.SalaryMax)

	// without naming the fields, zero values are ignored
	kept, err := testPolicy.UpdateJob(ctx, employer1(t), job.ID, model.EditableJobInfo{})
	require.NoError(t, err)
	assert.Equal(t, 100.0, kept.SalaryMin)
	assert.NotNil(t, kept.Deadline)

	cleared, err := testPolicy.UpdateJob(ctx, employer1(t), job.ID, model.EditableJobInfo{}, ClearableJobFields...)
	require.NoError(t, err)
	assert.Zero(t, cleared.SalaryMin)
	assert.Nil(t, cleared.SalaryMax)
	assert.Nil(t, cleared.Deadline)
	assert.Nil(t, cleared.Requirements)

	var stored model.Job
	require.NoError(t, testDB.First(&stored, job.ID).Error)
	assert.Nil(t, stored.Deadline)
	assert.Nil(t, stored.SalaryMax)
	assert.Equal(t, job.Title, stored.Title)
}

func TestForeignDraft_ReadHiddenWriteDenied(t *testing.T) {
	ctx := context.Background()
	draft := seedJob(t, database.TestEmployer1, model.JobStatusDraft, nil)

	_, err := testPolicy.GetJob(ctx, employer2(t), draft.ID)
	assertKind(t, err, apperror.ErrNotFound)

	_, err = testPolicy.UpdateJob(ctx, employer2(t), draft.ID, model.EditableJobInfo{Title: "taken over"})
	assertKind(t, err, apperror.ErrPermissionDenied)

	err = testPolicy.DeleteJob(ctx, employer2(t), draft.ID)
	assertKind(t, err, apperror.ErrPermissionDenied)

	stored, err := testPolicy.GetJob(ctx, employer1(t), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.Title, stored.Title)
}

func TestDeleteJob_CascadesApplications(t *testing.T) {
	ctx := context.Background()
	job := seedJob(t, database.TestEmployer1, model.JobStatusPublished, nil)

	_, err := testPolicy.CreateApplication(ctx, applicant1(t), job.ID, ApplicationInput{CoverLetter: "hi"})
	require.NoError(t, err)

	err = testPolicy.DeleteJob(ctx, employer2(t), job.ID)
	assertKind(t, err, apperror.ErrPermissionDenied)

	require.NoError(t, testPolicy.DeleteJob(ctx, employer1(t), job.ID))

	var remaining int64
	require.NoError(t, testDB.Model(&model.Application{}).Where("job_id = ?", job.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)

	err = testPolicy.DeleteJob(ctx, employer1(t), job.ID)
	assertKind(t, err, apperror.ErrNotFound)
}
