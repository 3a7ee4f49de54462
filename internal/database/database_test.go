package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"JobBoard-backend/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *DBinstanceStruct

func TestMain(m *testing.M) {
	td, db, err := GetTestDB()
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}
	testDB = db

	m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if td != nil {
		if err := td(ctx); err != nil {
			log.Errorf("could not teardown postgres container: %v", err)
		}
	}
}

func TestHealth(t *testing.T) {
	stats := testDB.Health()

	assert.Equal(t, "up", stats["status"])
	assert.NotContains(t, stats, "error")
	assert.Equal(t, "It's healthy", stats["message"])
}

func TestSeededProfiles(t *testing.T) {
	var employers int64
	require.NoError(t, testDB.Model(&model.Employer{}).Where("user_id = ?", TestUserEmployer1.ID).Count(&employers).Error)
	assert.Equal(t, int64(1), employers)

	var applicants int64
	require.NoError(t, testDB.Model(&model.Applicant{}).Where("user_id = ?", TestUserEmployer1.ID).Count(&applicants).Error)
	assert.Equal(t, int64(0), applicants)

	var orphan int64
	require.NoError(t, testDB.Model(&model.Applicant{}).Where("user_id = ?", TestUserNoProfile.ID).Count(&orphan).Error)
	assert.Equal(t, int64(0), orphan)
}

func TestJobDefaults(t *testing.T) {
	job := model.Job{
		EmployerID:      TestEmployer2.ID,
		EditableJobInfo: model.EditableJobInfo{Title: "Defaults", Description: "d", Location: "l"},
	}
	require.NoError(t, testDB.Create(&job).Error)

	var stored model.Job
	require.NoError(t, testDB.First(&stored, job.ID).Error)
	assert.Equal(t, model.JobStatusDraft, stored.Status)
	assert.Equal(t, model.JobTypeFullTime, stored.JobType)
	assert.Nil(t, stored.Deadline)
}

func TestApplicationUniqueIndex(t *testing.T) {
	first := model.Application{JobID: TestJobRemote.ID, ApplicantID: TestUserApplicant2.ID}
	require.NoError(t, testDB.Create(&first).Error)

	second := model.Application{JobID: TestJobRemote.ID, ApplicantID: TestUserApplicant2.ID}
	err := testDB.Create(&second).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsForeignKeyViolation(err))

	require.NoError(t, testDB.Delete(&first).Error)
}

func TestForeignKeyViolation(t *testing.T) {
	app := model.Application{JobID: 999999, ApplicantID: TestUserApplicant2.ID}
	err := testDB.Create(&app).Error
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
}

func TestPgCodeHelpers_NonPgError(t *testing.T) {
	assert.False(t, IsUniqueViolation(errors.New("plain")))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: PgUniqueViolation}))
}

func TestDBConfig_Dsn(t *testing.T) {
	_, err := (&DBConfig{UseConstr: true}).getDsn()
	assert.Error(t, err)

	_, err = (&DBConfig{Host: "h"}).getDsn()
	assert.Error(t, err)

	dsn, err := (&DBConfig{Host: "h", Port: "1", User: "u", Password: "p", DBName: "d"}).getDsn()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@h:1/d?sslmode=disable", dsn)
}

func TestDeadlineRoundTrip(t *testing.T) {
	var stored model.Job
	require.NoError(t, testDB.First(&stored, TestJobRemote.ID).Error)
	require.NotNil(t, stored.Deadline)
	assert.Equal(t, TestJobRemote.Deadline.String(), stored.Deadline.String())
}
