package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"

	m "JobBoard-backend/internal/model"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported test users & profiles
var (
	TestUserEmployer1  m.User
	TestUserEmployer2  m.User
	TestUserApplicant1 m.User
	TestUserApplicant2 m.User
	// TestUserNoProfile claims the applicant role but has no applicant profile
	TestUserNoProfile m.User

	TestEmployer1  m.Employer
	TestEmployer2  m.Employer
	TestApplicant1 m.Applicant
	TestApplicant2 m.Applicant

	// Plain password shared by every seeded user
	TestSeedPassword = "SeedPass123!"

	// Seeded jobs
	TestJobPublished m.Job
	TestJobDraft     m.Job
	TestJobExpired   m.Job
	TestJobClosed    m.Job
	TestJobRemote    m.Job
)

const (
	seedEmployer1  = "employer_user_1"
	seedEmployer2  = "employer_user_2"
	seedApplicant1 = "applicant_user_1"
	seedApplicant2 = "applicant_user_2"
	seedNoProfile  = "profileless_user"
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the seeded DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		DBName:    dbName,
		UseConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts two employers, two applicants, one profile-less user and a handful of jobs.
func seedTestData(db *DBinstanceStruct) error {
	// Cost is lowered so seeding stays fast; VerifyPassword accepts any cost.
	hashed, err := bcrypt.GenerateFromPassword([]byte(TestSeedPassword), bcrypt.MinCost)
	if err != nil {
		return err
	}

	userSpecs := []struct {
		dst      *m.User
		username string
		first    string
		last     string
		role     string
	}{
		{&TestUserEmployer1, seedEmployer1, "Erin", "Acme", m.RoleEmployer},
		{&TestUserEmployer2, seedEmployer2, "Evan", "Globex", m.RoleEmployer},
		{&TestUserApplicant1, seedApplicant1, "Alice", "Nguyen", m.RoleApplicant},
		{&TestUserApplicant2, seedApplicant2, "Bob", "Somsak", m.RoleApplicant},
		{&TestUserNoProfile, seedNoProfile, "Nora", "Nobody", m.RoleApplicant},
	}

	for _, s := range userSpecs {
		*s.dst = m.User{
			Username: s.username,
			EditableUserInfo: m.EditableUserInfo{
				FirstName: s.first,
				LastName:  s.last,
				Email:     s.username + "@example.com",
			},
			Password: string(hashed),
			Role:     s.role,
		}
		if err := db.Create(s.dst).Error; err != nil {
			return err
		}
	}

	acmeSite, globexLoc := "https://acme.example.com", "Bangkok"
	TestEmployer1 = m.Employer{
		UserID: TestUserEmployer1.ID,
		EditableEmployerInfo: m.EditableEmployerInfo{
			CompanyName: "Acme Corp",
			Website:     &acmeSite,
		},
	}
	TestEmployer2 = m.Employer{
		UserID: TestUserEmployer2.ID,
		EditableEmployerInfo: m.EditableEmployerInfo{
			CompanyName: "Globex",
			Location:    &globexLoc,
		},
	}
	if err := db.Create(&TestEmployer1).Error; err != nil {
		return err
	}
	if err := db.Create(&TestEmployer2).Error; err != nil {
		return err
	}

	resume := m.File{Content: []byte("%PDF-1.4 seeded resume"), Extension: ".pdf"}
	if err := db.Create(&resume).Error; err != nil {
		return err
	}

	experience := "3 years of Go"
	TestApplicant1 = m.Applicant{
		UserID:   TestUserApplicant1.ID,
		ResumeID: &resume.ID,
		EditableApplicantInfo: m.EditableApplicantInfo{
			Skills:     pq.StringArray{"go", "sql"},
			Experience: &experience,
		},
	}
	TestApplicant2 = m.Applicant{
		UserID: TestUserApplicant2.ID,
		EditableApplicantInfo: m.EditableApplicantInfo{
			Skills: pq.StringArray{"react"},
		},
	}
	if err := db.Create(&TestApplicant1).Error; err != nil {
		return err
	}
	if err := db.Create(&TestApplicant2).Error; err != nil {
		return err
	}

	yesterday := m.NewDate(time.Now().AddDate(0, 0, -1))
	nextMonth := m.NewDate(time.Now().AddDate(0, 1, 0))

	jobSpecs := []struct {
		dst      *m.Job
		employer uint
		info     m.EditableJobInfo
	}{
		{&TestJobPublished, TestEmployer1.ID, m.EditableJobInfo{
			Title: "Backend Engineer", Description: "Build Go services.", Location: "Bangkok",
			SalaryMin: 50000, JobType: m.JobTypeFullTime, Status: m.JobStatusPublished,
		}},
		{&TestJobDraft, TestEmployer1.ID, m.EditableJobInfo{
			Title: "Platform Engineer", Description: "Not announced yet.", Location: "Bangkok",
			JobType: m.JobTypeFullTime, Status: m.JobStatusDraft,
		}},
		{&TestJobExpired, TestEmployer1.ID, m.EditableJobInfo{
			Title: "Data Analyst Intern", Description: "Dashboards and SQL.", Location: "Chiang Mai",
			JobType: m.JobTypeInternship, Status: m.JobStatusPublished, Deadline: &yesterday,
		}},
		{&TestJobClosed, TestEmployer2.ID, m.EditableJobInfo{
			Title: "QA Contractor", Description: "Regression testing.", Location: "Bangkok",
			JobType: m.JobTypeContract, Status: m.JobStatusClosed,
		}},
		{&TestJobRemote, TestEmployer2.ID, m.EditableJobInfo{
			Title: "Frontend Developer", Description: "React component library.", Location: "Remote",
			JobType: m.JobTypePartTime, Status: m.JobStatusPublished, Deadline: &nextMonth,
		}},
	}

	for _, s := range jobSpecs {
		*s.dst = m.Job{EmployerID: s.employer, EditableJobInfo: s.info}
		if err := db.Create(s.dst).Error; err != nil {
			return err
		}
	}

	return nil
}
