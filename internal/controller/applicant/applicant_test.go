package applicant

import (
	"JobBoard-backend/internal/auth"
	"JobBoard-backend/internal/database"
	"JobBoard-backend/internal/middleware"
	"JobBoard-backend/internal/model"
	"JobBoard-backend/internal/policy"
	"JobBoard-backend/internal/testutil"
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *database.DBinstanceStruct
var testPolicy *policy.Policy

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	auth.Configure("applicant-test-secret", time.Hour)

	teardown, db, err := database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	testDB = db
	testPolicy = policy.NewPolicy(db)

	code := m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if teardown != nil {
		_ = teardown(ctx)
	}
	os.Exit(code)
}

func newEngine() *gin.Engine {
	r := gin.New()
	ac := NewApplicantController(testDB)
	r.GET("/applicants", middleware.RequireAuth(testPolicy), middleware.CheckRole(model.RoleEmployer), ac.ListApplicants)
	r.GET("/applicant/profile", middleware.RequireAuth(testPolicy), ac.GetMyProfile)
	r.PUT("/applicant/profile", middleware.RequireAuth(testPolicy), ac.EditMyProfile)
	return r
}

func TestListApplicants(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserEmployer1.Username, database.TestSeedPassword)
	require.NoError(t, err)

	rec, list := testutil.MakeListRequest(token, newEngine(), "/applicants")

	require.Equal(t, http.StatusOK, rec.Code)
	require.GreaterOrEqual(t, len(list), 2)
	usernames := []interface{}{}
	for _, entry := range list {
		user := entry["user"].(map[string]interface{})
		usernames = append(usernames, user["username"])
		assert.NotContains(t, user, "password")
	}
	assert.Contains(t, usernames, database.TestUserApplicant1.Username)
	assert.Contains(t, usernames, database.TestUserApplicant2.Username)
}

func TestListApplicants_ApplicantForbidden(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserApplicant1.Username, database.TestSeedPassword)
	require.NoError(t, err)

	rec, _ := testutil.MakeListRequest(token, newEngine(), "/applicants")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetMyProfile(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserApplicant1.Username, database.TestSeedPassword)
	require.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(nil, token, newEngine(), "/applicant/profile", http.MethodGet)

	require.Equal(t, http.StatusOK, rec.Code)
	profile := resp["profile"].(map[string]interface{})
	assert.Equal(t, []interface{}{"go", "sql"}, profile["skills"])
	assert.NotNil(t, profile["resume"])
}

func TestGetMyProfile_EmployerForbidden(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserEmployer1.Username, database.TestSeedPassword)
	require.NoError(t, err)

	rec, _ := testutil.MakeJSONRequest(nil, token, newEngine(), "/applicant/profile", http.MethodGet)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestEditMyProfile(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserApplicant2.Username, database.TestSeedPassword)
	require.NoError(t, err)
	r := newEngine()

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"skills":    []string{"react", "typescript"},
		"education": "BSc Computer Science",
		"email":     "applicant2@example.org",
	}, token, r, "/applicant/profile", http.MethodPut)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	profile := resp["profile"].(map[string]interface{})
	user := resp["user"].(map[string]interface{})
	assert.Equal(t, []interface{}{"react", "typescript"}, profile["skills"])
	assert.Equal(t, "BSc Computer Science", profile["education"])
	assert.Equal(t, "applicant2@example.org", user["email"])

	var stored model.Applicant
	require.NoError(t, testDB.First(&stored, database.TestApplicant2.ID).Error)
	assert.Equal(t, []string{"react", "typescript"}, []string(stored.Skills))
	require.NotNil(t, stored.Education)
	assert.Equal(t, "BSc Computer Science", *stored.Education)
}

func TestEditMyProfile_InvalidBody(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserApplicant2.Username, database.TestSeedPassword)
	require.NoError(t, err)

	rec, _ := testutil.MakeJSONRequest(gin.H{"resume": 3}, token, newEngine(), "/applicant/profile", http.MethodPut)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
