package policy

import (
	"context"
	"errors"
	"testing"

	"JobBoard-backend/internal/apperror"
	"JobBoard-backend/internal/database"
	"JobBoard-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func countProfiles(t *testing.T, user model.User) (employers int64, applicants int64) {
	t.Helper()
	require.NoError(t, testDB.Model(&model.Employer{}).Where("user_id = ?", user.ID).Count(&employers).Error)
	require.NoError(t, testDB.Model(&model.Applicant{}).Where("user_id = ?", user.ID).Count(&applicants).Error)
	return employers, applicants
}

func TestRegister_Employer(t *testing.T) {
	reg, err := testPolicy.Register(context.Background(), RegisterInput{
		Username: "new_employer", FirstName: "Eve", LastName: "Boss",
		Email: "eve@example.com", Password: "pw", Role: "employer",
	})
	require.NoError(t, err)

	assert.Equal(t, model.RoleEmployer, reg.User.Role)
	assert.NotEqual(t, "pw", reg.User.Password)
	profile, ok := reg.Profile.(*model.Employer)
	require.True(t, ok)
	assert.Equal(t, reg.User.ID, profile.UserID)
	assert.Empty(t, profile.CompanyName)

	employers, applicants := countProfiles(t, reg.User)
	assert.Equal(t, int64(1), employers)
	assert.Zero(t, applicants)
}

func TestRegister_Applicant(t *testing.T) {
	reg, err := testPolicy.Register(context.Background(), RegisterInput{
		Username: "new_applicant", Password: "pw", Role: model.RoleApplicant,
	})
	require.NoError(t, err)
	_, ok := reg.Profile.(*model.Applicant)
	assert.True(t, ok)

	employers, applicants := countProfiles(t, reg.User)
	assert.Zero(t, employers)
	assert.Equal(t, int64(1), applicants)

	id, err := testPolicy.ResolveRole(context.Background(), &reg.User)
	require.NoError(t, err)
	assert.Equal(t, model.RoleApplicant, id.Role)
}

func TestRegister_UsernameTakenCreatesNothing(t *testing.T) {
	var before int64
	require.NoError(t, testDB.Model(&model.User{}).Count(&before).Error)

	_, err := testPolicy.Register(context.Background(), RegisterInput{
		Username: database.TestUserApplicant1.Username, Password: "pw", Role: model.RoleEmployer,
	})
	assertKind(t, err, apperror.ErrValidation)
	assert.EqualError(t, err, "Username already exists")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	var after int64
	require.NoError(t, testDB.Model(&model.User{}).Count(&after).Error)
	assert.Equal(t, before, after)
}

func TestRegister_ProfileFailureRollsBackUser(t *testing.T) {
	const callback = "test:fail_applicant_insert"
	require.NoError(t, testDB.Callback().Create().Before("gorm:create").Register(callback, func(db *gorm.DB) {
		if db.Statement.Schema != nil && db.Statement.Schema.Table == "applicants" {
			_ = db.AddError(errors.New("applicant insert refused"))
		}
	}))
	t.Cleanup(func() {
		_ = testDB.Callback().Create().Remove(callback)
	})

	_, err := testPolicy.Register(context.Background(), RegisterInput{
		Username: "rolled_back_applicant", Password: "pw", Role: model.RoleApplicant,
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "applicant insert refused")

	var users int64
	require.NoError(t, testDB.Model(&model.User{}).Where("username = ?", "rolled_back_applicant").Count(&users).Error)
	assert.Zero(t, users)
}

func TestRegister_InvalidInput(t *testing.T) {
	cases := []RegisterInput{
		{Username: "x1", Password: "pw", Role: "ADMIN"},
		{Username: "x2", Password: "pw"},
		{Username: "", Password: "pw", Role: model.RoleEmployer},
		{Username: "x3", Role: model.RoleEmployer},
	}
	for _, in := range cases {
		_, err := testPolicy.Register(context.Background(), in)
		assertKind(t, err, apperror.ErrValidation)
	}

	var count int64
	require.NoError(t, testDB.Model(&model.User{}).Where("username IN ?", []string{"x1", "x2", "x3"}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRegister_GoogleWithoutPassword(t *testing.T) {
	reg, err := testPolicy.Register(context.Background(), RegisterInput{
		Username: "google_user_1", GoogleID: "gid-123", Role: model.RoleApplicant,
	})
	require.NoError(t, err)
	assert.Empty(t, reg.User.Password)

	found, err := testPolicy.FindByGoogleID(context.Background(), "gid-123")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, reg.User.ID, found.ID)

	missing, err := testPolicy.FindByGoogleID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	// accounts without a password never pass local login
	_, err = testPolicy.Authenticate(context.Background(), "google_user_1", "")
	assertKind(t, err, apperror.ErrUnauthorized)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	user, err := testPolicy.Authenticate(ctx, database.TestUserEmployer1.Username, database.TestSeedPassword)
	require.NoError(t, err)
	assert.Equal(t, database.TestUserEmployer1.ID, user.ID)

	_, err = testPolicy.Authenticate(ctx, database.TestUserEmployer1.Username, "wrong")
	assertKind(t, err, apperror.ErrUnauthorized)

	_, err = testPolicy.Authenticate(ctx, "ghost", "whatever")
	assertKind(t, err, apperror.ErrUnauthorized)
}
