// Package applicant provides HTTP handlers for applicant profiles.
package applicant

import (
	"JobBoard-backend/internal/apperror"
	"JobBoard-backend/internal/database"
	"JobBoard-backend/internal/middleware"
	"JobBoard-backend/internal/model"
	"JobBoard-backend/internal/utilities"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ApplicantController handles applicant profile endpoints
type ApplicantController struct {
	DB *database.DBinstanceStruct
}

// NewApplicantController creates a new instance of ApplicantController
func NewApplicantController(db *database.DBinstanceStruct) *ApplicantController {
	return &ApplicantController{
		DB: db,
	}
}

type editApplicant struct {
	model.EditableApplicantInfo
	model.EditableUserInfo
}

// ListApplicants returns every applicant with their user information.
// @Summary List applicants
// @Description Only employers have access to this endpoint
// @Tags Applicant
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.ProfileResponse "Applicants"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as employer"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applicants [get]
func (ac *ApplicantController) ListApplicants(c *gin.Context) {
	var applicants []model.Applicant
	if err := ac.DB.WithContext(c.Request.Context()).Preload("User").Order("id").Find(&applicants).Error; err != nil {
		utilities.RespondError(c, fmt.Errorf("failed to retrieve applicants: %w", err))
		return
	}

	resp := make([]model.ProfileResponse, 0, len(applicants))
	for i := range applicants {
		resp = append(resp, model.ProfileResponse{User: applicants[i].User, Profile: applicants[i]})
	}
	c.JSON(http.StatusOK, resp)
}

// GetMyProfile returns the caller's user and applicant profile.
// @Summary Retrieve own applicant profile
// @Tags Applicant
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.ProfileResponse "User and applicant profile"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as applicant"
// @Router /applicant/profile [get]
func (ac *ApplicantController) GetMyProfile(c *gin.Context) {
	identity := middleware.ExtractIdentity(c)
	if identity.Applicant == nil {
		utilities.RespondError(c, apperror.Denied("User doesn't have permission to access"))
		return
	}
	c.JSON(http.StatusOK, model.ProfileResponse{User: *identity.User, Profile: identity.Applicant})
}

// EditMyProfile merges the non-empty fields given into the caller's user and applicant profile.
// @Summary Edit own applicant profile
// @Description PUT and PATCH both merge; id, user and resume can't be overwritten
// @Tags Applicant
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Profile body editApplicant true "Fields to change"
// @Success 200 {object} model.ProfileResponse "Successfully edit"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as applicant"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applicant/profile [put]
// @Router /applicant/profile [patch]
func (ac *ApplicantController) EditMyProfile(c *gin.Context) {
	identity := middleware.ExtractIdentity(c)
	if identity.Applicant == nil {
		utilities.RespondError(c, apperror.Denied("User doesn't have permission to access"))
		return
	}

	var edited editApplicant
	if err := utilities.DecodeStrict(c, &edited); err != nil {
		utilities.RespondError(c, err)
		return
	}

	applicant := *identity.Applicant
	user := *identity.User
	utilities.MergeNonEmpty(&applicant.EditableApplicantInfo, &edited.EditableApplicantInfo)
	utilities.MergeNonEmpty(&user.EditableUserInfo, &edited.EditableUserInfo)

	if err := ac.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&applicant).Error; err != nil {
			return err
		}
		return tx.Model(&user).Select("first_name", "last_name", "email").Updates(&user).Error
	}); err != nil {
		utilities.RespondError(c, fmt.Errorf("failed to update user information: %w", err))
		return
	}

	c.JSON(http.StatusOK, model.ProfileResponse{User: user, Profile: applicant})
}
