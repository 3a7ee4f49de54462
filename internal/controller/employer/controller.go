// Package employer provides HTTP handlers for employer profiles.
package employer

import (
	"JobBoard-backend/internal/apperror"
	"JobBoard-backend/internal/database"
	"JobBoard-backend/internal/middleware"
	"JobBoard-backend/internal/model"
	"JobBoard-backend/internal/utilities"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EmployerController handles employer profile endpoints
type EmployerController struct {
	DB *database.DBinstanceStruct
}

// NewEmployerController creates a new instance of EmployerController
func NewEmployerController(db *database.DBinstanceStruct) *EmployerController {
	return &EmployerController{
		DB: db,
	}
}

type editEmployer struct {
	model.EditableEmployerInfo
	model.EditableUserInfo
}

// ListEmployers returns every employer profile.
// @Summary List employers
// @Tags Employer
// @Produce json
// @Success 200 {array} model.Employer "All employer profiles"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /employers [get]
func (ec *EmployerController) ListEmployers(c *gin.Context) {
	employers := []model.Employer{}
	if err := ec.DB.WithContext(c.Request.Context()).Order("id").Find(&employers).Error; err != nil {
		utilities.RespondError(c, fmt.Errorf("failed to retrieve employers: %w", err))
		return
	}
	c.JSON(http.StatusOK, employers)
}

// GetEmployer returns one employer profile.
// @Summary Retrieve employer profile by ID
// @Tags Employer
// @Produce json
// @Param id path integer true "ID of employer"
// @Success 200 {object} model.Employer "Employer profile"
// @Failure 404 {object} utilities.ErrorResponse "Employer not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /employers/{id} [get]
func (ec *EmployerController) GetEmployer(c *gin.Context) {
	id, ok := utilities.UintParam(c, "id")
	if !ok {
		utilities.RespondError(c, apperror.NotFound("Employer not found"))
		return
	}

	var employer model.Employer
	err := ec.DB.WithContext(c.Request.Context()).First(&employer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utilities.RespondError(c, apperror.NotFound("Employer not found"))
		return
	}
	if err != nil {
		utilities.RespondError(c, fmt.Errorf("failed to retrieve employer: %w", err))
		return
	}
	c.JSON(http.StatusOK, employer)
}

// GetMyProfile returns the caller's user and employer profile.
// @Summary Retrieve own employer profile
// @Tags Employer
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.ProfileResponse "User and employer profile"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as employer"
// @Router /employer/profile [get]
func (ec *EmployerController) GetMyProfile(c *gin.Context) {
	identity := middleware.ExtractIdentity(c)
	if identity.Employer == nil {
		utilities.RespondError(c, apperror.Denied("User doesn't have permission to access"))
		return
	}
	c.JSON(http.StatusOK, model.ProfileResponse{User: *identity.User, Profile: identity.Employer})
}

// EditMyProfile merges the non-empty fields given into the caller's user and employer profile.
// @Summary Edit own employer profile
// @Description PUT and PATCH both merge; id, user and logo can't be overwritten
// @Tags Employer
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Profile body editEmployer true "Fields to change"
// @Success 200 {object} model.ProfileResponse "Successfully edit"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as employer"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /employer/profile [put]
// @Router /employer/profile [patch]
func (ec *EmployerController) EditMyProfile(c *gin.Context) {
	identity := middleware.ExtractIdentity(c)
	if identity.Employer == nil {
		utilities.RespondError(c, apperror.Denied("User doesn't have permission to access"))
		return
	}

	var edited editEmployer
	if err := utilities.DecodeStrict(c, &edited); err != nil {
		utilities.RespondError(c, err)
		return
	}

	employer := *identity.Employer
	user := *identity.User
	utilities.MergeNonEmpty(&employer.EditableEmployerInfo, &edited.EditableEmployerInfo)
	utilities.MergeNonEmpty(&user.EditableUserInfo, &edited.EditableUserInfo)

	if err := ec.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&employer).Error; err != nil {
			return err
		}
		return tx.Model(&user).Select("first_name", "last_name", "email").Updates(&user).Error
	}); err != nil {
		utilities.RespondError(c, fmt.Errorf("failed to update user information: %w", err))
		return
	}

	c.JSON(http.StatusOK, model.ProfileResponse{User: user, Profile: employer})
}

// DeleteMyProfile removes the caller's employer profile and, through it, all of its jobs.
// @Summary Delete own employer profile
// @Tags Employer
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} utilities.MessageResponse "Profile deleted"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as employer"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /employer/profile [delete]
func (ec *EmployerController) DeleteMyProfile(c *gin.Context) {
	identity := middleware.ExtractIdentity(c)
	if identity.Employer == nil {
		utilities.RespondError(c, apperror.Denied("User doesn't have permission to access"))
		return
	}

	if err := ec.DB.WithContext(c.Request.Context()).Delete(&model.Employer{}, identity.Employer.ID).Error; err != nil {
		utilities.RespondError(c, fmt.Errorf("failed to delete employer profile: %w", err))
		return
	}
	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Employer profile deleted"})
}
