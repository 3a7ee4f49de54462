// Package application provides HTTP handlers for job application operations.
package application

import (
	"JobBoard-backend/internal/apperror"
	"JobBoard-backend/internal/controller/file"
	"JobBoard-backend/internal/middleware"
	"JobBoard-backend/internal/model"
	"JobBoard-backend/internal/policy"
	"JobBoard-backend/internal/utilities"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	Policy *policy.Policy
	Files  *file.FileController
}

// NewApplicationController creates a new instance of ApplicationController.
// Uploaded resumes are stored through files.
func NewApplicationController(p *policy.Policy, files *file.FileController) *ApplicationController {
	return &ApplicationController{
		Policy: p,
		Files:  files,
	}
}

type applicationBody struct {
	CoverLetter string `json:"cover_letter"`
}

func pathIDs(c *gin.Context) (jobID uint, applicationID uint, ok bool) {
	jobID, ok = utilities.UintParam(c, "id")
	if !ok {
		utilities.RespondError(c, apperror.NotFound("Job not found"))
		return 0, 0, false
	}
	if c.Param("application_id") == "" {
		return jobID, 0, true
	}
	applicationID, ok = utilities.UintParam(c, "application_id")
	if !ok {
		utilities.RespondError(c, apperror.NotFound("Application not found"))
		return 0, 0, false
	}
	return jobID, applicationID, true
}

// ListApplications lists applications visible to the caller, across all jobs or for one job.
// @Summary List applications
// @Description Employers see applications to their jobs, applicants see their own, others see none
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer false "Restrict to one job"
// @Success 200 {array} model.Application "Visible applications, newest first"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications [get]
// @Router /jobs/{id}/applications [get]
func (ac *ApplicationController) ListApplications(c *gin.Context) {
	var filter *uint
	if c.Param("id") != "" {
		jobID, _, ok := pathIDs(c)
		if !ok {
			return
		}
		filter = &jobID
	}

	applications, err := ac.Policy.ListApplications(c.Request.Context(), middleware.ExtractIdentity(c), filter)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

// CreateApplication submits an application to a job.
// @Summary Apply to a job
// @Description Only applicants may apply, once per job, to a published job whose deadline has not passed.
// @Description The resume is the uploaded file or, when none is sent, the resume stored on the applicant profile.
// @Tags Application
// @Accept mpfd
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the job"
// @Param cover_letter formData string false "Cover letter"
// @Param resume formData file false "Resume (.pdf, .doc, .docx, up to 10 MB)"
// @Success 201 {object} model.Application "Successfully apply"
// @Failure 400 {object} utilities.ErrorResponse "Invalid body or no resume available"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not allowed to apply"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 409 {object} utilities.ErrorResponse "Concurrent duplicate application"
// @Failure 413 {object} utilities.ErrorResponse "File size is larger than 10 MB"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id}/applications [post]
func (ac *ApplicationController) CreateApplication(c *gin.Context) {
	jobID, _, ok := pathIDs(c)
	if !ok {
		return
	}
	identity := middleware.ExtractIdentity(c)
	ctx := c.Request.Context()

	// Refuse before reading any upload
	if _, err := ac.Policy.CanApply(ctx, identity, jobID); err != nil {
		utilities.RespondError(c, err)
		return
	}

	var input policy.ApplicationInput
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		input.CoverLetter = c.PostForm("cover_letter")

		upload, err := file.ReadUpload(c, "resume", file.ResumeExtensions)
		if err != nil {
			utilities.RespondError(c, err)
			return
		}
		if upload != nil {
			resume, err := ac.Files.BuildFile(upload, file.ResumeObjectPrefix)
			if err != nil {
				utilities.RespondError(c, err)
				return
			}
			input.Resume = resume
		}
	} else if c.Request.ContentLength != 0 {
		var body applicationBody
		if err := utilities.DecodeStrict(c, &body); err != nil {
			utilities.RespondError(c, err)
			return
		}
		input.CoverLetter = body.CoverLetter
	}

	application, err := ac.Policy.CreateApplication(ctx, identity, jobID, input)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, application)
}

// GetApplication returns one application of a job.
// @Summary Get application by ID
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the job"
// @Param application_id path integer true "ID of the application"
// @Success 200 {object} model.Application "The application"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Application not found or not visible"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id}/applications/{application_id} [get]
func (ac *ApplicationController) GetApplication(c *gin.Context) {
	jobID, id, ok := pathIDs(c)
	if !ok {
		return
	}

	application, err := ac.Policy.GetApplication(c.Request.Context(), middleware.ExtractIdentity(c), jobID, id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

// UpdateApplication lets the employer owning the job change an application's status or cover letter.
// @Summary Update application status
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the job"
// @Param application_id path integer true "ID of the application"
// @Param Application body model.EditableApplicationInfo true "Fields to change"
// @Success 200 {object} model.Application "Successfully update application"
// @Failure 400 {object} utilities.ErrorResponse "Invalid status"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the employer owning the job"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id}/applications/{application_id} [put]
// @Router /jobs/{id}/applications/{application_id} [patch]
func (ac *ApplicationController) UpdateApplication(c *gin.Context) {
	jobID, id, ok := pathIDs(c)
	if !ok {
		return
	}

	var patch model.EditableApplicationInfo
	if err := utilities.DecodeStrict(c, &patch); err != nil {
		utilities.RespondError(c, err)
		return
	}

	application, err := ac.Policy.UpdateApplication(c.Request.Context(), middleware.ExtractIdentity(c), jobID, id, patch)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

// DeleteApplication removes an application; same rules as update.
// @Summary Delete application
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the job"
// @Param application_id path integer true "ID of the application"
// @Success 200 {object} utilities.MessageResponse "Successfully delete application"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the employer owning the job"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id}/applications/{application_id} [delete]
func (ac *ApplicationController) DeleteApplication(c *gin.Context) {
	jobID, id, ok := pathIDs(c)
	if !ok {
		return
	}

	if err := ac.Policy.DeleteApplication(c.Request.Context(), middleware.ExtractIdentity(c), jobID, id); err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Application deleted"})
}
