// Package job provides HTTP handlers for job listing operations.
package job

import (
	"JobBoard-backend/internal/apperror"
	"JobBoard-backend/internal/middleware"
	"JobBoard-backend/internal/model"
	"JobBoard-backend/internal/policy"
	"JobBoard-backend/internal/utilities"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// JobController handles job listing related endpoints
type JobController struct {
	Policy *policy.Policy
}

// NewJobController creates a new instance of JobController
func NewJobController(p *policy.Policy) *JobController {
	return &JobController{
		Policy: p,
	}
}

func jobID(c *gin.Context) (uint, bool) {
	id, ok := utilities.UintParam(c, "id")
	if !ok {
		utilities.RespondError(c, apperror.NotFound("Job not found"))
	}
	return id, ok
}

// ListJobs returns the job listings visible to the caller.
// @Summary List job listings
// @Description Anonymous users and applicants see published jobs whose deadline has not passed.
// @Description Employers additionally see all of their own jobs. Filters are exact and combine with AND.
// @Tags Job
// @Produce json
// @Param Authorization header string false "Optional access token" default(Bearer <your access token>)
// @Param job_type query string false "FULL_TIME, PART_TIME, CONTRACT or INTERNSHIP"
// @Param location query string false "Exact location"
// @Success 200 {array} model.Job "Visible job listings, newest first"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [get]
func (jc *JobController) ListJobs(c *gin.Context) {
	filter := policy.JobFilter{
		JobType:  strings.ToUpper(strings.TrimSpace(c.Query("job_type"))),
		Location: strings.TrimSpace(c.Query("location")),
	}

	jobs, err := jc.Policy.ListJobs(c.Request.Context(), middleware.ExtractIdentity(c), filter)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// GetJob returns a single job listing.
// @Summary Get job listing by ID
// @Description Drafts and closed jobs are only visible to the employer that owns them
// @Tags Job
// @Produce json
// @Param Authorization header string false "Optional access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired job"
// @Success 200 {object} model.Job "The job listing"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job not found or not visible"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [get]
func (jc *JobController) GetJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	job, err := jc.Policy.GetJob(c.Request.Context(), middleware.ExtractIdentity(c), id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// CreateJob creates a job listing owned by the caller's employer profile.
// @Summary Create job listing
// @Description Status defaults to DRAFT and job_type to FULL_TIME
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Job body model.EditableJobInfo true "Job information"
// @Success 201 {object} model.Job "Successfully create job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Only employer can create job listings"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [post]
func (jc *JobController) CreateJob(c *gin.Context) {
	identity := middleware.ExtractIdentity(c)
	if identity.Employer == nil {
		utilities.RespondError(c, apperror.Denied("Only employer can create job listings"))
		return
	}

	var info model.EditableJobInfo
	if err := utilities.DecodeStrict(c, &info); err != nil {
		utilities.RespondError(c, err)
		return
	}

	job, err := jc.Policy.CreateJob(c.Request.Context(), identity, info)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// UpdateJob merges the given fields into a job the caller owns. PUT and PATCH behave the same.
// @Summary Edit job listing
// @Description Only the employer that owns the job may edit it. Any status may be set.
// @Description Omitted or empty fields keep their value. requirements, salary_max and deadline are cleared by
// @Description sending null, and salary_min may be set to 0.
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired job"
// @Param Job body model.EditableJobInfo true "Fields to change"
// @Success 200 {object} model.Job "Successfully update job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owning employer"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [put]
// @Router /jobs/{id} [patch]
func (jc *JobController) UpdateJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utilities.RespondError(c, apperror.Validation("Failed to read request body"))
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	var patch model.EditableJobInfo
	if err := utilities.DecodeStrict(c, &patch); err != nil {
		utilities.RespondError(c, err)
		return
	}

	job, err := jc.Policy.UpdateJob(c.Request.Context(), middleware.ExtractIdentity(c), id, patch, presentFields(body, policy.ClearableJobFields)...)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// presentFields returns the names among fields that appear as keys of the JSON object body
func presentFields(body []byte, fields []string) []string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}
	present := []string{}
	for _, f := range fields {
		if _, ok := raw[f]; ok {
			present = append(present, f)
		}
	}
	return present
}

// DeleteJob removes a job the caller owns together with its applications.
// @Summary Delete job listing
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired job"
// @Success 200 {object} utilities.MessageResponse "Successfully delete job"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owning employer"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [delete]
func (jc *JobController) DeleteJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	if err := jc.Policy.DeleteJob(c.Request.Context(), middleware.ExtractIdentity(c), id); err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job deleted"})
}
