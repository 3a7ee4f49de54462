// Package file provides HTTP handlers for file-related operations.
package file

import (
	"JobBoard-backend/internal/apperror"
	"JobBoard-backend/internal/database"
	"JobBoard-backend/internal/middleware"
	"JobBoard-backend/internal/model"
	"JobBoard-backend/internal/policy"
	"JobBoard-backend/internal/utilities"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// FileController handles file related endpoints
type FileController struct {
	DB      *database.DBinstanceStruct
	Storage StorageClient
	Policy  *policy.Policy
}

const (
	// ResumeObjectPrefix groups resume blobs in the bucket
	ResumeObjectPrefix = "resumes"
	logoObjectPrefix   = "logos"
)

// NewFileController creates a new instance of FileController.
// A nil storage keeps file content in the database row.
func NewFileController(db *database.DBinstanceStruct, storage StorageClient) *FileController {
	return &FileController{
		DB:      db,
		Storage: storage,
		Policy:  policy.NewPolicy(db),
	}
}

// UploadResume stores a resume and sets it as the caller's profile resume.
// @Summary Upload resume file for applicant
// @Description Only file that smaller than 10 MB with .pdf, .doc or .docx extension is permitted
// @Tags Applicant
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param resume formData file true "Upload your resume file"
// @Success 200 {object} model.Applicant "Successfully upload resume"
// @Failure 400 {object} utilities.ErrorResponse "No file in form"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as applicant"
// @Failure 413 {object} utilities.ErrorResponse "File size is larger than 10 MB"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applicant/profile/resume [post]
func (fc *FileController) UploadResume(c *gin.Context) {
	identity := middleware.ExtractIdentity(c)
	if identity.Applicant == nil {
		utilities.RespondError(c, apperror.Denied("Only applicants can upload a resume"))
		return
	}

	file, err := fc.receive(c, "resume", ResumeExtensions, ResumeObjectPrefix)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	applicant := *identity.Applicant
	if err := fc.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(file).Error; err != nil {
			return err
		}
		return tx.Model(&model.Applicant{}).Where("id = ?", applicant.ID).Update("resume_id", file.ID).Error
	}); err != nil {
		utilities.RespondError(c, fmt.Errorf("failed to update user information: %w", err))
		return
	}

	applicant.ResumeID = &file.ID
	c.JSON(http.StatusOK, applicant)
}

// UploadLogo stores an image and sets it as the caller's company logo.
// @Summary Upload logo file for employer
// @Description Only file that smaller than 10 MB with .jpg, .jpeg, or .png extension is permitted
// @Tags Employer
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param logo formData file true "Upload your logo file"
// @Success 200 {object} model.Employer "Successfully upload logo"
// @Failure 400 {object} utilities.ErrorResponse "No file in form"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as employer"
// @Failure 413 {object} utilities.ErrorResponse "File size is larger than 10 MB"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /employer/profile/logo [post]
func (fc *FileController) UploadLogo(c *gin.Context) {
	identity := middleware.ExtractIdentity(c)
	if identity.Employer == nil {
		utilities.RespondError(c, apperror.Denied("Only employers can upload a logo"))
		return
	}

	file, err := fc.receive(c, "logo", ImageExtensions, logoObjectPrefix)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	employer := *identity.Employer
	if err := fc.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(file).Error; err != nil {
			return err
		}
		return tx.Model(&model.Employer{}).Where("id = ?", employer.ID).Update("logo_id", file.ID).Error
	}); err != nil {
		utilities.RespondError(c, fmt.Errorf("failed to update user information: %w", err))
		return
	}

	employer.LogoID = &file.ID
	c.JSON(http.StatusOK, employer)
}

// receive reads a required upload and prepares its File row
func (fc *FileController) receive(c *gin.Context, field string, allowed map[string]bool, prefix string) (*model.File, error) {
	upload, err := ReadUpload(c, field, allowed)
	if err != nil {
		return nil, err
	}
	if upload == nil {
		return nil, apperror.Validation(fmt.Sprintf("No %s file provided", field))
	}
	return fc.BuildFile(upload, prefix)
}

// BuildFile turns an upload into an unsaved File, pushing the blob to cloud storage when enabled
func (fc *FileController) BuildFile(upload *Upload, prefix string) (*model.File, error) {
	file := &model.File{}
	if err := fc.persistFileData(file, upload.Data, upload.Extension, prefix); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}
	return file, nil
}

// GetFile sends a stored file as a downloadable attachment when the caller may read it.
// @Summary Retrieve dowloadable attachment
// @Description Logos are public. A profile resume is readable by its applicant and by employers.
// @Description A resume attached to an application is readable by whoever can see that application.
// @Tags File
// @Produce octet-stream
// @Param Authorization header string false "Optional access token" default(Bearer <your access token>)
// @Param id path string true "ID of wanted file"
// @Success 200 {string} binary "Successfully retrieve file"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "File not found or not readable by the caller"
// @Failure 500 {object} utilities.ErrorResponse "Fail to send file content"
// @Router /files/{id} [get]
func (fc *FileController) GetFile(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utilities.RespondError(c, apperror.NotFound("File not found"))
		return
	}

	file, err := fc.Policy.GetFile(c.Request.Context(), middleware.ExtractIdentity(c), id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	fc.writeFileResponse(c, &file)
}

func (fc *FileController) writeFileResponse(c *gin.Context, file *model.File) {
	c.Writer.Header().Set("Content-Disposition", "attachment; filename="+fmt.Sprint(file.ID)+file.Extension)
	c.Writer.Header().Set("Content-Type", "application/octet-stream")

	if file.StorageObjectName != nil {
		if fc.Storage == nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: "Cloud storage is disabled while the requested file is stored remotely",
			})
			return
		}
		reader, size, err := fc.Storage.DownloadFile(*file.StorageObjectName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to download file from storage: %s", err.Error()),
			})
			return
		}
		defer func() {
			if err := reader.Close(); err != nil {
				log.WithError(err).Warn("failed to close storage reader")
			}
		}()

		if size > 0 {
			c.Writer.Header().Set("Content-Length", fmt.Sprint(size))
		}
		if _, err := io.Copy(c.Writer, reader); err != nil {
			fc.handleWriterError(c, err)
		}
		return
	}

	c.Writer.Header().Set("Content-Length", fmt.Sprint(len(file.Content)))
	if _, err := c.Writer.Write(file.Content); err != nil {
		fc.handleWriterError(c, err)
	}
}

func (fc *FileController) handleWriterError(c *gin.Context, err error) {
	log.WithError(err).Warn("failed to write file response")
	if !c.Writer.Written() {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to send file content",
		})
	} else {
		c.Abort()
	}
}

func (fc *FileController) persistFileData(file *model.File, fileBytes []byte, extension, prefix string) error {
	file.Extension = extension
	if fc.Storage == nil {
		file.Content = fileBytes
		file.StorageObjectName = nil
		return nil
	}

	objectName := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), extension)
	if err := fc.Storage.UploadFile(objectName, bytes.NewReader(fileBytes)); err != nil {
		return err
	}

	file.StorageObjectName = &objectName
	file.Content = nil
	return nil
}
