package file

import (
	"JobBoard-backend/internal/apperror"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// MaxUploadBytes is the largest resume or logo accepted
const MaxUploadBytes = 10 << 20

var (
	// ResumeExtensions are accepted for resumes
	ResumeExtensions = map[string]bool{
		".pdf":  true,
		".doc":  true,
		".docx": true,
	}
	// ImageExtensions are accepted for logos
	ImageExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
	}
)

// Upload is a file read from a multipart form
type Upload struct {
	Data      []byte
	Extension string
}

// ReadUpload reads the multipart file field. It returns nil without error when the field is absent.
func ReadUpload(c *gin.Context, field string, allowed map[string]bool) (*Upload, error) {
	rawFile, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		return nil, apperror.New(http.StatusRequestEntityTooLarge, "File size is larger than 10 MB", apperror.ErrValidation)
	}
	if err != nil {
		return nil, apperror.Validation(fmt.Sprintf("Failed to retrieve file: %s", err.Error()))
	}

	if rawFile.Size > MaxUploadBytes {
		return nil, apperror.New(http.StatusRequestEntityTooLarge, "File size is larger than 10 MB", apperror.ErrValidation)
	}

	extension := strings.ToLower(filepath.Ext(rawFile.Filename))
	if !allowed[extension] {
		return nil, apperror.New(http.StatusUnsupportedMediaType,
			fmt.Sprintf("Unsupported file extension: %s", extension), apperror.ErrValidation)
	}

	f, err := rawFile.Open()
	if err != nil {
		return nil, fmt.Errorf("cannot open file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("failed to close uploaded file")
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}

	return &Upload{Data: data, Extension: extension}, nil
}
