package v1

import (
	"errors"
	"io"
	"net/http"

	"github.com/bloodlink-registry/apperrors"
	"github.com/bloodlink-registry/dto"
	"github.com/bloodlink-registry/middleware"
	"github.com/bloodlink-registry/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps a service error onto the error envelope. Unexpected
// errors are logged and never shown to the client.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var (
		validation *apperrors.ValidationError
		conflict   *apperrors.ConflictError
		authz      *apperrors.AuthorizationError
		missing    *apperrors.NotFoundError
	)

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Validation failed",
			"errors":  validation.Fields,
		})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": "Conflict",
			"errors":  conflict.Fields,
		})
	case errors.As(err, &authz) && authz.Unauthenticated:
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":   "error",
			"message":  "Please log in to access this page.",
			"redirect": middleware.LoginPath,
		})
	case errors.As(err, &authz):
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": authz.Error(),
		})
	case errors.As(err, &missing):
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": missing.Error(),
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": services.ErrInvalidCredentials.Error(),
		})
	default:
		_ = c.Error(err)
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Internal server error",
		})
	}
}

// uploadFormOverhead is the room left for form fields and multipart framing
// on top of the upload size limit
const uploadFormOverhead = 64 * 1024

func respondBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"status":  "error",
			"message": "Request body too large",
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

func respondImage(c *gin.Context, img dto.Image) {
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, img.ContentType, img.Data)
}

// readUpload reads an optional multipart file. At most maxBytes+1 bytes are
// read so the upload policy can still report an oversized file.
func readUpload(c *gin.Context, field string, maxBytes int64) (*dto.FileUpload, error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, err
	}
	return &dto.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
