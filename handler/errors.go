package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aashish23092/va-benefits-estimator/dto"
)

const (
	codeInvalidRequest   = "INVALID_REQUEST"
	codeExtractionFailed = "EXTRACTION_FAILED"
	codeExportFailed     = "EXPORT_FAILED"
	codeRateLimited      = "RATE_LIMITED"
)

// sendError sends a structured error response
func sendError(c *gin.Context, logger *zap.Logger, statusCode int, code, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		logger.Warn(message, zap.Error(err), zap.Int("status", statusCode), zap.String("path", c.FullPath()))
	}

	c.AbortWithStatusJSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: errorMsg,
		Code:    statusCode,
	})
}

// extractionStatus maps document errors to HTTP status codes.
func extractionStatus(err error) int {
	switch {
	case errors.Is(err, dto.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, dto.ErrMissingFile), errors.Is(err, dto.ErrUnsupportedFileType):
		return http.StatusBadRequest
	case errors.Is(err, dto.ErrNoText):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
