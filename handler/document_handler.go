package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aashish23092/va-benefits-estimator/dto"
	"github.com/Aashish23092/va-benefits-estimator/service"
)

type DocumentHandler struct {
	estimateService *service.EstimateService
	maxFileSize     int64
	logger          *zap.Logger
}

func NewDocumentHandler(estimateService *service.EstimateService, maxFileSize int64, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		estimateService: estimateService,
		maxFileSize:     maxFileSize,
		logger:          logger,
	}
}

// readUpload validates the multipart "file" field and reads it into memory.
func (h *DocumentHandler) readUpload(c *gin.Context) (*dto.DocumentUploadRequest, []byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil && err != http.ErrMissingFile {
		return nil, nil, fmt.Errorf("%w: %v", dto.ErrMissingFile, err)
	}

	request := &dto.DocumentUploadRequest{
		File:     fileHeader,
		Password: c.PostForm("password"),
	}
	if err := request.Validate(h.maxFileSize); err != nil {
		return nil, nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > h.maxFileSize {
		return nil, nil, fmt.Errorf("%w: exceeds %d bytes", dto.ErrFileTooLarge, h.maxFileSize)
	}
	return request, data, nil
}

// ExtractDD214 handles POST /documents/dd214
func (h *DocumentHandler) ExtractDD214(c *gin.Context) {
	request, data, err := h.readUpload(c)
	if err != nil {
		sendError(c, h.logger, extractionStatus(err), codeInvalidRequest, "Invalid upload", err)
		return
	}

	response, err := h.estimateService.ParseDD214(c.Request.Context(), request.File.Filename, data, request.Password)
	if err != nil {
		sendError(c, h.logger, extractionStatus(err), codeExtractionFailed, "Failed to extract DD-214", err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// ExtractRatingDecision handles POST /documents/rating-decision
func (h *DocumentHandler) ExtractRatingDecision(c *gin.Context) {
	request, data, err := h.readUpload(c)
	if err != nil {
		sendError(c, h.logger, extractionStatus(err), codeInvalidRequest, "Invalid upload", err)
		return
	}

	response, err := h.estimateService.ParseRatingDecision(c.Request.Context(), request.File.Filename, data, request.Password)
	if err != nil {
		sendError(c, h.logger, extractionStatus(err), codeExtractionFailed, "Failed to extract rating decision", err)
		return
	}
	c.JSON(http.StatusOK, response)
}
