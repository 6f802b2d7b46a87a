package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aashish23092/va-benefits-estimator/dto"
	"github.com/Aashish23092/va-benefits-estimator/export"
	"github.com/Aashish23092/va-benefits-estimator/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CalcHandler serves the calculations that work on JSON input rather than
// uploads.
type CalcHandler struct {
	estimateService *service.EstimateService
	exporter        *export.Exporter
	logger          *zap.Logger
}

func NewCalcHandler(estimateService *service.EstimateService, exporter *export.Exporter, logger *zap.Logger) *CalcHandler {
	return &CalcHandler{
		estimateService: estimateService,
		exporter:        exporter,
		logger:          logger,
	}
}

// Combine handles POST /rating/combine
func (h *CalcHandler) Combine(c *gin.Context) {
	var req dto.CombineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, h.logger, http.StatusBadRequest, codeInvalidRequest, "Invalid combine request", err)
		return
	}
	c.JSON(http.StatusOK, h.estimateService.Combine(req.Ratings))
}

// CalculateCRSC handles POST /crsc/calculate
func (h *CalcHandler) CalculateCRSC(c *gin.Context) {
	var req dto.CRSCInput
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, h.logger, http.StatusBadRequest, codeInvalidRequest, "Invalid CRSC request", err)
		return
	}
	c.JSON(http.StatusOK, h.estimateService.CalculateCRSC(req))
}

// MapEvidence handles POST /evidence/map
func (h *CalcHandler) MapEvidence(c *gin.Context) {
	var req dto.EvidenceMapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, h.logger, http.StatusBadRequest, codeInvalidRequest, "Invalid evidence request", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mappings": h.estimateService.MapEvidence(req)})
}

// Estimate handles POST /estimate
func (h *CalcHandler) Estimate(c *gin.Context) {
	var req dto.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, h.logger, http.StatusBadRequest, codeInvalidRequest, "Invalid estimate request", err)
		return
	}
	c.JSON(http.StatusOK, h.estimateService.Estimate(req))
}

// ExportEstimate handles POST /estimate/export and returns the report as a
// workbook download.
func (h *CalcHandler) ExportEstimate(c *gin.Context) {
	var req dto.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, h.logger, http.StatusBadRequest, codeInvalidRequest, "Invalid estimate request", err)
		return
	}

	f, err := h.exporter.Export(h.estimateService.Estimate(req))
	if err != nil {
		sendError(c, h.logger, http.StatusInternalServerError, codeExportFailed, "Failed to build workbook", err)
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		sendError(c, h.logger, http.StatusInternalServerError, codeExportFailed, "Failed to write workbook", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="benefit-estimate.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
