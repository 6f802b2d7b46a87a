package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aashish23092/va-benefits-estimator/config"
	"github.com/Aashish23092/va-benefits-estimator/export"
	"github.com/Aashish23092/va-benefits-estimator/metrics"
	"github.com/Aashish23092/va-benefits-estimator/service"
)

type RouterDeps struct {
	Config          *config.Config
	EstimateService *service.EstimateService
	Exporter        *export.Exporter
	Metrics         *metrics.Metrics
	Logger          *zap.Logger
	// OCRVersion is reported by /health; empty when unknown.
	OCRVersion string
}

func NewRouter(d RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(d.Logger))

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"service":    "VA Benefits Estimator",
			"ocr_engine": d.OCRVersion,
		})
	})
	router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	documentHandler := NewDocumentHandler(d.EstimateService, d.Config.MaxFileSize, d.Logger)
	calcHandler := NewCalcHandler(d.EstimateService, d.Exporter, d.Logger)

	api := router.Group("/api/v1")
	{
		documents := api.Group("/documents", RateLimit(d.Config.RateLimitPerSecond, d.Config.RateLimitBurst, d.Logger))
		{
			documents.POST("/dd214", documentHandler.ExtractDD214)
			documents.POST("/rating-decision", documentHandler.ExtractRatingDecision)
		}

		api.POST("/rating/combine", calcHandler.Combine)
		api.POST("/crsc/calculate", calcHandler.CalculateCRSC)
		api.POST("/evidence/map", calcHandler.MapEvidence)
		api.POST("/estimate", calcHandler.Estimate)
		api.POST("/estimate/export", calcHandler.ExportEstimate)
	}

	return router
}
