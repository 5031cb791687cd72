package handler

import (
	"github.com/gin-gonic/gin"

	reportapp "github.com/venuehq/backend/internal/application/report"
)

// ReportHandler handles cohort benchmark endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// RecordMetricRequest submits a venue's value for a benchmark metric
type RecordMetricRequest struct {
	Value float64 `json:"value" binding:"required"`
}

// CompareRequest parameterizes a cohort comparison
type CompareRequest struct {
	Value float64 `form:"value" binding:"required"`
}

// ExportResponse reports where an exported comparison was stored
type ExportResponse struct {
	Location string `json:"location"`
}

// RegisterRoutes registers benchmark routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	benchmarks := rg.Group("/benchmarks")
	{
		benchmarks.PUT("/metrics/:metric", h.RecordMetric)
		benchmarks.GET("/metrics/:metric/comparison", h.Compare)
		benchmarks.POST("/metrics/:metric/export", h.Export)
	}
}

// RecordMetric upserts the venue's value for a metric in the cohort pool
func (h *ReportHandler) RecordMetric(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	var req RecordMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.reportService.RecordMetric(c.Request.Context(), venueID, c.Param("metric"), req.Value); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Compare places the venue's value against cohort percentiles
func (h *ReportHandler) Compare(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	var req CompareRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	comparison, err := h.reportService.Compare(c.Request.Context(), venueID, c.Param("metric"), req.Value)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, comparison)
}

// Export writes the comparison as CSV to the configured export store and
// returns its location
func (h *ReportHandler) Export(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	var req RecordMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	location, err := h.reportService.ExportComparison(c.Request.Context(), venueID, c.Param("metric"), req.Value)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ExportResponse{Location: location})
}
