package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/regoline/nina-controle/internal/application/service"
	"github.com/regoline/nina-controle/internal/presentation/http/dto/response"
)

// ReportHandler handles profit/loss report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary handles GET /reports/summary
func (h *ReportHandler) Summary(c *gin.Context) {
	windowDays, _ := strconv.Atoi(c.DefaultQuery("window_days", "0"))

	var asOf time.Time
	if asOfStr := c.Query("as_of"); asOfStr != "" {
		parsed, err := time.Parse("2006-01-02", asOfStr)
		if err != nil {
			response.BadRequest(c, "Invalid as_of date, expected YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	summary, err := h.reportService.Summary(c.Request.Context(), asOf, windowDays)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report retrieved successfully", summary)
}

// Recent handles GET /reports/recent
func (h *ReportHandler) Recent(c *gin.Context) {
	activity, err := h.reportService.Recent(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Recent activity retrieved successfully", activity)
}
