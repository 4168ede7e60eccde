package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dailytrack/internal/services"
)

// DashboardHandler handles the dashboard summary and the monthly report.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
	reportService    services.ReportServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer, reportService services.ReportServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, reportService: reportService}
}

// GetDashboard returns the aggregated dashboard view for one day.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	today, err := todayParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.dashboardService.GetSummary(today)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetMonthlyReport returns finance and habit totals for the current month.
func (h *DashboardHandler) GetMonthlyReport(c *gin.Context) {
	today, err := todayParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.GetMonthlyReport(today)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
