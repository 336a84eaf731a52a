package handlers

import (
	"net/http"

	"campground_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the staff reports.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// GetReportIndex lists the available reports alongside every reservation.
func (h *ReportHandler) GetReportIndex(c *gin.Context) {
	index, err := h.reportService.GetReportIndex(c.Request.Context(), requestContext(c))
	if err != nil {
		respondServiceError(c, err, "GetReportIndex", "Failed to build report index.")
		return
	}
	c.JSON(http.StatusOK, index)
}

// GetSalesReport sums the totals of completed reservations.
func (h *ReportHandler) GetSalesReport(c *gin.Context) {
	report, err := h.reportService.GetSalesReport(c.Request.Context(), requestContext(c))
	if err != nil {
		respondServiceError(c, err, "GetSalesReport", "Failed to build sales report.")
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetReservationReport returns monthly reservation counts and report rows.
func (h *ReportHandler) GetReservationReport(c *gin.Context) {
	report, err := h.reportService.GetReservationReport(c.Request.Context(), requestContext(c))
	if err != nil {
		respondServiceError(c, err, "GetReservationReport", "Failed to build reservation report.")
		return
	}
	c.JSON(http.StatusOK, report)
}
