package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Giovannytrotta/Programa-SENTYA/internal/service"
	"github.com/Giovannytrotta/Programa-SENTYA/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar"
)

// ExportHandler is the export module HTTP handler.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportWorkshopReport downloads the workshop attendance report as xlsx.
// GET /api/v1/attendance/workshop/:id/report.xlsx
func (h *ExportHandler) ExportWorkshopReport(c *gin.Context) {
	workshopID := c.Param("id")
	if workshopID == "" {
		response.BadRequest(c, "workshop id is required")
		return
	}

	buf, filename, err := h.exportSvc.WorkshopReportXLSX(c.Request.Context(), workshopID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.File(c, filename, contentTypeXLSX, buf.Bytes())
}

// ExportWorkshopCalendar downloads the workshop session calendar as ics.
// GET /api/v1/sessions/workshop/:id/calendar.ics
func (h *ExportHandler) ExportWorkshopCalendar(c *gin.Context) {
	workshopID := c.Param("id")
	if workshopID == "" {
		response.BadRequest(c, "workshop id is required")
		return
	}

	buf, filename, err := h.exportSvc.WorkshopCalendarICS(c.Request.Context(), workshopID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.File(c, filename, contentTypeICS, buf.Bytes())
}

// handleExportError maps export business errors to HTTP responses.
func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWorkshopNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrExportNoSessions):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c)
	}
}
