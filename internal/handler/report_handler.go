package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"legalyze/internal/service"
)

// ReportHandler handles analysis report endpoints.
type ReportHandler struct {
	reports service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Download handles GET /api/v1/sessions/:id/report
// @Summary Download the session's analysis as an XLSX workbook
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Session ID"
// @Success 200 {file} file "XLSX workbook"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Failure 409 {object} ErrorResponseBody "No structured analysis available"
// @Router /sessions/{id}/report [get]
func (h *ReportHandler) Download(c *gin.Context) {
	file, err := h.reports.Export(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.FileName))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// Publish handles POST /api/v1/sessions/:id/report
// @Summary Publish the session's report to object storage
// @Tags reports
// @Produce json
// @Param id path string true "Session ID"
// @Success 201 {object} Response{data=service.PublishedReport}
// @Failure 409 {object} ErrorResponseBody "No structured analysis available"
// @Failure 501 {object} ErrorResponseBody "Report storage not configured"
// @Router /sessions/{id}/report [post]
func (h *ReportHandler) Publish(c *gin.Context) {
	pub, err := h.reports.Publish(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, pub)
}
