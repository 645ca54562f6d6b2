package handler

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"legalyze/internal/csvexport"
	"legalyze/internal/service"
)

// exportPageSize is the page size used when streaming history to CSV.
const exportPageSize = 100

// HistoryHandler handles persisted analysis history endpoints.
type HistoryHandler struct {
	analyzer service.AnalyzerService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(analyzer service.AnalyzerService) *HistoryHandler {
	return &HistoryHandler{analyzer: analyzer}
}

// List handles GET /api/v1/history
// @Summary List persisted analyses for an owner, newest first
// @Tags history
// @Produce json
// @Param X-User-ID header string true "Owner id"
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit" default(20)
// @Success 200 {object} Response{data=[]domain.HistoryEntry,meta=PagMeta}
// @Failure 400 {object} ErrorResponseBody "Missing owner"
// @Failure 501 {object} ErrorResponseBody "History not configured"
// @Router /history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	owner := c.GetHeader(OwnerHeader)
	if owner == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_OWNER", "X-User-ID header is required")
		return
	}
	offset, limit := parsePagination(c)

	entries, total, err := h.analyzer.ListHistory(c.Request.Context(), owner, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Export handles GET /api/v1/history/export
// @Summary Export an owner's analysis history as CSV
// @Tags history
// @Produce text/csv
// @Param X-User-ID header string true "Owner id"
// @Success 200 {file} file "CSV file"
// @Failure 400 {object} ErrorResponseBody "Missing owner"
// @Failure 501 {object} ErrorResponseBody "History not configured"
// @Router /history/export [get]
func (h *HistoryHandler) Export(c *gin.Context) {
	owner := c.GetHeader(OwnerHeader)
	if owner == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_OWNER", "X-User-ID header is required")
		return
	}

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		HandleError(c, err)
		return
	}

	for offset := 0; ; offset += exportPageSize {
		entries, total, err := h.analyzer.ListHistory(c.Request.Context(), owner, offset, exportPageSize)
		if err != nil {
			HandleError(c, err)
			return
		}
		if err := w.WriteEntries(entries); err != nil {
			HandleError(c, err)
			return
		}
		if len(entries) == 0 || offset+len(entries) >= total {
			break
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("HistoryHandler.Export: csv flush: %v", err)
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename("analysis_history_"+owner, time.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
