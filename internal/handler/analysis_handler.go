package handler

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"legalyze/internal/domain"
	"legalyze/internal/service"
)

// OwnerHeader carries the opaque owner id set by whatever authenticates upstream.
const OwnerHeader = "X-User-ID"

// AnalysisHandler handles session, document analysis and Q&A endpoints.
type AnalysisHandler struct {
	analyzer     service.AnalyzerService
	maxFileBytes int64
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analyzer service.AnalyzerService, maxFileBytes int64) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer, maxFileBytes: maxFileBytes}
}

// CreateSession handles POST /api/v1/sessions
// @Summary Create an analysis session
// @Tags sessions
// @Produce json
// @Success 201 {object} Response{data=service.SessionInfo} "Session created"
// @Router /sessions [post]
func (h *AnalysisHandler) CreateSession(c *gin.Context) {
	info, err := h.analyzer.CreateSession(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, info)
}

// EndSession handles DELETE /api/v1/sessions/:id
// @Summary End a session and discard its document and conversation
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Router /sessions/{id} [delete]
func (h *AnalysisHandler) EndSession(c *gin.Context) {
	if err := h.analyzer.EndSession(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "session ended"})
}

// UploadDocument handles POST /api/v1/sessions/:id/document
// @Summary Upload and analyze a document
// @Description Extracts text from a PDF or DOCX, classifies it and returns the structured analysis.
// @Description A response the analysis service returned in an unexpected shape yields {error, raw} with status 200.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Session ID"
// @Param file formData file true "Document to analyze (PDF or DOCX)"
// @Param X-User-ID header string false "Owner id used for analysis history"
// @Success 200 {object} Response{data=service.AnalyzeOutput} "Analysis result"
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported format"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 422 {object} ErrorResponseBody "Text extraction failed"
// @Failure 429 {object} ErrorResponseBody "Analysis service rate limited"
// @Failure 502 {object} ErrorResponseBody "Analysis service failed"
// @Router /sessions/{id}/document [post]
func (h *AnalysisHandler) UploadDocument(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	format, err := domain.ParseDocumentFormat(header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		HandleError(c, err)
		return
	}

	if h.maxFileBytes > 0 && header.Size > h.maxFileBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	reader := io.Reader(file)
	if h.maxFileBytes > 0 {
		reader = io.LimitReader(file, h.maxFileBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		log.Printf("AnalysisHandler.UploadDocument: reading upload: %v", err)
		RespondError(c, http.StatusBadRequest, "INVALID_FILE", "could not read uploaded file")
		return
	}
	if h.maxFileBytes > 0 && int64(len(data)) > h.maxFileBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	out, err := h.analyzer.AnalyzeDocument(c.Request.Context(), service.AnalyzeInput{
		SessionID: c.Param("id"),
		OwnerID:   c.GetHeader(OwnerHeader),
		FileName:  header.Filename,
		Format:    format,
		Data:      data,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, out)
}

// GetAnalysis handles GET /api/v1/sessions/:id/analysis
// @Summary Get the current analysis of a session
// @Tags documents
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response{data=service.AnalyzeOutput}
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Failure 409 {object} ErrorResponseBody "No document analyzed yet"
// @Router /sessions/{id}/analysis [get]
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	out, err := h.analyzer.GetAnalysis(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, out)
}

// Ask handles POST /api/v1/sessions/:id/questions
// @Summary Ask a question about the session's document
// @Tags questions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body AskRequest true "Question"
// @Success 200 {object} Response{data=domain.ConversationTurn}
// @Failure 400 {object} ErrorResponseBody "Empty question"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Failure 409 {object} ErrorResponseBody "No document analyzed yet"
// @Failure 502 {object} ErrorResponseBody "Analysis service failed"
// @Router /sessions/{id}/questions [post]
func (h *AnalysisHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body must be {\"question\": \"...\"}")
		return
	}

	turn, err := h.analyzer.Ask(c.Request.Context(), c.Param("id"), req.Question)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, turn)
}

// History handles GET /api/v1/sessions/:id/questions
// @Summary List the questions asked in a session, oldest first
// @Tags questions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response{data=[]domain.ConversationTurn}
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Router /sessions/{id}/questions [get]
func (h *AnalysisHandler) History(c *gin.Context) {
	turns, err := h.analyzer.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, turns)
}
