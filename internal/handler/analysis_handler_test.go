package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"legalyze/internal/domain"
	"legalyze/internal/handler"
	"legalyze/internal/service"
	"legalyze/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAnalysisHandler(maxBytes int64) (*handler.AnalysisHandler, *mocks.MockAnalyzerService) {
	mockSvc := new(mocks.MockAnalyzerService)
	return handler.NewAnalysisHandler(mockSvc, maxBytes), mockSvc
}

func multipartUpload(t *testing.T, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func sessionContext(w *httptest.ResponseRecorder, method, target string, body *bytes.Buffer, sessionID string) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	if body == nil {
		c.Request, _ = http.NewRequest(method, target, http.NoBody)
	} else {
		c.Request, _ = http.NewRequest(method, target, body)
	}
	c.Params = gin.Params{{Key: "id", Value: sessionID}}
	return c
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAnalysisHandler_CreateSession(t *testing.T) {
	h, mockSvc := newAnalysisHandler(1024)
	info := &service.SessionInfo{ID: "sess-1", CreatedAt: time.Now()}
	mockSvc.On("CreateSession", mock.Anything).Return(info, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/sessions", http.NoBody)

	h.CreateSession(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"session_id":"sess-1"`)
	mockSvc.AssertExpectations(t)
}

func TestAnalysisHandler_EndSession_NotFound(t *testing.T) {
	h, mockSvc := newAnalysisHandler(1024)
	mockSvc.On("EndSession", mock.Anything, "missing").Return(domain.ErrSessionNotFound)

	w := httptest.NewRecorder()
	c := sessionContext(w, http.MethodDelete, "/api/v1/sessions/missing", nil, "missing")

	h.EndSession(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "SESSION_NOT_FOUND", resp.Error.Code)
}

func TestAnalysisHandler_UploadDocument_Success(t *testing.T) {
	h, mockSvc := newAnalysisHandler(1024)
	content := []byte("fake docx bytes")

	out := &service.AnalyzeOutput{
		SessionID:    "sess-1",
		FileName:     "lease.docx",
		DocumentType: domain.DocumentTypeRentalAgreement,
		Model:        "gemini-2.5-flash",
		RiskScore:    4,
		Analysis:     domain.AnalysisOutcome{Result: domain.NewAnalysisResult()},
	}
	mockSvc.On("AnalyzeDocument", mock.Anything, mock.MatchedBy(func(in service.AnalyzeInput) bool {
		return in.SessionID == "sess-1" &&
			in.OwnerID == "user-7" &&
			in.FileName == "lease.docx" &&
			in.Format == domain.FormatDOCX &&
			bytes.Equal(in.Data, content)
	})).Return(out, nil)

	body, contentType := multipartUpload(t, "lease.docx", content)
	w := httptest.NewRecorder()
	c := sessionContext(w, http.MethodPost, "/api/v1/sessions/sess-1/document", body, "sess-1")
	c.Request.Header.Set("Content-Type", contentType)
	c.Request.Header.Set(handler.OwnerHeader, "user-7")

	h.UploadDocument(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"document_type":"rental_agreement"`)
	assert.Contains(t, w.Body.String(), `"risks":[]`)
	mockSvc.AssertExpectations(t)
}

func TestAnalysisHandler_UploadDocument_DegradedIsStillOK(t *testing.T) {
	h, mockSvc := newAnalysisHandler(1024)
	out := &service.AnalyzeOutput{
		SessionID: "sess-1",
		FileName:  "lease.pdf",
		RiskScore: 1,
		Analysis: domain.AnalysisOutcome{Degraded: &domain.DegradedResult{
			Error: "failed to parse response: no JSON object found in response",
			Raw:   "sorry",
		}},
	}
	mockSvc.On("AnalyzeDocument", mock.Anything, mock.Anything).Return(out, nil)

	body, contentType := multipartUpload(t, "lease.pdf", []byte("%PDF"))
	w := httptest.NewRecorder()
	c := sessionContext(w, http.MethodPost, "/api/v1/sessions/sess-1/document", body, "sess-1")
	c.Request.Header.Set("Content-Type", contentType)

	h.UploadDocument(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"raw":"sorry"`)
}

func TestAnalysisHandler_UploadDocument_MissingFile(t *testing.T) {
	h, mockSvc := newAnalysisHandler(1024)

	w := httptest.NewRecorder()
	c := sessionContext(w, http.MethodPost, "/api/v1/sessions/sess-1/document", bytes.NewBufferString("{}"), "sess-1")
	c.Request.Header.Set("Content-Type", "application/json")

	h.UploadDocument(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_FILE", decodeResponse(t, w).Error.Code)
	mockSvc.AssertNotCalled(t, "AnalyzeDocument", mock.Anything, mock.Anything)
}

func TestAnalysisHandler_UploadDocument_UnsupportedFormat(t *testing.T) {
	h, mockSvc := newAnalysisHandler(1024)

	body, contentType := multipartUpload(t, "notes.txt", []byte("hello"))
	w := httptest.NewRecorder()
	c := sessionContext(w, http.MethodPost, "/api/v1/sessions/sess-1/document", body, "sess-1")
	c.Request.Header.Set("Content-Type", contentType)

	h.UploadDocument(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNSUPPORTED_FORMAT", decodeResponse(t, w).Error.Code)
	mockSvc.AssertNotCalled(t, "AnalyzeDocument", mock.Anything, mock.Anything)
}

func TestAnalysisHandler_UploadDocument_TooLarge(t *testing.T) {
	h, mockSvc := newAnalysisHandler(8)

	body, contentType := multipartUpload(t, "big.pdf", bytes.Repeat([]byte("x"), 64))
	w := httptest.NewRecorder()
	c := sessionContext(w, http.MethodPost, "/api/v1/sessions/sess-1/document", body, "sess-1")
	c.Request.Header.Set("Content-Type", contentType)

	h.UploadDocument(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "FILE_TOO_LARGE", decodeResponse(t, w).Error.Code)
	mockSvc.AssertNotCalled(t, "AnalyzeDocument", mock.Anything, mock.Anything)
}

func TestAnalysisHandler_UploadDocument_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "extraction failure",
			err:        &domain.ExtractionError{Format: domain.FormatPDF, Err: errors.New("bad xref")},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "EXTRACTION_FAILED",
		},
		{
			name:       "upstream failure",
			err:        domain.NewServiceError("gemini", domain.ServiceErrorUpstream, 500, errors.New("boom")),
			wantStatus: http.StatusBadGateway,
			wantCode:   "ANALYSIS_SERVICE_ERROR",
		},
		{
			name:       "auth failure",
			err:        domain.NewServiceError("claude", domain.ServiceErrorAuth, 401, errors.New("bad key")),
			wantStatus: http.StatusBadGateway,
			wantCode:   "ANALYSIS_SERVICE_AUTH",
		},
		{
			name:       "unknown session",
			err:        domain.ErrSessionNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "SESSION_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mockSvc := newAnalysisHandler(1024)
			mockSvc.On("AnalyzeDocument", mock.Anything, mock.Anything).Return(nil, tt.err)

			body, contentType := multipartUpload(t, "doc.pdf", []byte("%PDF-1.4"))
			w := httptest.NewRecorder()
			c := sessionContext(w, http.MethodPost, "/api/v1/sessions/sess-1/document", body, "sess-1")
			c.Request.Header.Set("Content-Type", contentType)

			h.UploadDocument(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decodeResponse(t, w).Error.Code)
		})
	}
}

func TestAnalysisHandler_UploadDocument_RateLimitedSetsRetryAfter(t *testing.T) {
	h, mockSvc := newAnalysisHandler(1024)
	mockSvc.On("AnalyzeDocument", mock.Anything, mock.Anything).
		Return(nil, domain.NewRateLimitError("gemini", errors.New("quota"), 42))

	body, contentType := multipartUpload(t, "doc.docx", []byte("PK"))
	w := httptest.NewRecorder()
	c := sessionContext(w, http.MethodPost, "/api/v1/sessions/sess-1/document", body, "sess-1")
	c.Request.Header.Set("Content-Type", contentType)

	h.UploadDocument(c)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "42", w.Header().Get("Retry-After"))
	assert.Equal(t, "ANALYSIS_SERVICE_RATE_LIMITED", decodeResponse(t, w).Error.Code)
}

func TestAnalysisHandler_GetAnalysis_NoDocument(t *testing.T) {
	h, mockSvc := newAnalysisHandler(1024)
	mockSvc.On("GetAnalysis", mock.Anything, "sess-1").Return(nil, domain.ErrNoDocument)

	w := httptest.NewRecorder()
	c := sessionContext(w, http.MethodGet, "/api/v1/sessions/sess-1/analysis", nil, "sess-1")

	h.GetAnalysis(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "NO_DOCUMENT", decodeResponse(t, w).Error.Code)
}

func TestAnalysisHandler_Ask_Success(t *testing.T) {
	h, mockSvc := newAnalysisHandler(1024)
	turn := &domain.ConversationTurn{Question: "Is the deposit refundable?", Answer: "Yes, within 30 days."}
	mockSvc.On("Ask", mock.Anything, "sess-1", "Is the deposit refundable?").Return(turn, nil)

	w := httptest.NewRecorder()
	c := sessionContext(w, http.MethodPost, "/api/v1/sessions/sess-1/questions",
		bytes.NewBufferString(`{"question": "Is the deposit refundable?"}`), "sess-1")
	c.Request.Header.Set("Content-Type", "application/json")

	h.Ask(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"answer":"Yes, within 30 days."`)
	mockSvc.AssertExpectations(t)
}

func TestAnalysisHandler_Ask_EmptyQuestionReachesService(t *testing.T) {
	h, mockSvc := newAnalysisHandler(1024)
	mockSvc.On("Ask", mock.Anything, "sess-1", "   ").Return(nil, domain.ErrEmptyQuestion)

	w := httptest.NewRecorder()
	c := sessionContext(w, http.MethodPost, "/api/v1/sessions/sess-1/questions",
		bytes.NewBufferString(`{"question": "   "}`), "sess-1")
	c.Request.Header.Set("Content-Type", "application/json")

	h.Ask(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EMPTY_QUESTION", decodeResponse(t, w).Error.Code)
}

func TestAnalysisHandler_Ask_InvalidBody(t *testing.T) {
	h, mockSvc := newAnalysisHandler(1024)

	w := httptest.NewRecorder()
	c := sessionContext(w, http.MethodPost, "/api/v1/sessions/sess-1/questions",
		bytes.NewBufferString(`not json`), "sess-1")
	c.Request.Header.Set("Content-Type", "application/json")

	h.Ask(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeResponse(t, w).Error.Code)
	mockSvc.AssertNotCalled(t, "Ask", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalysisHandler_History(t *testing.T) {
	h, mockSvc := newAnalysisHandler(1024)
	turns := []domain.ConversationTurn{
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
	}
	mockSvc.On("History", mock.Anything, "sess-1").Return(turns, nil)

	w := httptest.NewRecorder()
	c := sessionContext(w, http.MethodGet, "/api/v1/sessions/sess-1/questions", nil, "sess-1")

	h.History(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Less(t, strings.Index(body, `"q1"`), strings.Index(body, `"q2"`))
}
