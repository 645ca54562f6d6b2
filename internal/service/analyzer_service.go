package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"legalyze/internal/analysis"
	"legalyze/internal/classifier"
	"legalyze/internal/conversation"
	"legalyze/internal/domain"
	"legalyze/internal/port"
	"legalyze/internal/prompt"
	"legalyze/internal/session"
)

// SessionInfo describes a newly created session.
type SessionInfo struct {
	ID        string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

// AnalyzeInput is the DTO for document analysis requests.
type AnalyzeInput struct {
	SessionID string
	OwnerID   string
	FileName  string
	Format    domain.DocumentFormat
	Data      []byte
}

// AnalyzeOutput is the analysis of the session's current document.
type AnalyzeOutput struct {
	SessionID    string                 `json:"session_id"`
	FileName     string                 `json:"file_name"`
	DocumentType domain.DocumentType    `json:"document_type"`
	Model        string                 `json:"model"`
	RiskScore    int                    `json:"risk_score"`
	Analysis     domain.AnalysisOutcome `json:"analysis"`
}

// AnalyzerService runs the analysis pipeline and document Q&A for sessions.
type AnalyzerService interface {
	CreateSession(ctx context.Context) (*SessionInfo, error)
	AnalyzeDocument(ctx context.Context, input AnalyzeInput) (*AnalyzeOutput, error)
	GetAnalysis(ctx context.Context, sessionID string) (*AnalyzeOutput, error)
	Ask(ctx context.Context, sessionID, question string) (*domain.ConversationTurn, error)
	History(ctx context.Context, sessionID string) ([]domain.ConversationTurn, error)
	EndSession(ctx context.Context, sessionID string) error
	ListHistory(ctx context.Context, ownerID string, offset, limit int) ([]domain.HistoryEntry, int, error)
}

type analyzerService struct {
	sessions    *session.Manager
	extractor   port.TextExtractor
	model       port.LanguageModel
	historyRepo port.HistoryRepository
}

// NewAnalyzerService creates a new AnalyzerService. historyRepo may be nil,
// in which case analyses are not persisted.
func NewAnalyzerService(
	sessions *session.Manager,
	extractor port.TextExtractor,
	model port.LanguageModel,
	historyRepo port.HistoryRepository,
) AnalyzerService {
	return &analyzerService{
		sessions:    sessions,
		extractor:   extractor,
		model:       model,
		historyRepo: historyRepo,
	}
}

func (s *analyzerService) CreateSession(_ context.Context) (*SessionInfo, error) {
	sess := s.sessions.Create()
	log.Printf("analyzerService.CreateSession: created session %s", sess.ID)
	return &SessionInfo{ID: sess.ID, CreatedAt: sess.CreatedAt}, nil
}

func (s *analyzerService) AnalyzeDocument(ctx context.Context, input AnalyzeInput) (*AnalyzeOutput, error) {
	sess, err := s.sessions.Get(input.SessionID)
	if err != nil {
		return nil, err
	}
	sess.Lock()
	defer sess.Unlock()

	log.Printf("analyzerService.AnalyzeDocument: session %s analyzing %s (%s, %d bytes)",
		sess.ID, input.FileName, input.Format, len(input.Data))

	text, err := s.extractor.Extract(input.Data, input.Format)
	if err != nil {
		log.Printf("analyzerService.AnalyzeDocument: extraction failed for %s: %v", input.FileName, err)
		return nil, err
	}

	docType := classifier.Classify(text)
	completion, err := s.model.Generate(ctx, prompt.BuildAnalysisPrompt(text, docType))
	if err != nil {
		log.Printf("analyzerService.AnalyzeDocument: analysis request failed for %s: %v", input.FileName, err)
		return nil, err
	}

	outcome := analysis.Parse(completion.Text)
	doc := domain.Document{
		FileName:      input.FileName,
		Format:        input.Format,
		Type:          docType,
		ExtractedText: text,
	}

	sess.Document = &doc
	sess.Conversation = conversation.New(doc)
	sess.Outcome = &outcome
	sess.Model = completion.Model
	sess.RiskScore = analysis.RiskScore(outcome.Result)

	out := snapshot(sess)
	log.Printf("analyzerService.AnalyzeDocument: session %s classified %s as %s (degraded=%t, risk=%d)",
		sess.ID, input.FileName, docType, !outcome.OK(), out.RiskScore)

	s.saveHistory(ctx, input.OwnerID, out)
	return out, nil
}

// saveHistory persists the analysis. Failures are logged, never surfaced.
func (s *analyzerService) saveHistory(ctx context.Context, ownerID string, out *AnalyzeOutput) {
	if s.historyRepo == nil {
		return
	}
	if ownerID == "" {
		ownerID = out.SessionID
	}
	raw, err := json.Marshal(out.Analysis)
	if err != nil {
		log.Printf("analyzerService.saveHistory: encoding outcome: %v", err)
		return
	}
	sessionID, err := uuid.Parse(out.SessionID)
	if err != nil {
		sessionID = uuid.Nil
	}
	entry := &domain.HistoryEntry{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		SessionID:    sessionID,
		FileName:     out.FileName,
		DocumentType: out.DocumentType,
		ModelUsed:    out.Model,
		RiskScore:    out.RiskScore,
		Degraded:     !out.Analysis.OK(),
		Outcome:      raw,
	}
	if err := s.historyRepo.Create(ctx, entry); err != nil {
		log.Printf("analyzerService.saveHistory: failed to save history for session %s: %v", out.SessionID, err)
	}
}

func (s *analyzerService) GetAnalysis(_ context.Context, sessionID string) (*AnalyzeOutput, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.Lock()
	defer sess.Unlock()

	if !sess.HasDocument() || sess.Outcome == nil {
		return nil, domain.ErrNoDocument
	}
	return snapshot(sess), nil
}

func (s *analyzerService) Ask(ctx context.Context, sessionID, question string) (*domain.ConversationTurn, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrEmptyQuestion
	}

	sess.Lock()
	defer sess.Unlock()

	if !sess.HasDocument() {
		return nil, domain.ErrNoDocument
	}

	completion, err := s.model.Generate(ctx, prompt.BuildChatPrompt(question, sess.Conversation.DocumentText()))
	if err != nil {
		log.Printf("analyzerService.Ask: question failed for session %s: %v", sess.ID, err)
		return nil, err
	}

	turn := sess.Conversation.RecordTurn(question, completion.Text)
	log.Printf("analyzerService.Ask: session %s answered question %d", sess.ID, sess.Conversation.Len())
	return &turn, nil
}

func (s *analyzerService) History(_ context.Context, sessionID string) ([]domain.ConversationTurn, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.Lock()
	defer sess.Unlock()

	if !sess.HasDocument() {
		return []domain.ConversationTurn{}, nil
	}
	return sess.Conversation.History(), nil
}

func (s *analyzerService) EndSession(_ context.Context, sessionID string) error {
	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	log.Printf("analyzerService.EndSession: ended session %s", sessionID)
	return nil
}

func (s *analyzerService) ListHistory(ctx context.Context, ownerID string, offset, limit int) ([]domain.HistoryEntry, int, error) {
	if s.historyRepo == nil {
		return nil, 0, domain.ErrHistoryDisabled
	}
	entries, total, err := s.historyRepo.ListByOwner(ctx, ownerID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("listing history: %w", err)
	}
	return entries, total, nil
}

// snapshot copies the session's analysis state. Caller holds the session lock.
func snapshot(sess *session.Session) *AnalyzeOutput {
	return &AnalyzeOutput{
		SessionID:    sess.ID,
		FileName:     sess.Document.FileName,
		DocumentType: sess.Document.Type,
		Model:        sess.Model,
		RiskScore:    sess.RiskScore,
		Analysis:     *sess.Outcome,
	}
}
