package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"legalyze/internal/domain"
	"legalyze/internal/service"
)

// MockAnalyzerService is a mock implementation of service.AnalyzerService.
type MockAnalyzerService struct {
	mock.Mock
}

func (m *MockAnalyzerService) CreateSession(ctx context.Context) (*service.SessionInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionInfo), args.Error(1)
}

func (m *MockAnalyzerService) AnalyzeDocument(ctx context.Context, input service.AnalyzeInput) (*service.AnalyzeOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnalyzeOutput), args.Error(1)
}

func (m *MockAnalyzerService) GetAnalysis(ctx context.Context, sessionID string) (*service.AnalyzeOutput, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnalyzeOutput), args.Error(1)
}

func (m *MockAnalyzerService) Ask(ctx context.Context, sessionID, question string) (*domain.ConversationTurn, error) {
	args := m.Called(ctx, sessionID, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversationTurn), args.Error(1)
}

func (m *MockAnalyzerService) History(ctx context.Context, sessionID string) ([]domain.ConversationTurn, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConversationTurn), args.Error(1)
}

func (m *MockAnalyzerService) EndSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockAnalyzerService) ListHistory(ctx context.Context, ownerID string, offset, limit int) ([]domain.HistoryEntry, int, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.HistoryEntry), args.Int(1), args.Error(2)
}
