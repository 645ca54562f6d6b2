package mocks

import (
	"github.com/stretchr/testify/mock"

	"legalyze/internal/domain"
)

// MockTextExtractor is a mock implementation of port.TextExtractor.
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(data []byte, format domain.DocumentFormat) (string, error) {
	args := m.Called(data, format)
	return args.String(0), args.Error(1)
}
