package port

import "legalyze/internal/domain"

// TextExtractor converts a document into plain text.
type TextExtractor interface {
	Extract(data []byte, format domain.DocumentFormat) (string, error)
}
