// Package extractor converts uploaded documents into plain text.
package extractor

import (
	"fmt"

	"legalyze/internal/domain"
)

// Extractor implements port.TextExtractor for the supported document formats.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns the plain text of data interpreted as format. Documents
// without any text layer yield an empty string, not an error.
func (e *Extractor) Extract(data []byte, format domain.DocumentFormat) (string, error) {
	var (
		text string
		err  error
	)
	switch format {
	case domain.FormatPDF:
		text, err = extractPDF(data)
	case domain.FormatDOCX:
		text, err = extractDocx(data)
	default:
		return "", &domain.ExtractionError{Format: format, Err: fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)}
	}
	if err != nil {
		return "", &domain.ExtractionError{Format: format, Err: err}
	}
	return text, nil
}
