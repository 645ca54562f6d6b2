package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrNoDocument          = errors.New("no document has been analyzed in this session")
	ErrEmptyQuestion       = errors.New("question must not be empty")
	ErrUnsupportedFormat   = errors.New("unsupported document format")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrAnalysisUnavailable = errors.New("no structured analysis available for this session")
	ErrStorageDisabled     = errors.New("report storage is not configured")
	ErrHistoryDisabled     = errors.New("analysis history is not configured")
	ErrUploadFailed        = errors.New("report upload to storage failed")
)

// ExtractionError reports a document that could not be converted to text.
type ExtractionError struct {
	Format DocumentFormat
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting text from %s: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ServiceError reports a failed exchange with the language model service.
type ServiceError struct {
	Provider   string
	Kind       ServiceErrorKind
	StatusCode int
	RetryAfter time.Duration
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Kind == ServiceErrorQuota {
		return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("%s %s error: %v", e.Provider, e.Kind, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a ServiceError of the given kind.
func NewServiceError(provider string, kind ServiceErrorKind, statusCode int, err error) *ServiceError {
	return &ServiceError{
		Provider:   provider,
		Kind:       kind,
		StatusCode: statusCode,
		Err:        err,
	}
}

// NewRateLimitError creates a quota ServiceError. If retryAfterSecs is 0, defaults to 60s.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *ServiceError {
	if retryAfterSecs <= 0 {
		retryAfterSecs = 60
	}
	return &ServiceError{
		Provider:   provider,
		Kind:       ServiceErrorQuota,
		StatusCode: 429,
		RetryAfter: time.Duration(retryAfterSecs) * time.Second,
		Err:        err,
	}
}
