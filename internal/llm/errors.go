package llm

import (
	"fmt"
	"net/http"
	"strconv"

	"legalyze/internal/domain"
)

// ParseRetryAfterHeader parses a Retry-After header value into seconds.
// Returns 0 if the value is empty or not a valid integer.
func ParseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return secs
}

// StatusError maps a non-200 provider response to a ServiceError.
func StatusError(provider string, resp *http.Response, body []byte) *domain.ServiceError {
	baseErr := fmt.Errorf("%s API error (status %d): %s", provider, resp.StatusCode, truncate(string(body), 500))
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.NewServiceError(provider, domain.ServiceErrorAuth, resp.StatusCode, baseErr)
	case http.StatusTooManyRequests:
		return domain.NewRateLimitError(provider, baseErr, ParseRetryAfterHeader(resp.Header.Get("Retry-After")))
	default:
		return domain.NewServiceError(provider, domain.ServiceErrorUpstream, resp.StatusCode, baseErr)
	}
}

// NetworkError wraps a transport or read failure.
func NetworkError(provider string, err error) *domain.ServiceError {
	return domain.NewServiceError(provider, domain.ServiceErrorNetwork, 0, err)
}

// EmptyError reports a response that carried no text.
func EmptyError(provider, detail string) *domain.ServiceError {
	return domain.NewServiceError(provider, domain.ServiceErrorEmpty, http.StatusOK, fmt.Errorf("empty response from API: %s", detail))
}

// DecodeError reports an envelope that could not be unmarshaled.
func DecodeError(provider string, err error) *domain.ServiceError {
	return domain.NewServiceError(provider, domain.ServiceErrorUpstream, http.StatusOK, fmt.Errorf("unmarshaling response: %w", err))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
