package analysis

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyResponse      = errors.New("empty response received from model")
	ErrNoJSONFound        = errors.New("no JSON object found in response")
	ErrUnterminatedJSON   = errors.New("no closing brace found in response")
	ErrMalformedStructure = errors.New("invalid JSON structure: opening brace after closing brace")
)

// JSONDecodeError reports a candidate JSON text that did not decode. Raw is
// the complete model response.
type JSONDecodeError struct {
	Err error
	Raw string
}

func (e *JSONDecodeError) Error() string {
	return fmt.Sprintf("decoding JSON: %v", e.Err)
}

func (e *JSONDecodeError) Unwrap() error {
	return e.Err
}
