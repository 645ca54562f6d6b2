package port

import "context"

// Completion is the raw text returned by a language model.
type Completion struct {
	Text  string
	Model string
}

// LanguageModel sends a single prompt to a language model service and
// returns its raw text response. Implementations perform exactly one
// request per call and never retry.
type LanguageModel interface {
	Generate(ctx context.Context, prompt string) (*Completion, error)
}
