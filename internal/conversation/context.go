// Package conversation keeps the per-session document text and Q&A log.
package conversation

import "legalyze/internal/domain"

// Context holds the analyzed document and the ordered question/answer turns
// asked about it. It is not safe for concurrent use; callers serialize access
// per session.
type Context struct {
	document domain.Document
	turns    []domain.ConversationTurn
}

// New starts an empty conversation about doc.
func New(doc domain.Document) *Context {
	return &Context{document: doc}
}

// Document returns the document the conversation is about.
func (c *Context) Document() domain.Document {
	return c.document
}

// DocumentText returns the extracted text used to ground answers.
func (c *Context) DocumentText() string {
	return c.document.ExtractedText
}

// RecordTurn appends a question and its answer.
func (c *Context) RecordTurn(question, answer string) domain.ConversationTurn {
	turn := domain.ConversationTurn{Question: question, Answer: answer}
	c.turns = append(c.turns, turn)
	return turn
}

// History returns a copy of the turns in the order they were recorded.
func (c *Context) History() []domain.ConversationTurn {
	out := make([]domain.ConversationTurn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of recorded turns.
func (c *Context) Len() int {
	return len(c.turns)
}
