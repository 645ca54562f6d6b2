package conversation_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legalyze/internal/conversation"
	"legalyze/internal/domain"
)

func TestContext_HistoryPreservesInsertionOrder(t *testing.T) {
	c := conversation.New(domain.Document{ExtractedText: "lease text"})

	for i := 0; i < 50; i++ {
		c.RecordTurn(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	history := c.History()
	require.Len(t, history, 50)
	for i, turn := range history {
		assert.Equal(t, fmt.Sprintf("q%d", i), turn.Question)
		assert.Equal(t, fmt.Sprintf("a%d", i), turn.Answer)
	}
	assert.Equal(t, 50, c.Len())
}

func TestContext_HistoryIsACopy(t *testing.T) {
	c := conversation.New(domain.Document{})
	c.RecordTurn("q", "a")

	history := c.History()
	history[0].Answer = "tampered"

	assert.Equal(t, "a", c.History()[0].Answer)
}

func TestContext_EmptyHistory(t *testing.T) {
	c := conversation.New(domain.Document{})

	history := c.History()

	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestContext_Document(t *testing.T) {
	doc := domain.Document{FileName: "lease.docx", Format: domain.FormatDOCX, Type: domain.DocumentTypeRentalAgreement, ExtractedText: "tenant"}
	c := conversation.New(doc)

	assert.Equal(t, doc, c.Document())
	assert.Equal(t, "tenant", c.DocumentText())
}

func TestContext_ReplacingDocumentStartsFreshHistory(t *testing.T) {
	old := conversation.New(domain.Document{ExtractedText: "old"})
	old.RecordTurn("q", "a")

	replacement := conversation.New(domain.Document{ExtractedText: "new"})

	assert.Empty(t, replacement.History())
	assert.Equal(t, "new", replacement.DocumentText())
}
