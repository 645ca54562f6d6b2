// Package prompt renders the analysis and chat prompts sent to the language model.
package prompt

import (
	"strings"

	"legalyze/internal/domain"
)

// AnalysisFields lists the keys the analysis prompt asks the model to return,
// in the order they are presented.
var AnalysisFields = []string{
	"summary",
	"key_terms",
	"main_clauses",
	"risks",
	"recommendations",
	"parties",
	"jurisdiction",
	"obligations",
	"critical_dates",
	"missing_or_unusual",
	"compliance_issues",
	"next_steps",
}

// BuildAnalysisPrompt returns the structured-analysis prompt for a document.
// The document text is embedded in full.
func BuildAnalysisPrompt(documentText string, docType domain.DocumentType) string {
	var sb strings.Builder
	sb.WriteString(`You are an expert legal document analyst reviewing a ` + docType.Label() + ` (document type: ` + string(docType) + `).

Fill each field as defined below:

1. summary: A 2-3 sentence plain English summary of the document. Avoid legal jargon.
2. key_terms: Important legal terms or phrases, each with a simple non-legal definition (e.g. "Indemnity: one party promises to cover losses if something goes wrong").
3. main_clauses: The main sections or clauses of the document, each explained briefly in plain English.
4. risks: Potential risks, unfair obligations or concerning clauses for the reader.
5. recommendations: Practical suggestions about what the reader should pay attention to or clarify.
6. parties: The main parties involved, each with a short description of their role.
7. jurisdiction: The governing law or legal jurisdiction.
8. obligations: The key duties or actions each party must perform, prefixed with the party that owes them.
9. critical_dates: Important dates, deadlines or timeframes.
10. missing_or_unusual: Clauses that are missing or unusual (e.g. "No termination clause found").
11. compliance_issues: Explicit compliance or regulatory concerns (e.g. data privacy, employment law, consumer protection).
12. next_steps: Action items or questions the reader should raise before agreeing or signing.

Respond ONLY with a JSON object of exactly this shape:

{
  "summary": "2-3 sentence plain English summary",
  "key_terms": ["term: definition", "..."],
  "main_clauses": ["clause explained", "..."],
  "risks": ["risk", "..."],
  "recommendations": ["recommendation", "..."],
  "parties": ["Party: role", "..."],
  "jurisdiction": "governing law or jurisdiction",
  "obligations": ["Party: obligation", "..."],
  "critical_dates": ["date or deadline", "..."],
  "missing_or_unusual": ["missing or unusual clause", "..."],
  "compliance_issues": ["compliance concern", "..."],
  "next_steps": ["question or action", "..."]
}

Rules:
- "summary" and "jurisdiction" are strings; every other field is an array of short strings.
- If information is not found, use an empty string ("") or an empty array ([]).
- Do not add any field that is not listed above.
- Do not write any explanation, markdown or text outside the JSON object.
- Keep the language concise and accessible for non-lawyers.

Document:
`)
	sb.WriteString(documentText)
	return sb.String()
}

// BuildChatPrompt returns the prompt for a follow-up question about a document.
func BuildChatPrompt(question, documentText string) string {
	var sb strings.Builder
	sb.WriteString("Based on this legal document, answer the user's question in simple, clear language.\n\n")
	sb.WriteString("Document:\n")
	sb.WriteString(documentText)
	sb.WriteString("\n\nUser question: ")
	sb.WriteString(question)
	sb.WriteString("\n\nProvide a helpful, accurate answer that a non-lawyer can understand.")
	return sb.String()
}
