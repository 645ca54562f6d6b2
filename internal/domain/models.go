package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Document is the text form of an uploaded file. The raw bytes are not kept.
type Document struct {
	FileName      string         `json:"file_name"`
	Format        DocumentFormat `json:"format"`
	Type          DocumentType   `json:"document_type"`
	ExtractedText string         `json:"-"`
}

// AnalysisResult is the fixed twelve-field analysis record.
type AnalysisResult struct {
	Summary          string   `json:"summary"`
	KeyTerms         []string `json:"key_terms"`
	MainClauses      []string `json:"main_clauses"`
	Risks            []string `json:"risks"`
	Recommendations  []string `json:"recommendations"`
	Parties          []string `json:"parties"`
	Jurisdiction     string   `json:"jurisdiction"`
	Obligations      []string `json:"obligations"`
	CriticalDates    []string `json:"critical_dates"`
	MissingOrUnusual []string `json:"missing_or_unusual"`
	ComplianceIssues []string `json:"compliance_issues"`
	NextSteps        []string `json:"next_steps"`
}

// NewAnalysisResult returns a record with every field at its empty default.
func NewAnalysisResult() *AnalysisResult {
	return &AnalysisResult{
		KeyTerms:         []string{},
		MainClauses:      []string{},
		Risks:            []string{},
		Recommendations:  []string{},
		Parties:          []string{},
		Obligations:      []string{},
		CriticalDates:    []string{},
		MissingOrUnusual: []string{},
		ComplianceIssues: []string{},
		NextSteps:        []string{},
	}
}

// DegradedResult is returned in place of an AnalysisResult when the model
// response could not be recovered. Raw keeps the response for inspection.
type DegradedResult struct {
	Error string `json:"error"`
	Raw   string `json:"raw"`
}

// AnalysisOutcome holds exactly one of Result or Degraded.
type AnalysisOutcome struct {
	Result   *AnalysisResult
	Degraded *DegradedResult
}

// OK reports whether a structured result was recovered.
func (o AnalysisOutcome) OK() bool {
	return o.Result != nil
}

// MarshalJSON encodes the outcome as either the analysis record or the
// {error, raw} shape.
func (o AnalysisOutcome) MarshalJSON() ([]byte, error) {
	if o.Result != nil {
		return json.Marshal(o.Result)
	}
	if o.Degraded != nil {
		return json.Marshal(o.Degraded)
	}
	return []byte("null"), nil
}

// UnmarshalJSON decodes either shape back into an outcome.
func (o *AnalysisOutcome) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if _, degraded := probe["error"]; degraded {
		var d DegradedResult
		if err := json.Unmarshal(data, &d); err != nil {
			return err
		}
		o.Result, o.Degraded = nil, &d
		return nil
	}
	r := NewAnalysisResult()
	if err := json.Unmarshal(data, r); err != nil {
		return err
	}
	o.Result, o.Degraded = r, nil
	return nil
}

// ConversationTurn is one question and the model's answer.
type ConversationTurn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// HistoryEntry is a persisted analysis, derived from a document but never
// containing the document itself.
type HistoryEntry struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	OwnerID      string       `db:"owner_id" json:"owner_id"`
	SessionID    uuid.UUID    `db:"session_id" json:"session_id"`
	FileName     string       `db:"file_name" json:"file_name"`
	DocumentType DocumentType `db:"document_type" json:"document_type"`
	ModelUsed    string       `db:"model_used" json:"model_used"`
	RiskScore    int          `db:"risk_score" json:"risk_score"`
	Degraded     bool         `db:"degraded" json:"degraded"`
	Outcome      JSONDocument `db:"outcome" json:"outcome"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
}

// JSONDocument is an encoded JSON value stored in a jsonb column.
type JSONDocument []byte

// Scan implements sql.Scanner.
func (d *JSONDocument) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = nil
	case []byte:
		*d = append((*d)[:0], v...)
	case string:
		*d = JSONDocument(v)
	default:
		return fmt.Errorf("scanning JSONDocument: unsupported type %T", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (d JSONDocument) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return string(d), nil
}

// MarshalJSON emits the stored document unchanged.
func (d JSONDocument) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

// UnmarshalJSON stores a copy of data.
func (d *JSONDocument) UnmarshalJSON(data []byte) error {
	*d = append((*d)[:0], data...)
	return nil
}
