// Package analysis recovers structured analysis records from model output.
package analysis

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"legalyze/internal/domain"
)

// Parse recovers an analysis record from a raw model response. It never
// fails: unrecoverable responses produce a degraded outcome that keeps the
// raw text.
func Parse(raw string) domain.AnalysisOutcome {
	result, err := Recover(raw)
	if err != nil {
		log.Printf("analysis.Parse: degraded result: %v", err)
		return domain.AnalysisOutcome{
			Degraded: &domain.DegradedResult{
				Error: fmt.Sprintf("failed to parse response: %v", err),
				Raw:   raw,
			},
		}
	}
	return domain.AnalysisOutcome{Result: result}
}

// Recover extracts the JSON object spanning the first '{' to the last '}' of
// raw and projects it onto an AnalysisResult. Responses holding several
// objects, or braces outside the intended object, produce a candidate that
// fails to decode.
func Recover(raw string) (*domain.AnalysisResult, error) {
	candidate, err := CandidateJSON(raw)
	if err != nil {
		return nil, err
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(candidate), &decoded); err != nil {
		return nil, &JSONDecodeError{Err: err, Raw: raw}
	}
	if err := CheckShape(decoded); err != nil {
		log.Printf("analysis.Recover: coercing fields: %v", err)
	}

	return project(decoded), nil
}

// CandidateJSON returns the substring of raw from the first '{' through the
// last '}' inclusive.
func CandidateJSON(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrEmptyResponse
	}
	start := strings.Index(raw, "{")
	if start == -1 {
		return "", ErrNoJSONFound
	}
	end := strings.LastIndex(raw, "}")
	if end == -1 {
		return "", ErrUnterminatedJSON
	}
	if start > end {
		return "", ErrMalformedStructure
	}
	return raw[start : end+1], nil
}

func project(m map[string]any) *domain.AnalysisResult {
	r := domain.NewAnalysisResult()
	r.Summary = stringField(m["summary"])
	r.KeyTerms = listField(m["key_terms"])
	r.MainClauses = listField(m["main_clauses"])
	r.Risks = listField(m["risks"])
	r.Recommendations = listField(m["recommendations"])
	r.Parties = listField(m["parties"])
	r.Jurisdiction = stringField(m["jurisdiction"])
	r.Obligations = listField(m["obligations"])
	r.CriticalDates = listField(m["critical_dates"])
	r.MissingOrUnusual = listField(m["missing_or_unusual"])
	r.ComplianceIssues = listField(m["compliance_issues"])
	r.NextSteps = listField(m["next_steps"])
	return r
}

func stringField(v any) string {
	s, _ := v.(string)
	return s
}

// listField keeps the elements of a JSON array as strings. Anything that is
// not an array yields an empty list.
func listField(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch t := item.(type) {
		case nil:
		case string:
			out = append(out, t)
		case float64:
			out = append(out, strconv.FormatFloat(t, 'f', -1, 64))
		case bool:
			out = append(out, strconv.FormatBool(t))
		default:
			b, err := json.Marshal(t)
			if err == nil {
				out = append(out, string(b))
			}
		}
	}
	return out
}
