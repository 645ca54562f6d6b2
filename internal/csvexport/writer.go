package csvexport

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"legalyze/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"File Name",
	"Document Type",
	"Model",
	"Risk Score",
	"Degraded",
	"Summary",
	"Jurisdiction",
	"Risk Count",
	"Parties",
	"Critical Dates",
	"Analysis ID",
	"Session ID",
	"Created At",
}

// Writer wraps csv.Writer for exporting analysis history as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteEntries converts a batch of history entries to CSV rows and writes them.
func (w *Writer) WriteEntries(entries []domain.HistoryEntry) error {
	for i := range entries {
		if err := w.csv.Write(entryToRow(&entries[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// entryToRow converts a single entry to a row. Analysis columns are left
// empty for degraded entries or an undecodable outcome.
func entryToRow(e *domain.HistoryEntry) []string {
	row := make([]string, len(columns))

	row[0] = e.FileName
	row[1] = string(e.DocumentType)
	row[2] = e.ModelUsed
	row[3] = strconv.Itoa(e.RiskScore)
	row[4] = formatBool(e.Degraded)
	row[10] = e.ID.String()
	row[11] = e.SessionID.String()
	row[12] = e.CreatedAt.Format(time.RFC3339)

	if e.Degraded || len(e.Outcome) == 0 {
		return row
	}

	var outcome domain.AnalysisOutcome
	if err := json.Unmarshal(e.Outcome, &outcome); err != nil || !outcome.OK() {
		return row
	}

	r := outcome.Result
	row[5] = r.Summary
	row[6] = r.Jurisdiction
	row[7] = strconv.Itoa(len(r.Risks))
	row[8] = strings.Join(r.Parties, "; ")
	row[9] = strings.Join(r.CriticalDates, "; ")

	return row
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.csv
func BuildFilename(name string, now time.Time) string {
	sanitized := SanitizeFilename(name)
	if sanitized == "" {
		sanitized = "history"
	}
	return fmt.Sprintf("%s_%s.csv", sanitized, now.Format("2006-01-02"))
}
