// Package report renders analyses as spreadsheet workbooks.
package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"legalyze/internal/domain"
)

// ContentType is the MIME type of the rendered workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SummarySheet is the name of the first sheet.
const SummarySheet = "Summary"

// Input is what a workbook is rendered from.
type Input struct {
	FileName     string
	DocumentType domain.DocumentType
	Model        string
	RiskScore    int
	GeneratedAt  time.Time
	Result       *domain.AnalysisResult
}

// ListSheet pairs a sheet name with a list field of the analysis.
type ListSheet struct {
	Name  string
	Items func(r *domain.AnalysisResult) []string
}

// ListSheets are rendered after the summary, in this order.
var ListSheets = []ListSheet{
	{"Key Terms", func(r *domain.AnalysisResult) []string { return r.KeyTerms }},
	{"Main Clauses", func(r *domain.AnalysisResult) []string { return r.MainClauses }},
	{"Risks", func(r *domain.AnalysisResult) []string { return r.Risks }},
	{"Recommendations", func(r *domain.AnalysisResult) []string { return r.Recommendations }},
	{"Parties", func(r *domain.AnalysisResult) []string { return r.Parties }},
	{"Obligations", func(r *domain.AnalysisResult) []string { return r.Obligations }},
	{"Critical Dates", func(r *domain.AnalysisResult) []string { return r.CriticalDates }},
	{"Missing or Unusual", func(r *domain.AnalysisResult) []string { return r.MissingOrUnusual }},
	{"Compliance Issues", func(r *domain.AnalysisResult) []string { return r.ComplianceIssues }},
	{"Next Steps", func(r *domain.AnalysisResult) []string { return r.NextSteps }},
}

// WriteXLSX renders the analysis as an XLSX workbook and returns its bytes.
func WriteXLSX(in Input) ([]byte, error) {
	if in.Result == nil {
		return nil, domain.ErrAnalysisUnavailable
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	generated := in.GeneratedAt
	if generated.IsZero() {
		generated = time.Now().UTC()
	}
	rows := [][2]any{
		{"File", in.FileName},
		{"Document Type", in.DocumentType.Label()},
		{"Model", in.Model},
		{"Risk Score", in.RiskScore},
		{"Jurisdiction", in.Result.Jurisdiction},
		{"Summary", in.Result.Summary},
		{"Generated At", generated.Format(time.RFC3339)},
	}
	for i, r := range rows {
		if err := setRow(f, SummarySheet, i+1, r[0], r[1]); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(SummarySheet, "A", "A", 18)
	_ = f.SetColWidth(SummarySheet, "B", "B", 100)

	for _, ls := range ListSheets {
		if _, err := f.NewSheet(ls.Name); err != nil {
			return nil, fmt.Errorf("creating sheet %s: %w", ls.Name, err)
		}
		if err := setRow(f, ls.Name, 1, "#", ls.Name); err != nil {
			return nil, err
		}
		for i, item := range ls.Items(in.Result) {
			if err := setRow(f, ls.Name, i+2, i+1, item); err != nil {
				return nil, err
			}
		}
		_ = f.SetColWidth(ls.Name, "A", "A", 6)
		_ = f.SetColWidth(ls.Name, "B", "B", 100)
	}

	idx, _ := f.GetSheetIndex(SummarySheet)
	f.SetActiveSheet(idx)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("writing %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
