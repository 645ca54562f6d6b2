package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"legalyze/internal/config"
	"legalyze/internal/csvexport"
	"legalyze/internal/domain"
	"legalyze/internal/port"
	"legalyze/internal/report"
)

// ReportFile is a rendered analysis report.
type ReportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// PublishedReport points at a report uploaded to object storage.
type PublishedReport struct {
	Bucket    string    `json:"bucket"`
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ReportService exports session analyses as spreadsheets.
type ReportService interface {
	Export(ctx context.Context, sessionID string) (*ReportFile, error)
	Publish(ctx context.Context, sessionID string) (*PublishedReport, error)
}

type reportService struct {
	analyzer AnalyzerService
	storage  port.ObjectStorage
	cfg      *config.S3Config
	now      func() time.Time
}

// NewReportService creates a new ReportService. storage may be nil, in which
// case Publish returns ErrStorageDisabled.
func NewReportService(analyzer AnalyzerService, storage port.ObjectStorage, cfg *config.S3Config) ReportService {
	return &reportService{
		analyzer: analyzer,
		storage:  storage,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *reportService) Export(ctx context.Context, sessionID string) (*ReportFile, error) {
	out, err := s.analyzer.GetAnalysis(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !out.Analysis.OK() {
		return nil, domain.ErrAnalysisUnavailable
	}

	data, err := report.WriteXLSX(report.Input{
		FileName:     out.FileName,
		DocumentType: out.DocumentType,
		Model:        out.Model,
		RiskScore:    out.RiskScore,
		GeneratedAt:  s.now().UTC(),
		Result:       out.Analysis.Result,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}

	return &ReportFile{
		FileName:    reportFileName(out.FileName),
		ContentType: report.ContentType,
		Data:        data,
	}, nil
}

func (s *reportService) Publish(ctx context.Context, sessionID string) (*PublishedReport, error) {
	if s.storage == nil || s.cfg == nil || !s.cfg.Enabled() {
		return nil, domain.ErrStorageDisabled
	}

	file, err := s.Export(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	key := fmt.Sprintf("reports/%s/%s.xlsx", sessionID, now.Format("20060102T150405Z"))

	log.Printf("reportService.Publish: uploading %s (%d bytes) to %s/%s", file.FileName, len(file.Data), s.cfg.Bucket, key)

	if _, err := s.storage.Put(ctx, port.PutObjectInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(file.Data),
		ContentType: file.ContentType,
		FileName:    file.FileName,
		Metadata:    map[string]string{"session-id": sessionID},
	}); err != nil {
		log.Printf("reportService.Publish: upload failed: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	url, err := s.storage.PresignGet(ctx, s.cfg.Bucket, key, s.cfg.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("generating report URL: %w", err)
	}

	return &PublishedReport{
		Bucket:    s.cfg.Bucket,
		Key:       key,
		URL:       url,
		ExpiresAt: now.Add(time.Duration(s.cfg.PresignExpiry) * time.Second),
	}, nil
}

func reportFileName(documentName string) string {
	base := csvexport.SanitizeFilename(strings.TrimSuffix(filepath.Base(documentName), filepath.Ext(documentName)))
	if base == "" {
		base = "document"
	}
	return base + "-analysis.xlsx"
}
