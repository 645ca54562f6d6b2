package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"legalyze/internal/config"
	"legalyze/internal/extractor"
	"legalyze/internal/handler"
	"legalyze/internal/llm"
	"legalyze/internal/llm/claude"
	"legalyze/internal/llm/gemini"
	"legalyze/internal/llm/openai"
	"legalyze/internal/port"
	"legalyze/internal/repository/postgres"
	"legalyze/internal/router"
	"legalyze/internal/service"
	"legalyze/internal/session"
	s3storage "legalyze/internal/storage/s3"
)

// @title legalyze API
// @version 1.0
// @description Upload a contract or other legal document, get a structured analysis and ask follow-up questions about it.
// @BasePath /api/v1
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	gin.SetMode(cfg.GinMode())
	log.Printf("starting legalyze (environment=%s, log level=%s, gin mode=%s)", cfg.Server.Environment, cfg.Log.Level, gin.Mode())

	// Register analysis service providers
	llm.RegisterProvider("gemini", gemini.Factory)
	llm.RegisterProvider("claude", claude.Factory)
	llm.RegisterProvider("openai", openai.Factory)

	model, err := llm.NewFromConfig(&cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize analysis service: %w", err)
	}

	// Optional history persistence
	var historyRepo port.HistoryRepository
	var pinger handler.Pinger
	if cfg.DB.Enabled {
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		historyRepo = postgres.NewHistoryRepo(db)
		pinger = db
	}

	// Optional report storage
	var storage port.ObjectStorage
	if cfg.S3.Enabled() {
		s3Client, err := s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		storage = s3Client
		log.Printf("Report publishing enabled (bucket %s)", cfg.S3.Bucket)
	}

	// Initialize services
	sessions := session.NewManager(cfg.Session.MaxSessions)
	analyzerSvc := service.NewAnalyzerService(sessions, extractor.New(), model, historyRepo)
	reportSvc := service.NewReportService(analyzerSvc, storage, &cfg.S3)

	// Initialize handlers
	r := router.Setup(router.Handlers{
		Analysis: handler.NewAnalysisHandler(analyzerSvc, cfg.Upload.MaxBytes()),
		Report:   handler.NewReportHandler(reportSvc),
		History:  handler.NewHistoryHandler(analyzerSvc),
		Health:   handler.NewHealthHandler(pinger),
	}, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
