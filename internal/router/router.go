package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "legalyze/docs"
	"legalyze/internal/handler"
	"legalyze/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Analysis *handler.AnalysisHandler
	Report   *handler.ReportHandler
	History  *handler.HistoryHandler
	Health   *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(h Handlers, corsOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Sessions
	sessions := v1.Group("/sessions")
	sessions.POST("", h.Analysis.CreateSession)
	sessions.DELETE("/:id", h.Analysis.EndSession)
	sessions.POST("/:id/document", h.Analysis.UploadDocument)
	sessions.GET("/:id/analysis", h.Analysis.GetAnalysis)
	sessions.POST("/:id/questions", h.Analysis.Ask)
	sessions.GET("/:id/questions", h.Analysis.History)
	sessions.GET("/:id/report", h.Report.Download)
	sessions.POST("/:id/report", h.Report.Publish)

	// Persisted history
	history := v1.Group("/history")
	history.GET("", h.History.List)
	history.GET("/export", h.History.Export)

	return r
}
