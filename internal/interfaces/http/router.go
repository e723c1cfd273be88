package http

import (
	"github.com/gin-gonic/gin"

	"github.com/casetrace/casetrace/internal/application/analysis"
	"github.com/casetrace/casetrace/internal/config"
	"github.com/casetrace/casetrace/internal/infrastructure/monitoring/logging"
	appprom "github.com/casetrace/casetrace/internal/infrastructure/monitoring/prometheus"
)

// RouterDeps collects everything the router needs.  Collector may be nil
// when metrics exposition is disabled.
type RouterDeps struct {
	Config    *config.Config
	Service   *analysis.Service
	Metrics   *appprom.AppMetrics
	Collector *appprom.Collector
	Logger    logging.Logger
}

// NewRouter builds the gin engine with the full middleware chain and all
// API routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(ginMode(deps.Config.Server.Mode))

	engine := gin.New()
	engine.MaxMultipartMemory = deps.Config.Server.MaxUploadBytes

	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	engine.Use(RequestIDMiddleware())
	engine.Use(RecoveryMiddleware(logger))
	engine.Use(LoggingMiddleware(logger))
	engine.Use(CORSMiddleware())
	if deps.Metrics != nil {
		engine.Use(MetricsMiddleware(deps.Metrics))
	}

	handler := NewHandler(deps.Service, logger)

	api := engine.Group("/api")
	{
		api.POST("/analyze_text", handler.AnalyzeText)
		api.POST("/analyze_file", handler.AnalyzeFile)
		api.GET("/health", handler.Health)
	}

	if deps.Config.Metrics.Enabled && deps.Collector != nil {
		engine.GET(deps.Config.Metrics.Path, gin.WrapH(deps.Collector.Handler()))
	}

	return engine
}

func ginMode(mode string) string {
	switch mode {
	case "debug":
		return gin.DebugMode
	case "test":
		return gin.TestMode
	default:
		return gin.ReleaseMode
	}
}
