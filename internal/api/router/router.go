package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ete-kpi/config"
	"ete-kpi/internal/api/handler"
	"ete-kpi/internal/api/middleware"
	"ete-kpi/internal/observability"
)

// Setup builds the Gin engine. limiter may be nil, in which case the KPI
// routes are not rate limited.
func Setup(cfg *config.Config, h *handler.Handler, metrics *observability.Metrics, limiter middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
	r.Use(metrics.Middleware())

	// ── infra ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// KPI reports
		reports := v1.Group("/kpi")
		reports.Use(middleware.RateLimit(limiter, cfg.Server.RateLimit.Limit, cfg.Server.RateLimit.Window))
		{
			reports.GET("/quality", h.KPI.Quality)
			reports.GET("/availability", h.KPI.Availability)
			reports.GET("/efficiency", h.KPI.Efficiency)
			reports.GET("/dead-time-by-reason", h.KPI.DeadTimeBreakdown)
			reports.GET("/key-metrics", h.KPI.KeyMetrics)
			reports.GET("/dashboard", h.KPI.Dashboard)
		}

		// reference data
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/hours", h.Catalog.ListHours)
			catalog.GET("/lines", h.Catalog.ListLines)
			catalog.GET("/lines/:id/processes", h.Catalog.ListProcessesByLine)
			catalog.GET("/lines/:id/machines", h.Catalog.ListMachinesByLine)
			catalog.GET("/processes/:id/machines", h.Catalog.ListMachinesByProcess)
			catalog.GET("/codes", h.Catalog.ListCodes)
			catalog.GET("/codes/:id/reasons", h.Catalog.ListReasonsByCode)
			catalog.GET("/work-shifts", h.Catalog.ListWorkShifts)
			catalog.GET("/machines", h.Catalog.ListMachines)
			catalog.GET("/part-numbers/:partNumber/validate", h.Catalog.ValidatePartNumber)
		}

		// production events
		production := v1.Group("/production")
		{
			production.GET("", h.Production.List)
			production.POST("", h.Production.Register)
			production.GET("/export", h.Production.Export)
		}
	}

	return r
}
