package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"prep-backend/internal/analyses"
	"prep-backend/internal/services/health"
	"prep-backend/internal/shared/config"
	"prep-backend/internal/shared/metrics"
	"prep-backend/internal/shared/server/middleware"
	"prep-backend/internal/shared/server/respond"
)

const createGroup = "CREATE"

// RouterDeps carries the handlers mounted under /api/v1.
type RouterDeps struct {
	Config          config.Config
	AnalysisHandler *analyses.Handler
	Health          *health.Service
	// Limiter is shared by analysis-creating routes; nil builds a fresh one.
	Limiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		status, ok := deps.Health.Status(c.Request.Context())
		if !ok {
			respond.JSON(c, http.StatusServiceUnavailable, status)
			return
		}
		respond.JSON(c, http.StatusOK, status)
	})
	api.GET("/metrics", metrics.Handler())

	if deps.AnalysisHandler != nil {
		if deps.Config.AnalyzeRatePerSec > 0 && deps.Config.AnalyzeBurst > 0 {
			deps.AnalysisHandler.CreateLimit = middleware.RateLimit(middleware.RateLimitConfig{
				DefaultGroup: createGroup,
				Limiter:      deps.Limiter,
				Rules: map[string]middleware.RateLimitRule{
					createGroup: {Rate: deps.Config.AnalyzeRatePerSec, Burst: deps.Config.AnalyzeBurst},
				},
			})
		}
		deps.AnalysisHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})
	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
