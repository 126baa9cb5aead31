// Package httpapi assembles the gin router for the analytics API.
package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"repostats/internal/app/http/handler"
	"repostats/internal/app/http/middleware"
	"repostats/internal/metrics"
)

func NewRouter(h *handler.Handler, m *metrics.Metrics, log *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(
		gin.Recovery(),
		middleware.ZapLogger(log),
		middleware.ZapRecovery(log),
		middleware.PromMetrics(m),
	)

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.POST("/api/commits", h.Commits)
	r.POST("/api/pull_requests", h.PullRequests)
	r.POST("/api/code_frequency", h.CodeFrequency)

	return r
}
