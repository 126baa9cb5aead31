// Package handler implements the HTTP endpoints of the analytics API.
package handler

import (
	"go.uber.org/zap"

	"repostats/internal/metrics"
	"repostats/internal/usecase"
)

// statsPendingMessage is returned when the upstream signals that the
// requested statistics are still being computed.
const statsPendingMessage = "GitHub is generating the statistics. Please try again in a moment."

type Handler struct {
	Stats   usecase.Service
	Metrics *metrics.Metrics
	Log     *zap.Logger
}

func New(stats usecase.Service, m *metrics.Metrics, log *zap.Logger) *Handler {
	return &Handler{
		Stats:   stats,
		Metrics: m,
		Log:     log,
	}
}
