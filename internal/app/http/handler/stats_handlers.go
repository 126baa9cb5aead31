package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"repostats/internal/app/dto"
	"repostats/internal/domain"
	"repostats/internal/gateway"
	"repostats/internal/githuburl"
)

// Every endpoint below follows the same degradation contract: upstream
// failures and unresolvable URLs are logged and answered with a 200 and an
// empty-equivalent body. The only non-200 this API produces is a 400 for a
// body that does not bind.

// Commits returns commit counts bucketed by the requested frequency.
func (h *Handler) Commits(c *gin.Context) {
	var req dto.RepoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	empty := dto.CommitFrequencyResponse{CommitFrequency: map[string]int{}}

	owner, repo, err := githuburl.Parse(req.URL)
	if err != nil {
		h.Log.Warn("unresolvable repository url", zap.String("url", req.URL), zap.Error(err))
		c.JSON(http.StatusOK, empty)
		return
	}

	freq := domain.ParseFrequency(req.Frequency)
	buckets, err := h.Stats.CommitActivity(c.Request.Context(), owner, repo, freq)
	if errors.Is(err, gateway.ErrStatsPending) {
		h.Metrics.StatsPendingTotal.WithLabelValues("commits").Inc()
		c.JSON(http.StatusOK, dto.MessageResponse{Message: statsPendingMessage})
		return
	}
	if err != nil {
		h.Metrics.UpstreamErrorsTotal.WithLabelValues("commits").Inc()
		h.Log.Error("commit activity fetch failed",
			zap.String("owner", owner), zap.String("repo", repo), zap.Error(err))
		c.JSON(http.StatusOK, empty)
		return
	}

	c.JSON(http.StatusOK, dto.CommitFrequencyResponse{CommitFrequency: buckets})
}

// PullRequests returns open/closed-unmerged/merged counts.
func (h *Handler) PullRequests(c *gin.Context) {
	var req dto.RepoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	owner, repo, err := githuburl.Parse(req.URL)
	if err != nil {
		h.Log.Warn("unresolvable repository url", zap.String("url", req.URL), zap.Error(err))
		c.JSON(http.StatusOK, domain.PullRequestCounts{})
		return
	}

	counts, err := h.Stats.PullRequestCounts(c.Request.Context(), owner, repo)
	if err != nil {
		h.Metrics.UpstreamErrorsTotal.WithLabelValues("pull_requests").Inc()
		h.Log.Error("pull request tally failed",
			zap.String("owner", owner), zap.String("repo", repo), zap.Error(err))
		c.JSON(http.StatusOK, domain.PullRequestCounts{})
		return
	}

	c.JSON(http.StatusOK, counts)
}

// CodeFrequency returns the weekly additions/deletions sequence.
func (h *Handler) CodeFrequency(c *gin.Context) {
	var req dto.RepoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	empty := []domain.CodeFrequencyEntry{}

	owner, repo, err := githuburl.Parse(req.URL)
	if err != nil {
		h.Log.Warn("unresolvable repository url", zap.String("url", req.URL), zap.Error(err))
		c.JSON(http.StatusOK, empty)
		return
	}

	entries, err := h.Stats.CodeFrequency(c.Request.Context(), owner, repo)
	if errors.Is(err, gateway.ErrStatsPending) {
		h.Metrics.StatsPendingTotal.WithLabelValues("code_frequency").Inc()
		c.JSON(http.StatusOK, dto.MessageResponse{Message: statsPendingMessage})
		return
	}
	if err != nil {
		h.Metrics.UpstreamErrorsTotal.WithLabelValues("code_frequency").Inc()
		h.Log.Error("code frequency fetch failed",
			zap.String("owner", owner), zap.String("repo", repo), zap.Error(err))
		c.JSON(http.StatusOK, empty)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// Health reports process liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

func (h *Handler) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: dto.Error{
			Code:    "BAD_REQUEST",
			Message: msg,
		},
	})
}
