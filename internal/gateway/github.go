// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST client.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"repostats/internal/domain"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
)

// ErrStatsPending signals GitHub's 202 response on the statistics
// endpoints: the numbers are still being computed and the caller should
// retry later. It is an informational condition, not a failure.
var ErrStatsPending = errors.New("github statistics are still being generated")

// Fetcher defines the behavior of a gateway for fetching repository
// statistics from GitHub.
type Fetcher interface {
	FetchCommitActivity(ctx context.Context, owner, repo string) ([]domain.WeeklyCommits, error)
	FetchCodeFrequency(ctx context.Context, owner, repo string) ([]domain.WeeklyCodeChange, error)
	FetchPullRequests(ctx context.Context, owner, repo, state string) ([]domain.PullRequest, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	client *github.Client
	logger *zap.Logger
}

// NewGitHubGateway creates a gateway backed by an authenticated REST
// client. Every outbound request is bounded by timeout. A non-empty
// baseURL switches the client to an alternate API host.
func NewGitHubGateway(token, baseURL string, timeout time.Duration, logger *zap.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}

	client := github.NewClient(httpClient)
	if baseURL != "" {
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid api base url %q: %w", baseURL, err)
		}
	}

	return &GitHubGateway{
		client: client,
		logger: logger,
	}, nil
}

// FetchCommitActivity retrieves the last year of weekly commit activity.
func (g *GitHubGateway) FetchCommitActivity(ctx context.Context, owner, repo string) ([]domain.WeeklyCommits, error) {
	g.logger.Debug("fetching commit activity", zap.String("owner", owner), zap.String("repo", repo))

	stats, _, err := g.client.Repositories.ListCommitActivity(ctx, owner, repo)
	if err != nil {
		if isAccepted(err) {
			return nil, ErrStatsPending
		}
		return nil, fmt.Errorf("failed to fetch commit activity: %w", err)
	}

	weeks := make([]domain.WeeklyCommits, 0, len(stats))
	for _, w := range stats {
		weeks = append(weeks, domain.WeeklyCommits{
			WeekStart: w.GetWeek().Unix(),
			Total:     w.GetTotal(),
			Days:      w.Days,
		})
	}
	return weeks, nil
}

// FetchCodeFrequency retrieves weekly addition/deletion totals.
func (g *GitHubGateway) FetchCodeFrequency(ctx context.Context, owner, repo string) ([]domain.WeeklyCodeChange, error) {
	g.logger.Debug("fetching code frequency", zap.String("owner", owner), zap.String("repo", repo))

	stats, _, err := g.client.Repositories.ListCodeFrequency(ctx, owner, repo)
	if err != nil {
		if isAccepted(err) {
			return nil, ErrStatsPending
		}
		return nil, fmt.Errorf("failed to fetch code frequency: %w", err)
	}

	changes := make([]domain.WeeklyCodeChange, 0, len(stats))
	for _, w := range stats {
		changes = append(changes, domain.WeeklyCodeChange{
			WeekStart: w.GetWeek().Unix(),
			Additions: w.GetAdditions(),
			Deletions: w.GetDeletions(),
		})
	}
	return changes, nil
}

// FetchPullRequests lists all pull requests in the given state, following
// pagination until the listing is exhausted.
func (g *GitHubGateway) FetchPullRequests(ctx context.Context, owner, repo, state string) ([]domain.PullRequest, error) {
	g.logger.Debug("fetching pull requests",
		zap.String("owner", owner), zap.String("repo", repo), zap.String("state", state))

	opts := &github.PullRequestListOptions{
		State:       state,
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var prs []domain.PullRequest
	for {
		page, resp, err := g.client.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s pull requests: %w", state, err)
		}
		for _, pr := range page {
			var mergedAt *time.Time
			if pr.MergedAt != nil {
				t := pr.MergedAt.Time
				mergedAt = &t
			}
			prs = append(prs, domain.PullRequest{MergedAt: mergedAt})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Debug("fetching next page of pull requests", zap.Int("page", resp.NextPage))
	}
	return prs, nil
}

// isAccepted reports whether err is go-github's marker for a 202 response.
func isAccepted(err error) bool {
	var accepted *github.AcceptedError
	return errors.As(err, &accepted)
}
