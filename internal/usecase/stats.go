// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"repostats/internal/datefmt"
	"repostats/internal/domain"
	"repostats/internal/gateway"
)

// Service exposes the repository-analytics queries to the HTTP layer.
type Service interface {
	CommitActivity(ctx context.Context, owner, repo string, freq domain.Frequency) (map[string]int, error)
	PullRequestCounts(ctx context.Context, owner, repo string) (domain.PullRequestCounts, error)
	CodeFrequency(ctx context.Context, owner, repo string) ([]domain.CodeFrequencyEntry, error)
}

// StatsService is the concrete Service. It fetches raw statistics through
// the gateway and reshapes them for the UI.
type StatsService struct {
	fetcher gateway.Fetcher
	logger  *zap.Logger
}

// NewService creates a StatsService instance.
func NewService(fetcher gateway.Fetcher, logger *zap.Logger) Service {
	return &StatsService{
		fetcher: fetcher,
		logger:  logger,
	}
}

// CommitActivity fetches the weekly commit activity and buckets it at the
// requested granularity.
func (s *StatsService) CommitActivity(ctx context.Context, owner, repo string, freq domain.Frequency) (map[string]int, error) {
	weeks, err := s.fetcher.FetchCommitActivity(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	return BucketCommitActivity(weeks, freq), nil
}

// PullRequestCounts fetches the open and closed pull-request listings
// concurrently and tallies them. The two listings carry no cross-call
// invariant; each is complete on its own.
func (s *StatsService) PullRequestCounts(ctx context.Context, owner, repo string) (domain.PullRequestCounts, error) {
	var open, closed []domain.PullRequest

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		open, err = s.fetcher.FetchPullRequests(egCtx, owner, repo, "open")
		return err
	})
	eg.Go(func() error {
		var err error
		closed, err = s.fetcher.FetchPullRequests(egCtx, owner, repo, "closed")
		return err
	})
	if err := eg.Wait(); err != nil {
		return domain.PullRequestCounts{}, err
	}
	s.logger.Debug("pull request listings fetched",
		zap.Int("open", len(open)), zap.Int("closed", len(closed)))

	return TallyPullRequests(open, closed), nil
}

// CodeFrequency fetches weekly code churn and reshapes it for the UI.
func (s *StatsService) CodeFrequency(ctx context.Context, owner, repo string) ([]domain.CodeFrequencyEntry, error) {
	changes, err := s.fetcher.FetchCodeFrequency(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	return ReshapeCodeFrequency(changes), nil
}

// BucketCommitActivity groups weekly commit counts into calendar-aligned
// buckets keyed by normalized YYYY-MM-DD dates.
//
//   - week: one entry per input week, keyed by the week start.
//   - day: one entry per day with a non-zero count; zero days are omitted.
//   - month: weeks grouped by the UTC calendar month of their start, totals
//     summed, keyed by the first day of the month.
//
// A frequency outside day/week/month matches no branch and yields an empty
// map. Duplicate computed keys overwrite earlier entries.
func BucketCommitActivity(weeks []domain.WeeklyCommits, freq domain.Frequency) map[string]int {
	buckets := make(map[string]int)

	switch freq {
	case domain.FrequencyWeek:
		for _, w := range weeks {
			buckets[datefmt.Normalize(w.WeekStart)] = w.Total
		}

	case domain.FrequencyDay:
		for _, w := range weeks {
			weekStart := time.Unix(w.WeekStart, 0).UTC()
			for i, count := range w.Days {
				if count > 0 {
					buckets[datefmt.Normalize(weekStart.AddDate(0, 0, i))] = count
				}
			}
		}

	case domain.FrequencyMonth:
		monthTotals := make(map[time.Time]int)
		for _, w := range weeks {
			start := time.Unix(w.WeekStart, 0).UTC()
			firstOfMonth := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
			monthTotals[firstOfMonth] += w.Total
		}
		for firstOfMonth, total := range monthTotals {
			buckets[datefmt.Normalize(firstOfMonth)] = total
		}
	}

	return buckets
}

// TallyPullRequests counts open, merged and closed-but-unmerged pull
// requests. A closed pull request counts as merged when MergedAt is set.
func TallyPullRequests(open, closed []domain.PullRequest) domain.PullRequestCounts {
	merged := 0
	for _, pr := range closed {
		if pr.MergedAt != nil {
			merged++
		}
	}
	return domain.PullRequestCounts{
		Open:           len(open),
		ClosedUnmerged: len(closed) - merged,
		Merged:         merged,
	}
}

// ReshapeCodeFrequency converts weekly churn triples into dated entries,
// preserving input order. Addition and deletion values pass through as
// received; upstream reports deletions as negative numbers.
func ReshapeCodeFrequency(changes []domain.WeeklyCodeChange) []domain.CodeFrequencyEntry {
	entries := make([]domain.CodeFrequencyEntry, 0, len(changes))
	for _, c := range changes {
		entries = append(entries, domain.CodeFrequencyEntry{
			Date:      datefmt.Normalize(c.WeekStart),
			Additions: c.Additions,
			Deletions: c.Deletions,
		})
	}
	return entries
}
