// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// Frequency selects the bucketing granularity for commit activity.
type Frequency string

const (
	FrequencyDay   Frequency = "day"
	FrequencyWeek  Frequency = "week"
	FrequencyMonth Frequency = "month"
)

// ParseFrequency maps the inbound frequency field to a Frequency.
// An empty value defaults to week. Unrecognized values pass through
// unchanged; the bucketer produces an empty result for them.
func ParseFrequency(s string) Frequency {
	if s == "" {
		return FrequencyWeek
	}
	return Frequency(s)
}

// WeeklyCommits holds one week of commit activity as reported by the
// upstream API. Weeks are Sunday-aligned; Days[i] is the commit count on
// day i of the week starting at WeekStart.
type WeeklyCommits struct {
	WeekStart int64
	Total     int
	Days      []int
}

// WeeklyCodeChange holds one week of code churn. Deletions are negative,
// as reported upstream.
type WeeklyCodeChange struct {
	WeekStart int64
	Additions int
	Deletions int
}

// CodeFrequencyEntry is the UI-facing shape of one week of code churn.
type CodeFrequencyEntry struct {
	Date      string `json:"date"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// PullRequest carries the single field the tally needs. MergedAt is nil
// for pull requests that were never merged.
type PullRequest struct {
	MergedAt *time.Time
}

// PullRequestCounts is the tally of a repository's pull requests.
type PullRequestCounts struct {
	Open           int `json:"open"`
	ClosedUnmerged int `json:"closed_unmerged"`
	Merged         int `json:"merged"`
}
