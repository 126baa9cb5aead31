// Package githuburl extracts the (owner, repo) pair from a repository URL.
package githuburl

import (
	"fmt"
	"net/url"
	"strings"
)

// Parse resolves a GitHub repository URL to its owner and repository name.
// It accepts https://github.com/owner/repo style URLs (with or without a
// trailing .git or extra path segments) and bare owner/repo shorthand.
func Parse(raw string) (owner, repo string, err error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", "", fmt.Errorf("empty repository url")
	}

	path := trimmed
	if strings.Contains(trimmed, "://") {
		u, err := url.Parse(trimmed)
		if err != nil {
			return "", "", fmt.Errorf("invalid repository url %q: %w", raw, err)
		}
		path = u.Path
	} else if at := strings.Index(trimmed, "@"); at >= 0 && strings.Contains(trimmed, ":") {
		// git@github.com:owner/repo.git
		path = trimmed[strings.Index(trimmed, ":")+1:]
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository url %q does not contain owner/repo", raw)
	}

	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}
