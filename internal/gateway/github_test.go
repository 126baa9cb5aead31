package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repostats/internal/domain"

	"go.uber.org/zap"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL

	gw := &GitHubGateway{
		client: client,
		logger: zap.NewNop(),
	}

	return gw, server
}

func TestGitHubGateway_FetchCommitActivity(t *testing.T) {
	testCases := []struct {
		name           string
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		expected       []domain.WeeklyCommits
		expectedErr    error
		expectedErrMsg string
	}{
		{
			name: "happy path - weekly activity decoded",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.URL.Path, "/repos/any-owner/any-repo/stats/commit_activity")
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `[{"week": 1709424000, "total": 8, "days": [0, 2, 0, 5, 0, 0, 1]}]`)
			},
			expected: []domain.WeeklyCommits{
				{WeekStart: 1709424000, Total: 8, Days: []int{0, 2, 0, 5, 0, 0, 1}},
			},
		},
		{
			name: "202 - statistics still being generated",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusAccepted)
			},
			expectedErr: ErrStatsPending,
		},
		{
			name: "error case - GitHub API returns an error",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"message": "Internal Server Error"}`)
			},
			expectedErrMsg: "failed to fetch commit activity",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gw, _ := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))

			weeks, err := gw.FetchCommitActivity(context.Background(), "any-owner", "any-repo")

			switch {
			case tc.expectedErr != nil:
				assert.ErrorIs(t, err, tc.expectedErr)
			case tc.expectedErrMsg != "":
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, weeks)
			}
		})
	}
}

func TestGitHubGateway_FetchCodeFrequency(t *testing.T) {
	testCases := []struct {
		name           string
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		expected       []domain.WeeklyCodeChange
		expectedErr    error
		expectedErrMsg string
	}{
		{
			name: "happy path - weekly churn triples decoded",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.URL.Path, "/repos/any-owner/any-repo/stats/code_frequency")
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `[[1709424000, 1124, -435], [1710028800, 10, -4]]`)
			},
			expected: []domain.WeeklyCodeChange{
				{WeekStart: 1709424000, Additions: 1124, Deletions: -435},
				{WeekStart: 1710028800, Additions: 10, Deletions: -4},
			},
		},
		{
			name: "202 - statistics still being generated",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusAccepted)
			},
			expectedErr: ErrStatsPending,
		},
		{
			name: "error case - GitHub API returns an error",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			expectedErrMsg: "failed to fetch code frequency",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gw, _ := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))

			changes, err := gw.FetchCodeFrequency(context.Background(), "any-owner", "any-repo")

			switch {
			case tc.expectedErr != nil:
				assert.ErrorIs(t, err, tc.expectedErr)
			case tc.expectedErrMsg != "":
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, changes)
			}
		})
	}
}

func TestGitHubGateway_FetchPullRequests(t *testing.T) {
	t.Run("happy path - merged_at carried through", func(t *testing.T) {
		gw, _ := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Path, "/repos/any-owner/any-repo/pulls")
			assert.Equal(t, "closed", r.URL.Query().Get("state"))
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, `[{"number": 1, "merged_at": "2024-01-01T00:00:00Z"}, {"number": 2, "merged_at": null}]`)
		}))

		prs, err := gw.FetchPullRequests(context.Background(), "any-owner", "any-repo", "closed")

		assert.NoError(t, err)
		require.Len(t, prs, 2)
		require.NotNil(t, prs[0].MergedAt)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), prs[0].MergedAt.UTC())
		assert.Nil(t, prs[1].MergedAt)
	})

	t.Run("pagination - follows the Link header until exhausted", func(t *testing.T) {
		var server *httptest.Server
		handler := func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("page") == "2" {
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `[{"number": 3, "merged_at": null}]`)
				return
			}
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/any-owner/any-repo/pulls?page=2>; rel="next"`, server.URL))
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, `[{"number": 1, "merged_at": null}, {"number": 2, "merged_at": null}]`)
		}
		gw, srv := setupTestGateway(t, http.HandlerFunc(handler))
		server = srv

		prs, err := gw.FetchPullRequests(context.Background(), "any-owner", "any-repo", "open")

		assert.NoError(t, err)
		assert.Len(t, prs, 3)
	})

	t.Run("error case - GitHub API returns an error", func(t *testing.T) {
		gw, _ := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message": "Not Found"}`)
		}))

		prs, err := gw.FetchPullRequests(context.Background(), "any-owner", "any-repo", "open")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list open pull requests")
		assert.Nil(t, prs)
	})
}

func TestNewGitHubGateway(t *testing.T) {
	gw, err := NewGitHubGateway("any-token", "", 30*time.Second, zap.NewNop())
	assert.NoError(t, err)
	assert.NotNil(t, gw)

	gw, err = NewGitHubGateway("any-token", "https://github.example.com/api/v3/", 30*time.Second, zap.NewNop())
	assert.NoError(t, err)
	assert.NotNil(t, gw)
}
