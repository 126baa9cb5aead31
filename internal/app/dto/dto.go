// Package dto defines the JSON shapes of the HTTP API.
package dto

// RepoRequest is the body accepted by all three analytics endpoints.
// Frequency is only meaningful for the commits endpoint and defaults to
// week when absent.
type RepoRequest struct {
	URL       string `json:"url" binding:"required"`
	Frequency string `json:"frequency"`
}

// CommitFrequencyResponse maps normalized dates to commit counts.
type CommitFrequencyResponse struct {
	CommitFrequency map[string]int `json:"commit_frequency"`
}

// MessageResponse carries an informational message, used when upstream
// statistics are still being computed.
type MessageResponse struct {
	Message string `json:"message"`
}

// Error is the machine-readable error payload.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an Error for transport.
type ErrorResponse struct {
	Error Error `json:"error"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
