// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the service needs at startup.
type Config struct {
	HTTPAddr        string
	GitHubToken     string
	GitHubAPIBase   string
	UpstreamTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// for everything except the GitHub token.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("UPSTREAM_TIMEOUT", "30s")

	token := v.GetString("GITHUB_TOKEN")
	if token == "" {
		return Config{}, fmt.Errorf("GITHUB_TOKEN is required")
	}

	timeout := v.GetDuration("UPSTREAM_TIMEOUT")
	if timeout <= 0 {
		return Config{}, fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}

	return Config{
		HTTPAddr:        v.GetString("HTTP_ADDR"),
		GitHubToken:     token,
		GitHubAPIBase:   v.GetString("GITHUB_API_BASE"),
		UpstreamTimeout: timeout,
	}, nil
}
