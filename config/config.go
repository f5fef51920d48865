// Package config assembles the service configuration from defaults, an
// optional YAML file, and environment variables, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/util"
)

// Defaults for a stock deployment
const (
	DefaultPort                = "8080"
	DefaultGitHubOrg           = "localstack-dotnet"
	DefaultNuGetBaseURL        = "https://api.nuget.org/v3-flatcontainer"
	DefaultGitHubAPIURL        = "https://api.github.com"
	DefaultResultsBaseURL      = "https://localstack-dotnet.github.io/test-results"
	DefaultResultsPageURL      = "https://github.com/localstack-dotnet/localstack.client/actions"
	DefaultCacheTTLSeconds     = 300
	DefaultFetchTimeoutSeconds = 15
)

// Config holds every runtime knob of the badge service
type Config struct {
	Port                string `yaml:"port"`
	GitHubToken         string `yaml:"github_token"`
	GitHubOrg           string `yaml:"github_org"`
	NuGetBaseURL        string `yaml:"nuget_base_url"`
	GitHubAPIURL        string `yaml:"github_api_url"`
	ResultsBaseURL      string `yaml:"test_results_base_url"`
	ResultsPageURL      string `yaml:"test_results_page_url"`
	CacheTTLSeconds     int    `yaml:"cache_ttl_seconds"`
	FetchTimeoutSeconds int    `yaml:"fetch_timeout_seconds"`
}

// CacheTTL is the test-result cache lifetime
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// FetchTimeout bounds registry version fetches
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// Load builds the configuration. Defaults come first, then the YAML file
// named by BADGE_CONFIG when set, then environment overrides on top.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                DefaultPort,
		GitHubOrg:           DefaultGitHubOrg,
		NuGetBaseURL:        DefaultNuGetBaseURL,
		GitHubAPIURL:        DefaultGitHubAPIURL,
		ResultsBaseURL:      DefaultResultsBaseURL,
		ResultsPageURL:      DefaultResultsPageURL,
		CacheTTLSeconds:     DefaultCacheTTLSeconds,
		FetchTimeoutSeconds: DefaultFetchTimeoutSeconds,
	}

	if path := os.Getenv("BADGE_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.Port = util.GetEnvDefault("PORT", cfg.Port)
	cfg.GitHubToken = util.GetEnvDefault("GITHUB_TOKEN", cfg.GitHubToken)
	cfg.GitHubOrg = util.GetEnvDefault("GITHUB_ORG", cfg.GitHubOrg)
	cfg.NuGetBaseURL = util.GetEnvDefault("NUGET_BASE_URL", cfg.NuGetBaseURL)
	cfg.GitHubAPIURL = util.GetEnvDefault("GITHUB_API_URL", cfg.GitHubAPIURL)
	cfg.ResultsBaseURL = util.GetEnvDefault("TEST_RESULTS_BASE_URL", cfg.ResultsBaseURL)
	cfg.ResultsPageURL = util.GetEnvDefault("TEST_RESULTS_PAGE_URL", cfg.ResultsPageURL)
	cfg.CacheTTLSeconds = util.GetEnvIntDefault("CACHE_TTL_SECONDS", cfg.CacheTTLSeconds)
	cfg.FetchTimeoutSeconds = util.GetEnvIntDefault("FETCH_TIMEOUT_SECONDS", cfg.FetchTimeoutSeconds)

	if cfg.CacheTTLSeconds <= 0 {
		return nil, fmt.Errorf("cache_ttl_seconds must be positive, got %d", cfg.CacheTTLSeconds)
	}
	if cfg.FetchTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("fetch_timeout_seconds must be positive, got %d", cfg.FetchTimeoutSeconds)
	}
	return cfg, nil
}
