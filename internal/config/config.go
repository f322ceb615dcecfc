// Package config provides configuration management for the greetings action.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// ErrConfiguration is returned when the action inputs cannot produce a valid run
var ErrConfiguration = errors.New("invalid configuration")

// Config holds the action inputs and the runner environment the action needs
type Config struct {
	// Action inputs, as exposed by the runner
	IssueMessage string `env:"INPUT_ISSUE-MESSAGE"`
	PRMessage    string `env:"INPUT_PR-MESSAGE"`
	RepoToken    string `env:"INPUT_REPO-TOKEN"`

	// Runner environment
	EventName  string `env:"GITHUB_EVENT_NAME"`
	EventPath  string `env:"GITHUB_EVENT_PATH"`
	Repository string `env:"GITHUB_REPOSITORY"` // owner/repo
	APIURL     string `env:"GITHUB_API_URL" envDefault:"https://api.github.com"`
	OutputPath string `env:"GITHUB_OUTPUT"`

	// Diagnostics
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	RunnerDebug       bool   `env:"RUNNER_DEBUG"`
	TelemetryEnabled  bool   `env:"GREETINGS_TELEMETRY_ENABLED"`
	TelemetryEndpoint string `env:"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"`
}

// Load reads the configuration from the process environment
func Load() (Config, error) {
	return load(env.Options{})
}

// LoadFrom reads the configuration from the given variables instead of the process environment
func LoadFrom(environ map[string]string) (Config, error) {
	return load(env.Options{Environment: environ})
}

func load(opts env.Options) (Config, error) {
	var c Config
	if err := env.ParseWithOptions(&c, opts); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	c.Normalize()
	return c, nil
}

// Normalize trims surrounding whitespace from the action inputs, the way the runner toolkit reads them
func (c *Config) Normalize() {
	c.IssueMessage = strings.TrimSpace(c.IssueMessage)
	c.PRMessage = strings.TrimSpace(c.PRMessage)
	c.RepoToken = strings.TrimSpace(c.RepoToken)
	c.Repository = strings.TrimSpace(c.Repository)
	c.APIURL = strings.TrimSpace(c.APIURL)
}

// Validate checks that at least one message is configured and that a token is present. The message check comes
// first so that a run with no messages fails the same way regardless of credentials.
func (c Config) Validate() error {
	if c.IssueMessage == "" && c.PRMessage == "" {
		return fmt.Errorf("%w: action must have at least one of issue-message or pr-message set", ErrConfiguration)
	}
	if c.RepoToken == "" {
		return fmt.Errorf("%w: input required and not supplied: repo-token", ErrConfiguration)
	}
	return nil
}

// DebugEnabled reports whether debug logging was requested either directly or by re-running a job with debug logging
func (c Config) DebugEnabled() bool {
	return c.RunnerDebug || strings.EqualFold(c.LogLevel, "debug")
}
