package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cchalm/greetings/internal/config"
)

var cfg = config.Config{}

// overrides holds flag values that take precedence over the environment when set
var overrides struct {
	issueMessage string
	prMessage    string
	eventName    string
	eventPath    string
	repo         string
	logLevel     string
	telemetry    bool
}

func bindFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&overrides.issueMessage, "issue-message", "", "Comment to post on an individual's first issue (overrides INPUT_ISSUE-MESSAGE)")
	flags.StringVar(&overrides.prMessage, "pr-message", "", "Review to post on an individual's first pull request (overrides INPUT_PR-MESSAGE)")
	flags.StringVar(&overrides.eventName, "event-name", "", "Name of the triggering event (overrides GITHUB_EVENT_NAME)")
	flags.StringVar(&overrides.eventPath, "event-path", "", "Path to the webhook payload (overrides GITHUB_EVENT_PATH)")
	flags.StringVar(&overrides.repo, "repo", "", "Repository name in the format 'owner/repo' (overrides GITHUB_REPOSITORY)")
	flags.StringVar(&overrides.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides LOG_LEVEL)")
	flags.BoolVar(&overrides.telemetry, "telemetry", false, "Export traces over OTLP/HTTP")
}

// applyOverrides copies explicitly set flags into c
func applyOverrides(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	setIfChanged := func(name string, dest *string, value string) {
		if flags.Changed(name) {
			*dest = value
		}
	}

	setIfChanged("issue-message", &c.IssueMessage, overrides.issueMessage)
	setIfChanged("pr-message", &c.PRMessage, overrides.prMessage)
	setIfChanged("event-name", &c.EventName, overrides.eventName)
	setIfChanged("event-path", &c.EventPath, overrides.eventPath)
	setIfChanged("repo", &c.Repository, overrides.repo)
	setIfChanged("log-level", &c.LogLevel, overrides.logLevel)
	if flags.Changed("telemetry") {
		c.TelemetryEnabled = overrides.telemetry
	}

	c.Normalize()
}
