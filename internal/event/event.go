// Package event loads the webhook payload that triggered the current workflow run.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/google/go-github/v72/github"

	githubTypes "github.com/cchalm/greetings/internal/github"
)

// ActionOpened is the only trigger action the notifier responds to
const ActionOpened = "opened"

// Context is a snapshot of the event that triggered the run. At most one of Issue and PullRequest is set.
type Context struct {
	Name   string // e.g. "issues" or "pull_request_target"
	Action string

	// Repository is the owner/repo name from the runner environment. It takes precedence over PayloadRepository.
	Repository        string
	PayloadRepository *github.Repository

	// Owner and Repo of these are left empty; see ResolveRepo
	Issue       *githubTypes.GitHubIssue
	PullRequest *githubTypes.GitHubPullRequest
}

// payload is the subset of the webhook payload the action reads
type payload struct {
	Action      string              `json:"action"`
	Number      int                 `json:"number"`
	Issue       *github.Issue       `json:"issue"`
	PullRequest *github.PullRequest `json:"pull_request"`
	Repository  *github.Repository  `json:"repository"`
}

// Loader reads event contexts from the runner environment
type Loader struct {
	EventName  string
	EventPath  string
	Repository string // owner/repo, as found in GITHUB_REPOSITORY

	Logger *slog.Logger
}

// Load reads and parses the payload file. A missing payload file is not an error: the runner omits it for some
// triggers, and the resulting context simply has no action.
func (l Loader) Load() (Context, error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if l.EventPath == "" {
		logger.Debug("No event path set, using an empty payload")
		return Parse(nil, l.EventName, l.Repository)
	}

	data, err := os.ReadFile(l.EventPath)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Event path does not exist, using an empty payload", "path", l.EventPath)
		return Parse(nil, l.EventName, l.Repository)
	}
	if err != nil {
		return Context{}, fmt.Errorf("failed to read event payload '%s': %w", l.EventPath, err)
	}

	return Parse(data, l.EventName, l.Repository)
}

// Parse builds a Context from raw payload JSON. The repository is not resolved here, so that events the action ignores
// never fail on a missing or malformed repository name.
func Parse(data []byte, eventName string, qualifiedRepoName string) (Context, error) {
	var p payload
	if len(data) > 0 {
		if err := json.Unmarshal(data, &p); err != nil {
			return Context{}, fmt.Errorf("failed to parse event payload: %w", err)
		}
	}

	evt := Context{
		Name:              eventName,
		Action:            p.Action,
		Repository:        qualifiedRepoName,
		PayloadRepository: p.Repository,
	}

	if p.Issue == nil && p.PullRequest == nil {
		return evt, nil
	}

	if p.Issue != nil {
		evt.Issue = &githubTypes.GitHubIssue{
			Number: firstNonZero(p.Issue.GetNumber(), p.Number),
			Title:  p.Issue.GetTitle(),
			URL:    p.Issue.GetHTMLURL(),
			Author: p.Issue.GetUser().GetLogin(),
		}
		return evt, nil
	}

	evt.PullRequest = &githubTypes.GitHubPullRequest{
		Number:  firstNonZero(p.PullRequest.GetNumber(), p.Number),
		Title:   p.PullRequest.GetTitle(),
		URL:     p.PullRequest.GetHTMLURL(),
		Author:  p.PullRequest.GetUser().GetLogin(),
		HeadSHA: p.PullRequest.GetHead().GetSHA(),
	}
	return evt, nil
}

// IsOpened reports whether the event was fired because an issue or pull request was opened
func (c Context) IsOpened() bool {
	return c.Action == ActionOpened
}

// ResolveRepo returns the owner and name of the repository the event belongs to
func (c Context) ResolveRepo() (string, string, error) {
	return resolveRepo(c.Repository, c.PayloadRepository)
}

func resolveRepo(qualifiedRepoName string, repository *github.Repository) (string, string, error) {
	if qualifiedRepoName != "" {
		parts := strings.Split(qualifiedRepoName, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return "", "", fmt.Errorf("invalid repository format '%s', expected owner/repo", qualifiedRepoName)
		}
		return parts[0], parts[1], nil
	}

	owner, repo := repository.GetOwner().GetLogin(), repository.GetName()
	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("context.repo requires a GITHUB_REPOSITORY environment variable like 'owner/repo'")
	}
	return owner, repo, nil
}

func firstNonZero(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
