package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFrom_ReadsInputs(t *testing.T) {
	c, err := LoadFrom(map[string]string{
		"INPUT_ISSUE-MESSAGE": "  Welcome!\nThanks for filing.  ",
		"INPUT_PR-MESSAGE":    "Thanks!",
		"INPUT_REPO-TOKEN":    "ghs_token\n",
		"GITHUB_REPOSITORY":   "octo/hello",
		"GITHUB_EVENT_PATH":   "/tmp/event.json",
		"RUNNER_DEBUG":        "1",
	})
	require.NoError(t, err)

	require.Equal(t, "Welcome!\nThanks for filing.", c.IssueMessage)
	require.Equal(t, "Thanks!", c.PRMessage)
	require.Equal(t, "ghs_token", c.RepoToken)
	require.Equal(t, "octo/hello", c.Repository)
	require.Equal(t, "/tmp/event.json", c.EventPath)
	require.Equal(t, "https://api.github.com", c.APIURL)
	require.True(t, c.DebugEnabled())
}

func TestLoadFrom_InvalidBool(t *testing.T) {
	_, err := LoadFrom(map[string]string{"RUNNER_DEBUG": "sometimes"})
	require.Error(t, err)
}

func TestValidate_NoMessages(t *testing.T) {
	c := Config{RepoToken: "token"}
	err := c.Validate()
	require.ErrorIs(t, err, ErrConfiguration)
	require.Contains(t, err.Error(), "at least one of issue-message or pr-message")
}

func TestValidate_NoMessagesAndNoToken(t *testing.T) {
	err := Config{}.Validate()
	require.ErrorIs(t, err, ErrConfiguration)
	require.Contains(t, err.Error(), "issue-message or pr-message")
}

func TestValidate_MissingToken(t *testing.T) {
	err := Config{PRMessage: "Thanks!"}.Validate()
	require.ErrorIs(t, err, ErrConfiguration)
	require.Contains(t, err.Error(), "repo-token")
}

func TestValidate_OneMessageIsEnough(t *testing.T) {
	require.NoError(t, Config{IssueMessage: "Welcome!", RepoToken: "token"}.Validate())
	require.NoError(t, Config{PRMessage: "Thanks!", RepoToken: "token"}.Validate())
}
