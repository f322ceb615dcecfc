package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/cchalm/greetings/internal/config"
)

const issueOpenedPayload = `{
  "action": "opened",
  "issue": {"number": 42, "user": {"login": "newcomer"}},
  "repository": {"name": "hello", "owner": {"login": "octo"}}
}`

func setupRunnerEnv(t *testing.T, payload string, apiURL string) string {
	t.Helper()
	dir := t.TempDir()

	eventPath := filepath.Join(dir, "event.json")
	require.NoError(t, os.WriteFile(eventPath, []byte(payload), 0o600))
	outputPath := filepath.Join(dir, "output")

	t.Setenv("INPUT_ISSUE-MESSAGE", "Welcome!")
	t.Setenv("INPUT_PR-MESSAGE", "")
	t.Setenv("INPUT_REPO-TOKEN", "ghs_token")
	t.Setenv("GITHUB_EVENT_NAME", "issues")
	t.Setenv("GITHUB_EVENT_PATH", eventPath)
	t.Setenv("GITHUB_REPOSITORY", "octo/hello")
	t.Setenv("GITHUB_API_URL", apiURL)
	t.Setenv("GITHUB_OUTPUT", outputPath)
	t.Setenv("NO_COLOR", "1")

	return outputPath
}

func execute(t *testing.T) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{})
	err := rootCmd.Execute()
	return stdout.String(), err
}

func TestExecute_IssueOpened(t *testing.T) {
	var body map[string]any
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v3/repos/octo/hello/issues/42/comments", func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, "Bearer ghs_token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 1}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	outputPath := setupRunnerEnv(t, issueOpenedPayload, server.URL)

	_, err := execute(t)
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Equal(t, "Welcome!", body["body"])

	outputs, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	require.Equal(t, "number=42\noutcome=commented\n", string(outputs))
}

func TestExecute_NoMessagesReportsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected API call: %s %s", r.Method, r.URL.Path)
	}))
	defer server.Close()

	setupRunnerEnv(t, issueOpenedPayload, server.URL)
	t.Setenv("INPUT_ISSUE-MESSAGE", "")

	stdout, err := execute(t)
	require.ErrorIs(t, err, ErrRunFailed)
	require.Contains(t, stdout, "::error::invalid configuration: action must have at least one of issue-message or pr-message set")
}

func TestExecute_PushIsSkipped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected API call: %s %s", r.Method, r.URL.Path)
	}))
	defer server.Close()

	outputPath := setupRunnerEnv(t, `{"ref": "refs/heads/main"}`, server.URL)

	stdout, err := execute(t)
	require.NoError(t, err)
	require.Contains(t, stdout, "::debug::skipped: not opened")

	outputs, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	require.Equal(t, "outcome=skipped\n", string(outputs))
}

func TestExecute_APIErrorReportsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	}))
	defer server.Close()

	setupRunnerEnv(t, issueOpenedPayload, server.URL)

	stdout, err := execute(t)
	require.ErrorIs(t, err, ErrRunFailed)
	require.Contains(t, stdout, "::error::failed to create comment on issue 42")
}

func TestLoadDotEnv_SkippedOnRunner(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GREETINGS_TELEMETRY_ENABLED=true\n"), 0o600))
	t.Chdir(dir)

	t.Setenv("GREETINGS_TELEMETRY_ENABLED", "")
	require.NoError(t, os.Unsetenv("GREETINGS_TELEMETRY_ENABLED"))
	t.Setenv("GITHUB_ACTIONS", "true")

	loadDotEnv()

	_, set := os.LookupEnv("GREETINGS_TELEMETRY_ENABLED")
	require.False(t, set)
}

func TestLoadDotEnv_LocalRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GREETINGS_DOTENV_VALUE=local\n"), 0o600))
	t.Chdir(dir)

	t.Setenv("GREETINGS_DOTENV_VALUE", "")
	require.NoError(t, os.Unsetenv("GREETINGS_DOTENV_VALUE"))
	t.Setenv("GITHUB_ACTIONS", "")

	loadDotEnv()

	require.Equal(t, "local", os.Getenv("GREETINGS_DOTENV_VALUE"))
}

func TestApplyOverrides(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	bindFlags(cmd)
	require.NoError(t, cmd.Flags().Parse([]string{"--pr-message", "  Thanks!  ", "--repo", "octo/hello", "--telemetry"}))

	c := config.Config{IssueMessage: "Welcome!", PRMessage: "from env", Repository: "other/repo"}
	applyOverrides(cmd, &c)

	require.Equal(t, "Welcome!", c.IssueMessage)
	require.Equal(t, "Thanks!", c.PRMessage)
	require.Equal(t, "octo/hello", c.Repository)
	require.True(t, c.TelemetryEnabled)
}

func TestVersionCommand(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2026-01-01")
	t.Cleanup(func() { SetVersionInfo("dev", "unknown", "unknown") })

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs([]string{}) })

	require.NoError(t, rootCmd.Execute())
	require.Equal(t, "greetings 1.2.3 (commit abc123, built 2026-01-01)\n", stdout.String())
}
