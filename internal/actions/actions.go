// Package actions writes GitHub Actions workflow commands and step outputs.
package actions

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Commands writes workflow commands to the runner. The runner reads them from stdout.
type Commands struct {
	Out        io.Writer
	OutputPath string // GITHUB_OUTPUT
}

// NewCommands creates Commands writing to out and the given step output file. A nil out selects stdout.
func NewCommands(out io.Writer, outputPath string) Commands {
	if out == nil {
		out = os.Stdout
	}
	return Commands{Out: out, OutputPath: outputPath}
}

// SetFailed marks the step as failed with the given message. The caller is responsible for exiting non-zero.
func (c Commands) SetFailed(message string) {
	c.issue("error", message)
}

// Debug writes a message that is only shown when step debug logging is enabled
func (c Commands) Debug(message string) {
	c.issue("debug", message)
}

func (c Commands) issue(command string, message string) {
	_, _ = fmt.Fprintf(c.Out, "::%s::%s\n", command, escapeData(message))
}

// SetOutputs appends step outputs to the GITHUB_OUTPUT file. It is a no-op outside a runner.
func (c Commands) SetOutputs(values map[string]string) error {
	path := strings.TrimSpace(c.OutputPath)
	if path == "" || len(values) == 0 {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open step output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, err := fmt.Fprintf(f, "%s=%s\n", key, escapeData(values[key])); err != nil {
			return fmt.Errorf("failed to write step output '%s': %w", key, err)
		}
	}
	return nil
}

// escapeData escapes a command message so that multi-line text stays within one command
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}
