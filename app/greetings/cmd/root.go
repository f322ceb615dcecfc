package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cchalm/greetings/internal/actions"
	"github.com/cchalm/greetings/internal/config"
	"github.com/cchalm/greetings/internal/event"
	"github.com/cchalm/greetings/internal/notifier"
	"github.com/cchalm/greetings/internal/telemetry"
)

// ErrRunFailed is returned by Execute when the run failed and the failure was already reported to the runner
var ErrRunFailed = errors.New("run failed")

var rootCmd = &cobra.Command{
	Use:   "greetings",
	Short: "Greet first-time contributors",
	Long: `Greetings posts a configured message when an issue or pull request is opened.
Issues receive a comment and pull requests receive a COMMENT review. It is designed
to run as a GitHub Action, reading its inputs from INPUT_* environment variables.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PreRunE:       loadRootConfig,
	RunE:          runAction,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	bindFlags(rootCmd)
}

func loadRootConfig(cmd *cobra.Command, _ []string) error {
	loadDotEnv()

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	applyOverrides(cmd, &loaded)
	cfg = loaded
	return nil
}

// loadDotEnv loads a .env file for local runs. On a runner the working directory is the user's checkout, whose .env
// must not reach the action's environment.
func loadDotEnv() {
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return
	}
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded .env file")
	}
}

func runAction(cmd *cobra.Command, _ []string) error {
	ctx := setupContext()

	runID := telemetry.NewRunID()
	logger := createLogger(cmd.ErrOrStderr(), cfg).With("run_id", runID)
	slog.SetDefault(logger)

	provider, err := createTelemetryProvider(ctx, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := provider.Shutdown(ctx); err != nil {
			logger.Warn("Failed to flush telemetry", "error", err)
		}
	}()

	loader := event.Loader{
		EventName:  cfg.EventName,
		EventPath:  cfg.EventPath,
		Repository: cfg.Repository,
		Logger:     logger,
	}

	commands := actions.NewCommands(cmd.OutOrStdout(), cfg.OutputPath)
	result := notifier.New(logger, provider.Tracer()).Run(ctx, cfg, loader, commentServiceFactory(logger))
	if result.Failed() {
		logger.Error("Run failed", "error", result.Err)
		commands.SetFailed(result.Message())
		return ErrRunFailed
	}

	if result.Outcome == notifier.Skipped {
		commands.Debug(fmt.Sprintf("skipped: %s", result.Reason))
	}

	outputs := map[string]string{"outcome": result.Outcome.String()}
	if result.Number != 0 {
		outputs["number"] = strconv.Itoa(result.Number)
	}
	if err := commands.SetOutputs(outputs); err != nil {
		logger.Warn("Failed to set step outputs", "error", err)
	}
	return nil
}
