package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/cchalm/greetings/internal/config"
	githubTypes "github.com/cchalm/greetings/internal/github"
	"github.com/cchalm/greetings/internal/logging"
	"github.com/cchalm/greetings/internal/notifier"
	"github.com/cchalm/greetings/internal/telemetry"
	"github.com/cchalm/greetings/internal/transport"
)

func setupContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	// Setup graceful shutdown
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		slog.Warn("Interrupt signal detected, shutting down gracefully...")
		cancel()
		<-interrupt
		slog.Error("Forcing shutdown")
		os.Exit(1)
	}()

	return ctx
}

func createLogger(w io.Writer, c config.Config) *slog.Logger {
	level := logging.ParseLevel(c.LogLevel)
	if c.DebugEnabled() {
		level = slog.LevelDebug
	}
	return logging.NewLogger(w, level)
}

// commentServiceFactory defers client creation until the token has been validated
func commentServiceFactory(logger *slog.Logger) notifier.ServiceFactory {
	return func(ctx context.Context, c config.Config) (githubTypes.CommentService, error) {
		client, err := githubTypes.NewClient(ctx, githubTypes.ClientOptions{
			Token:  c.RepoToken,
			APIURL: c.APIURL,
			Base:   transport.WithLogging(nil, logger),
		})
		if err != nil {
			return nil, err
		}
		return githubTypes.NewCommentService(client), nil
	}
}

func createTelemetryProvider(ctx context.Context, logger *slog.Logger) (*telemetry.Provider, error) {
	telemetryConfig := telemetry.TelemetryConfig{
		Enabled:        cfg.TelemetryEnabled,
		Endpoint:       cfg.TelemetryEndpoint,
		ServiceVersion: versionInfo.version,
	}
	return telemetry.NewProvider(ctx, telemetryConfig, logger)
}
