package transport

import (
	"log/slog"
	"net/http"
	"time"
)

// LoggingTransport logs each outbound request at debug level along with the GitHub request ID, which is what GitHub
// support asks for when a call fails
type LoggingTransport struct {
	base   http.RoundTripper
	logger *slog.Logger
}

func WithLogging(base http.RoundTripper, logger *slog.Logger) *LoggingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingTransport{base: base, logger: logger}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	elapsed := time.Since(start)

	if err != nil {
		t.logger.Debug("GitHub API request failed",
			"method", req.Method,
			"url", req.URL.Redacted(),
			"elapsed", elapsed,
			"error", err,
		)
		return resp, err
	}

	attrs := []any{
		"method", req.Method,
		"url", req.URL.Redacted(),
		"status", resp.StatusCode,
		"elapsed", elapsed,
	}
	if id := resp.Header.Get("X-GitHub-Request-Id"); id != "" {
		attrs = append(attrs, "request_id", id)
	}
	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		attrs = append(attrs, "rate_limit_remaining", remaining)
	}
	t.logger.Debug("GitHub API request", attrs...)

	return resp, nil
}
