// Package notifier posts the configured greeting when an issue or pull request is opened.
package notifier

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/cchalm/greetings/internal/config"
	"github.com/cchalm/greetings/internal/event"
	githubTypes "github.com/cchalm/greetings/internal/github"
)

const (
	targetIssue       = "issue"
	targetPullRequest = "pull request"
)

// EventLoader provides the event that triggered the run
type EventLoader interface {
	Load() (event.Context, error)
}

// ServiceFactory creates the comment service once the configuration has been validated
type ServiceFactory func(ctx context.Context, cfg config.Config) (githubTypes.CommentService, error)

// Notifier decides whether an event gets a greeting and posts it
type Notifier struct {
	logger *slog.Logger
	tracer trace.Tracer
}

// New creates a Notifier. A nil tracer disables tracing.
func New(logger *slog.Logger, tracer trace.Tracer) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	return &Notifier{logger: logger, tracer: tracer}
}

// Run validates the configuration, loads the triggering event and posts at most one message. Errors are reported in
// the returned Result rather than returned.
func (n *Notifier) Run(ctx context.Context, cfg config.Config, events EventLoader, newService ServiceFactory) Result {
	ctx, span := n.tracer.Start(ctx, "greetings.run")
	defer span.End()

	result := n.run(ctx, cfg, events, newService)

	span.SetAttributes(attribute.String("greetings.outcome", result.Outcome.String()))
	if result.Failed() {
		span.RecordError(result.Err)
		span.SetStatus(codes.Error, result.Message())
	}
	return result
}

func (n *Notifier) run(ctx context.Context, cfg config.Config, events EventLoader, newService ServiceFactory) Result {
	if err := cfg.Validate(); err != nil {
		return failed(err)
	}

	svc, err := newService(ctx, cfg)
	if err != nil {
		return failed(err)
	}

	evt, err := events.Load()
	if err != nil {
		return failed(err)
	}

	return n.Notify(ctx, cfg, evt, svc)
}

// Notify posts the message configured for evt, if any. cfg is assumed to be valid.
func (n *Notifier) Notify(ctx context.Context, cfg config.Config, evt event.Context, svc githubTypes.CommentService) Result {
	if !evt.IsOpened() {
		n.logger.Info("No issue or PR was opened, skipping", "event", evt.Name, "action", evt.Action)
		return skipped("not opened")
	}

	isIssue := evt.Issue != nil
	if !isIssue && evt.PullRequest == nil {
		n.logger.Info("The event that triggered this action was not a pull request or issue, skipping", "event", evt.Name)
		return skipped("not an issue or pull request")
	}

	message := cfg.PRMessage
	if isIssue {
		message = cfg.IssueMessage
	}
	if message == "" {
		n.logger.Info("No message provided for this type of contribution")
		return skipped("no message")
	}

	owner, repo, err := evt.ResolveRepo()
	if err != nil {
		return failed(err)
	}

	if isIssue {
		issue := *evt.Issue
		issue.Owner, issue.Repo = owner, repo
		return n.commentOnIssue(ctx, svc, issue, message)
	}
	pr := *evt.PullRequest
	pr.Owner, pr.Repo = owner, repo
	return n.reviewPullRequest(ctx, svc, pr, message)
}

func (n *Notifier) commentOnIssue(ctx context.Context, svc githubTypes.CommentService, issue githubTypes.GitHubIssue, message string) Result {
	ctx, span := n.tracer.Start(ctx, "github.create_comment", trace.WithAttributes(
		attribute.String("github.repository", issue.Owner+"/"+issue.Repo),
		attribute.Int("github.issue.number", issue.Number),
	))
	defer span.End()

	n.logger.Info("Adding message", "target", targetIssue, "number", issue.Number, "message", message)

	result := Result{Outcome: Commented, Target: targetIssue, Number: issue.Number}
	comment, err := svc.CreateComment(ctx, issue.Owner, issue.Repo, issue.Number, message)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		result.Outcome, result.Err = Failed, err
		return result
	}

	n.logger.Info("Comment posted", "issue", issue.String(), "url", comment.GetHTMLURL())
	return result
}

func (n *Notifier) reviewPullRequest(ctx context.Context, svc githubTypes.CommentService, pr githubTypes.GitHubPullRequest, message string) Result {
	ctx, span := n.tracer.Start(ctx, "github.create_review", trace.WithAttributes(
		attribute.String("github.repository", pr.Owner+"/"+pr.Repo),
		attribute.Int("github.pull_request.number", pr.Number),
	))
	defer span.End()

	n.logger.Info("Adding message", "target", targetPullRequest, "number", pr.Number, "message", message)

	result := Result{Outcome: Reviewed, Target: targetPullRequest, Number: pr.Number}
	review, err := svc.CreateReview(ctx, pr.Owner, pr.Repo, pr.Number, message, githubTypes.ReviewEventComment)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		result.Outcome, result.Err = Failed, err
		return result
	}

	n.logger.Info("Review posted", "pull_request", pr.String(), "url", review.GetHTMLURL())
	return result
}
