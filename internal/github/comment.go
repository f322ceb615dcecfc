package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v72/github"
)

// ReviewEventComment submits a review that neither approves nor requests changes
const ReviewEventComment = "COMMENT"

// CommentService posts messages to issues and pull requests
type CommentService interface {
	CreateComment(ctx context.Context, owner, repo string, issueNumber int, body string) (*github.IssueComment, error)
	CreateReview(ctx context.Context, owner, repo string, pullNumber int, body string, event string) (*github.PullRequestReview, error)
}

// commentService implements CommentService using GitHub API
type commentService struct {
	client *github.Client
}

// NewCommentService creates a new CommentService
func NewCommentService(client *github.Client) CommentService {
	return &commentService{
		client: client,
	}
}

func (cs *commentService) CreateComment(ctx context.Context, owner, repo string, issueNumber int, body string) (*github.IssueComment, error) {
	comment := &github.IssueComment{
		Body: github.Ptr(body),
	}

	created, _, err := cs.client.Issues.CreateComment(ctx, owner, repo, issueNumber, comment)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment on issue %d: %w", issueNumber, describe(err))
	}

	return created, nil
}

func (cs *commentService) CreateReview(ctx context.Context, owner, repo string, pullNumber int, body string, event string) (*github.PullRequestReview, error) {
	review := &github.PullRequestReviewRequest{
		Body:  github.Ptr(body),
		Event: github.Ptr(event),
	}

	created, _, err := cs.client.PullRequests.CreateReview(ctx, owner, repo, pullNumber, review)
	if err != nil {
		return nil, fmt.Errorf("failed to create review on pull request %d: %w", pullNumber, describe(err))
	}

	return created, nil
}

// ErrForbidden matches errors for 403 responses that are not rate limits, which on Actions almost always means the
// workflow token lacks write permission for issues or pull requests
var ErrForbidden = errors.New("resource not accessible by integration")

// APIError reports a failed API call with GitHub's own message, leaving the request details to the wrapped error
type APIError struct {
	StatusCode int
	Message    string

	err *github.ErrorResponse
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.StatusCode)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.err
}

func (e *APIError) Is(target error) bool {
	return target == ErrForbidden && e.StatusCode == http.StatusForbidden
}

func describe(err error) error {
	var ghErr *github.ErrorResponse
	if !errors.As(err, &ghErr) || ghErr.Response == nil {
		return err
	}
	return &APIError{
		StatusCode: ghErr.Response.StatusCode,
		Message:    ghErr.Message,
		err:        ghErr,
	}
}
