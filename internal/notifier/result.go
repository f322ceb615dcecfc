package notifier

import "fmt"

// Outcome is the terminal state of a run
type Outcome int

const (
	// Skipped means the event did not call for a message. Skipped runs succeed.
	Skipped Outcome = iota
	// Commented means a comment was posted on an issue
	Commented
	// Reviewed means a COMMENT review was posted on a pull request
	Reviewed
	// Failed means validation or the API call failed
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Commented:
		return "commented"
	case Reviewed:
		return "reviewed"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result reports what a run did
type Result struct {
	Outcome Outcome
	// Reason explains a skipped run
	Reason string
	// Target is "issue" or "pull request" when a message was posted or attempted
	Target string
	Number int
	// Err is set when Outcome is Failed
	Err error
}

// Failed reports whether the run failed
func (r Result) Failed() bool {
	return r.Outcome == Failed
}

// Message is the failure message reported to the runner, or empty for successful runs
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

func skipped(reason string) Result {
	return Result{Outcome: Skipped, Reason: reason}
}

func failed(err error) Result {
	return Result{Outcome: Failed, Err: err}
}
