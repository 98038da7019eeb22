package kernel

import (
	"time"

	"github.com/daechan-jo/auto-store-services-order/internal/pkg/errs"
)

// DateLayout is the wire format for the fetch-window date markers.
const DateLayout = "2006-01-02"

// ErrRunContextIsNotConstructed indicates that a RunContext was not created
// through NewRunContext.
var ErrRunContextIsNotConstructed = errs.NewValueIsRequiredError(
	"RunContext must be created via NewRunContext")

// RunContext is the ephemeral per-invocation state of one orchestration run:
// a fresh run identifier, the job label used as a log prefix across
// collaborators, and the date markers bounding the order fetch window
// (current day and prior day).
//
// A RunContext is created at the start of a scheduled invocation, held only
// for its duration, and never shared across concurrent invocations.
type RunContext struct {
	runID     RunID
	jobLabel  string
	today     string
	yesterday string
}

// NewRunContext creates the correlation state for one orchestration run.
// The fetch window is derived from now: today and the prior day, formatted
// as DateLayout.
func NewRunContext(jobLabel string, now time.Time) (RunContext, error) {
	if jobLabel == "" {
		return RunContext{}, errs.NewValueIsRequiredError("jobLabel")
	}

	return RunContext{
		runID:     NewRunID(),
		jobLabel:  jobLabel,
		today:     now.Format(DateLayout),
		yesterday: now.AddDate(0, 0, -1).Format(DateLayout),
	}, nil
}

// RunID returns the run's correlation identifier.
func (rc RunContext) RunID() RunID {
	return rc.runID
}

// JobLabel returns the job/type label of the run (e.g. "ORDER").
func (rc RunContext) JobLabel() string {
	return rc.jobLabel
}

// Today returns the upper bound of the fetch window.
func (rc RunContext) Today() string {
	return rc.today
}

// Yesterday returns the lower bound of the fetch window.
func (rc RunContext) Yesterday() string {
	return rc.yesterday
}

// Validate returns ErrRunContextIsNotConstructed for a zero-value RunContext.
func (rc RunContext) Validate() error {
	if rc.jobLabel == "" {
		return ErrRunContextIsNotConstructed
	}
	return rc.runID.Validate()
}
