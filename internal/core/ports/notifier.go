package ports

import (
	"context"

	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/fulfillment"
	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/kernel"
)

// Notifier is the mail collaborator. Payload shapes are asymmetric by
// contract: failure and error notices carry the run identifier for
// correlation, success notices do not.
type Notifier interface {
	// NotifySuccess reports the successfully placed cohort.
	NotifySuccess(ctx context.Context, rc kernel.RunContext, results []fulfillment.Result) error

	// NotifyFailure reports the failed cohort, including the run id.
	NotifyFailure(ctx context.Context, rc kernel.RunContext, results []fulfillment.Result) error

	// NotifyError reports an operational failure of the run itself.
	NotifyError(ctx context.Context, rc kernel.RunContext, message string) error
}

// NotificationDispatcher decouples cohort notification from the
// orchestration run that produced it. Dispatch methods enqueue the intent
// and return immediately; delivery happens on an independent worker whose
// failures are logged locally and never reach the orchestration run.
type NotificationDispatcher interface {
	// DispatchSuccess enqueues a success-cohort notification.
	DispatchSuccess(rc kernel.RunContext, results []fulfillment.Result)

	// DispatchFailure enqueues a failure-cohort notification.
	DispatchFailure(rc kernel.RunContext, results []fulfillment.Result)

	// DispatchError enqueues an operational error notice.
	DispatchError(rc kernel.RunContext, message string)
}
