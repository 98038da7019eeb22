// Package notify implements the fire-and-forget notification dispatcher.
// Cohort and error notices are enqueued by the orchestration run and
// delivered by an independent worker, so a notification failure can never
// abort or roll back the run that produced it.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/fulfillment"
	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/kernel"
	"github.com/daechan-jo/auto-store-services-order/internal/core/ports"
)

type kind int

const (
	kindSuccess kind = iota
	kindFailure
	kindError
)

func (k kind) String() string {
	switch k {
	case kindSuccess:
		return "success"
	case kindFailure:
		return "failure"
	case kindError:
		return "error"
	default:
		return "unknown"
	}
}

// notification is one queued delivery intent.
type notification struct {
	kind    kind
	rc      kernel.RunContext
	results []fulfillment.Result
	message string
}

// Dispatcher queues notification intents and delivers them through a
// ports.Notifier on a single worker goroutine. Enqueueing never blocks:
// when the queue is full the notice is dropped and logged, keeping the
// orchestration run's latency independent of the mail collaborator.
//
// Dispatcher implements ports.NotificationDispatcher.
type Dispatcher struct {
	notifier        ports.Notifier
	queue           chan notification
	deliveryTimeout time.Duration
	logger          *slog.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewDispatcher creates a dispatcher with the given queue capacity and
// per-delivery timeout.
func NewDispatcher(
	notifier ports.Notifier, queueSize int, deliveryTimeout time.Duration, logger *slog.Logger,
) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Dispatcher{
		notifier:        notifier,
		queue:           make(chan notification, queueSize),
		deliveryTimeout: deliveryTimeout,
		logger:          logger.With("component", "notification_dispatcher"),
		done:            make(chan struct{}),
	}
}

// Start launches the delivery worker.
func (d *Dispatcher) Start() {
	go d.worker()
	d.logger.InfoContext(context.Background(), "notification dispatcher started")
}

// Stop closes the queue, waits until the worker has drained every pending
// notification, and returns.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
	d.logger.InfoContext(context.Background(), "notification dispatcher stopped")
}

// DispatchSuccess enqueues a success-cohort notification.
// Success notices do not carry the run identifier.
func (d *Dispatcher) DispatchSuccess(rc kernel.RunContext, results []fulfillment.Result) {
	d.enqueue(notification{kind: kindSuccess, rc: rc, results: results})
}

// DispatchFailure enqueues a failure-cohort notification carrying the run id.
func (d *Dispatcher) DispatchFailure(rc kernel.RunContext, results []fulfillment.Result) {
	d.enqueue(notification{kind: kindFailure, rc: rc, results: results})
}

// DispatchError enqueues an operational error notice carrying the run id.
func (d *Dispatcher) DispatchError(rc kernel.RunContext, message string) {
	d.enqueue(notification{kind: kindError, rc: rc, message: message})
}

func (d *Dispatcher) enqueue(n notification) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("dispatcher stopped, dropping notification",
			"kind", n.kind.String(),
			"job", n.rc.JobLabel(),
			"run_id", n.rc.RunID().String(),
		)
		return
	}

	select {
	case d.queue <- n:
	default:
		d.logger.Error("notification queue full, dropping notification",
			"kind", n.kind.String(),
			"job", n.rc.JobLabel(),
			"run_id", n.rc.RunID().String(),
		)
	}
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for n := range d.queue {
		d.deliver(n)
	}
}

// deliver sends one queued notification. Delivery failures are logged here
// and go no further: the run that enqueued the notice has long moved on.
func (d *Dispatcher) deliver(n notification) {
	ctx := context.Background()
	if d.deliveryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.deliveryTimeout)
		defer cancel()
	}

	var err error
	switch n.kind {
	case kindSuccess:
		err = d.notifier.NotifySuccess(ctx, n.rc, n.results)
	case kindFailure:
		err = d.notifier.NotifyFailure(ctx, n.rc, n.results)
	case kindError:
		err = d.notifier.NotifyError(ctx, n.rc, n.message)
	}

	if err != nil {
		d.logger.ErrorContext(ctx, "notification delivery failed",
			"kind", n.kind.String(),
			"job", n.rc.JobLabel(),
			"run_id", n.rc.RunID().String(),
			"error", err,
		)
		return
	}

	d.logger.InfoContext(ctx, "notification delivered",
		"kind", n.kind.String(),
		"job", n.rc.JobLabel(),
		"run_id", n.rc.RunID().String(),
	)
}
