package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/daechan-jo/auto-store-services-order/internal/core/application/usecases/commands"
	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
	"go.uber.org/atomic"
)

// JobLabel identifies this job in run contexts and collaborator payloads.
const JobLabel = "ORDER"

// DefaultCronSpec runs the job every ten minutes.
const DefaultCronSpec = "0 */10 * * * *"

// OrderJob schedules order processing runs. Each tick gets a fresh run
// context; ticks that fire while a previous run is still in flight are
// skipped rather than queued.
type OrderJob struct {
	handler  commands.ProcessOrdersCommandHandler
	cron     *cron.Cron
	cronSpec string
	inFlight *atomic.Bool
	logger   *slog.Logger
}

// NewOrderJob creates the order processing job with the given cron spec.
// An empty spec falls back to DefaultCronSpec.
func NewOrderJob(handler commands.ProcessOrdersCommandHandler, cronSpec string, logger *slog.Logger) *OrderJob {
	if cronSpec == "" {
		cronSpec = DefaultCronSpec
	}
	return &OrderJob{
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		cronSpec: cronSpec,
		inFlight: atomic.NewBool(false),
		logger:   logger.With("component", "order_job"),
	}
}

// Start begins scheduled execution.
func (j *OrderJob) Start() error {
	_, err := j.cron.AddFunc(j.cronSpec, func() {
		ctx := context.Background()
		if _, started, err := j.Trigger(); err != nil {
			j.logger.ErrorContext(ctx, "Order job tick failed to start", "error", err)
		} else if !started {
			j.logger.InfoContext(ctx, "Order job tick skipped, previous run still in flight")
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order job started", "cron", j.cronSpec)
	return nil
}

// Stop stops the scheduler. A run already in flight finishes on its own.
func (j *OrderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order job stopped")
}

// Trigger starts one processing run asynchronously and returns its run
// context. When a previous run is still in flight nothing is started and
// started is false. Both the scheduler and the manual trigger endpoint go
// through here, so the single-flight guarantee covers them jointly.
func (j *OrderJob) Trigger() (rc kernel.RunContext, started bool, err error) {
	if !j.inFlight.CompareAndSwap(false, true) {
		return kernel.RunContext{}, false, nil
	}

	rc, err = kernel.NewRunContext(JobLabel, time.Now())
	if err != nil {
		j.inFlight.Store(false)
		return kernel.RunContext{}, false, err
	}

	command, err := commands.NewProcessOrdersCommand(rc)
	if err != nil {
		j.inFlight.Store(false)
		return kernel.RunContext{}, false, err
	}

	go func() {
		defer j.inFlight.Store(false)
		if handleErr := j.handler.Handle(context.Background(), command); handleErr != nil {
			j.logger.Error("Order processing run rejected",
				"run_id", rc.RunID().String(),
				"error", handleErr)
		}
	}()

	return rc, true, nil
}
