package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/kernel"
	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/services"
	"github.com/daechan-jo/auto-store-services-order/internal/core/ports"
)

// ProcessOrdersCommandHandler is the fulfillment orchestrator. It drives the
// fixed step sequence of one run: fetch, duplicate scan, merge, status
// advance, delegation, partition, notify.
//
// Failure policy: every failure inside the sequence is caught here, logged
// with the job label and run id, and reported through an error-notification
// dispatch. The caller (the scheduler or the ops endpoint) only ever observes
// success-or-swallowed-failure; Handle returns an error solely for an invalid
// command.
//
// The status-advance and the fulfillment delegation are two independent
// remote calls with no transactional link: if delegation fails after the
// status advance succeeded, the source system keeps the advanced status with
// no compensating action. The failure path names the already-advanced
// shipment boxes so the gap is visible to operators.
type ProcessOrdersCommandHandler struct {
	source        ports.OrderSource
	fulfillment   ports.FulfillmentService
	notifications ports.NotificationDispatcher
	strategy      services.MergeStrategy
	detector      services.DuplicateDetector
	partitioner   services.ResultPartitioner
	settleDelay   time.Duration
	logger        *slog.Logger
}

// NewProcessOrdersCommandHandler creates the orchestrator.
// settleDelay is the pause inserted between fetching and the status advance
// to let upstream state settle; zero disables it.
func NewProcessOrdersCommandHandler(
	source ports.OrderSource,
	fulfillment ports.FulfillmentService,
	notifications ports.NotificationDispatcher,
	strategy services.MergeStrategy,
	settleDelay time.Duration,
	logger *slog.Logger,
) ProcessOrdersCommandHandler {
	return ProcessOrdersCommandHandler{
		source:        source,
		fulfillment:   fulfillment,
		notifications: notifications,
		strategy:      strategy,
		detector:      services.NewDuplicateDetector(logger),
		partitioner:   services.NewResultPartitioner(logger),
		settleDelay:   settleDelay,
		logger:        logger.With("component", "process_orders_handler"),
	}
}

// Handle executes one orchestration run. It returns an error only when the
// command itself is invalid; run failures are swallowed after logging and
// dispatching an error notification.
func (h ProcessOrdersCommandHandler) Handle(ctx context.Context, command ProcessOrdersCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	rc := command.RunContext()
	logger := h.logger.With("job", rc.JobLabel(), "run_id", rc.RunID().String())

	logger.InfoContext(ctx, "order consolidation run started",
		"started_at", time.Now().Format("15:04:05"),
		"merge_strategy", h.strategy.Name(),
	)

	if err := h.run(ctx, rc, logger); err != nil {
		logger.ErrorContext(ctx, "order consolidation run failed", "error", err)
		h.notifications.DispatchError(rc, err.Error())
	}

	return nil
}

// run executes the step sequence. Each step is a synchronous dependency of
// the next; the first failing step aborts the remainder.
func (h ProcessOrdersCommandHandler) run(
	ctx context.Context, rc kernel.RunContext, logger *slog.Logger,
) error {
	raw, err := h.source.FetchAcceptedOrders(ctx, rc)
	if err != nil {
		return fmt.Errorf("fetch accepted orders: %w", err)
	}

	if len(raw) == 0 {
		logger.InfoContext(ctx, "no order data to process")
		return nil
	}

	h.detector.Detect(ctx, rc, raw)

	merged := h.strategy.Merge(ctx, raw)

	if err = h.settle(ctx); err != nil {
		return fmt.Errorf("settle delay interrupted: %w", err)
	}

	shipmentBoxIDs := make([]int64, len(raw))
	for i, o := range raw {
		shipmentBoxIDs[i] = o.ShipmentBoxID
	}

	if err = h.source.AdvanceOrderStatus(ctx, rc, shipmentBoxIDs); err != nil {
		return fmt.Errorf("advance order status: %w", err)
	}

	results, err := h.fulfillment.PlaceOrders(ctx, rc, merged)
	if err != nil {
		// The status advance already went out; the source system is left in
		// the advanced state with no compensating action.
		return fmt.Errorf("place orders (status already advanced for shipment boxes %v): %w",
			shipmentBoxIDs, err)
	}

	cohorts := h.partitioner.Partition(ctx, rc, results)

	if len(cohorts.Succeeded) > 0 {
		h.notifications.DispatchSuccess(rc, cohorts.Succeeded)
	}
	if len(cohorts.Failed) > 0 {
		h.notifications.DispatchFailure(rc, cohorts.Failed)
	}

	logger.InfoContext(ctx, "order consolidation run completed",
		"fetched", len(raw),
		"merged", len(merged),
		"succeeded", len(cohorts.Succeeded),
		"failed", len(cohorts.Failed),
	)

	return nil
}

// settle pauses between the fetch and the status advance so upstream state
// can settle. Respects context cancellation.
func (h ProcessOrdersCommandHandler) settle(ctx context.Context) error {
	if h.settleDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(h.settleDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
