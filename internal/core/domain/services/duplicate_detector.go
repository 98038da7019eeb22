package services

import (
	"context"
	"log/slog"

	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/kernel"
	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/order"
)

// DuplicateDetector flags raw orders whose order identifier appears more than
// once in a run's input. Detection is based solely on identifier equality and
// is independent of merge-key grouping.
//
// The scan is observability-only: duplicates are counted and logged, nothing
// is mutated and no collaborator is called. Detection order-independence is
// guaranteed because counting by identifier ignores input ordering.
type DuplicateDetector struct {
	logger *slog.Logger
}

// NewDuplicateDetector creates a detector logging through the given logger.
func NewDuplicateDetector(logger *slog.Logger) DuplicateDetector {
	return DuplicateDetector{
		logger: logger.With("component", "duplicate_detector"),
	}
}

// Detect returns the subset of orders sharing an order identifier with at
// least one other input record, in input order. A non-empty result emits a
// single observability event with the duplicate count.
func (d DuplicateDetector) Detect(
	ctx context.Context, rc kernel.RunContext, orders []order.RawOrder,
) []order.RawOrder {
	counts := make(map[int64]int, len(orders))
	for _, o := range orders {
		counts[o.OrderID]++
	}

	var duplicates []order.RawOrder
	for _, o := range orders {
		if counts[o.OrderID] > 1 {
			duplicates = append(duplicates, o)
		}
	}

	if len(duplicates) > 0 {
		// TODO: route duplicate reports to the mail collaborator once a
		// duplicate-handling policy is decided; resolution is a known gap.
		d.logger.InfoContext(ctx, "duplicate orders detected",
			"job", rc.JobLabel(),
			"run_id", rc.RunID().String(),
			"count", len(duplicates),
		)
	}

	return duplicates
}
