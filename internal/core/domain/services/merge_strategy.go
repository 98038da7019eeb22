package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/order"
	"github.com/daechan-jo/auto-store-services-order/internal/pkg/errs"
)

// Merge strategy names accepted by NewMergeStrategy. Exactly one strategy is
// active per deployment, selected by configuration.
const (
	ReceiverStrategyName         = "receiver"
	ProductRecipientStrategyName = "product-recipient"
)

// MergeStrategy consolidates a run's raw orders into merged shipments: one
// output record per distinct merge key, preserving the first-seen order of
// keys. The first order encountered for a key contributes the merged record's
// non-item fields; subsequent orders only contribute their line items.
//
// For every input set, the total line-item count is preserved across the
// merge and each output's multi-item flag is recomputed as "item count > 1".
// Merging is deterministic given stable input order.
type MergeStrategy interface {
	// Name returns the configuration name of the strategy.
	Name() string

	// Merge consolidates the raw orders of one run. An empty input yields
	// an empty output; Merge never fails.
	Merge(ctx context.Context, orders []order.RawOrder) []order.RawOrder
}

// NewMergeStrategy returns the strategy registered under name.
// Returns a ValueIsInvalidError for an unknown name.
func NewMergeStrategy(name string, logger *slog.Logger) (MergeStrategy, error) {
	switch name {
	case ReceiverStrategyName:
		return NewReceiverMergeStrategy(), nil
	case ProductRecipientStrategyName:
		return NewProductRecipientMergeStrategy(logger), nil
	default:
		return nil, errs.NewValueIsInvalidError("mergeStrategy")
	}
}

// ReceiverMergeStrategy groups raw orders by order id plus recipient
// identity. Grouping is key-indexed, so one pass over the input suffices.
// This is the preferred strategy for all new merge logic.
type ReceiverMergeStrategy struct{}

// NewReceiverMergeStrategy creates the receiver-based merge strategy.
func NewReceiverMergeStrategy() ReceiverMergeStrategy {
	return ReceiverMergeStrategy{}
}

// Name implements MergeStrategy.
func (s ReceiverMergeStrategy) Name() string {
	return ReceiverStrategyName
}

// Merge implements MergeStrategy with a single key-indexed pass.
func (s ReceiverMergeStrategy) Merge(_ context.Context, orders []order.RawOrder) []order.RawOrder {
	merged := make([]order.RawOrder, 0, len(orders))
	index := make(map[order.MergeKey]int, len(orders))

	for _, o := range orders {
		key := order.ReceiverMergeKey(o)
		if i, ok := index[key]; ok {
			merged[i].Items = append(merged[i].Items, o.Items...)
			continue
		}
		index[key] = len(merged)
		merged = append(merged, o.CloneWithItems())
	}

	recomputeMultiItem(merged)
	return merged
}

// ProductRecipientMergeStrategy groups raw orders by product-code proxy plus
// member identity plus delivery address. Grouping is a pairwise scan with a
// consumed-set exclusion, which is O(n^2) per run. That is acceptable at the
// expected per-run volume (tens to low hundreds of orders) but is a
// scalability ceiling; prefer ReceiverMergeStrategy at higher volume.
//
// An order without line items cannot derive a product code. Such orders get
// an ungroupable fallback key and are passed through unmerged, logged as a
// warning rather than failing the run.
type ProductRecipientMergeStrategy struct {
	logger *slog.Logger
}

// NewProductRecipientMergeStrategy creates the product+recipient merge strategy.
func NewProductRecipientMergeStrategy(logger *slog.Logger) ProductRecipientMergeStrategy {
	return ProductRecipientMergeStrategy{
		logger: logger.With("component", "merge_strategy"),
	}
}

// Name implements MergeStrategy.
func (s ProductRecipientMergeStrategy) Name() string {
	return ProductRecipientStrategyName
}

// Merge implements MergeStrategy with a pairwise consumed-set scan.
func (s ProductRecipientMergeStrategy) Merge(ctx context.Context, orders []order.RawOrder) []order.RawOrder {
	keys := make([]order.MergeKey, len(orders))
	groupable := make([]bool, len(orders))

	for i, o := range orders {
		key, err := order.ProductRecipientMergeKey(o)
		if errors.Is(err, order.ErrNoLineItems) {
			s.logger.WarnContext(ctx, "order has no line items, treating as ungroupable",
				"order_id", o.OrderID,
				"shipment_box_id", o.ShipmentBoxID,
			)
			keys[i] = order.FallbackMergeKey(o)
			continue
		}
		keys[i] = key
		groupable[i] = true
	}

	consumed := make([]bool, len(orders))
	merged := make([]order.RawOrder, 0, len(orders))

	for i := range orders {
		if consumed[i] {
			continue
		}
		consumed[i] = true
		acc := orders[i].CloneWithItems()

		if groupable[i] {
			for j := i + 1; j < len(orders); j++ {
				if consumed[j] || !groupable[j] || keys[j] != keys[i] {
					continue
				}
				acc.Items = append(acc.Items, orders[j].Items...)
				consumed[j] = true
			}
		}

		merged = append(merged, acc)
	}

	recomputeMultiItem(merged)
	return merged
}

// recomputeMultiItem sets each merged record's multi-item flag from its
// accumulated line-item count.
func recomputeMultiItem(merged []order.RawOrder) {
	for i := range merged {
		merged[i].MultiItem = merged[i].ItemCount() > 1
	}
}
