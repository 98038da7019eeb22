// Package ports defines the outbound contracts of the order service: the
// upstream order source, the downstream fulfillment service, and the mail
// collaborator. All of them are remote collaborators reached over the
// message transport; adapters implement these interfaces.
package ports

import (
	"context"

	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/kernel"
	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/order"
)

// OrderSource is the upstream marketplace order system.
type OrderSource interface {
	// FetchAcceptedOrders retrieves the newly-accepted raw orders within the
	// run's date window (request/reply). An empty slice is a valid result
	// and means there is nothing to process this run.
	FetchAcceptedOrders(ctx context.Context, rc kernel.RunContext) ([]order.RawOrder, error)

	// AdvanceOrderStatus requests the status transition to "preparing" for
	// the given shipment boxes (fire-and-forget). There is no transactional
	// link between this and the subsequent fulfillment delegation.
	AdvanceOrderStatus(ctx context.Context, rc kernel.RunContext, shipmentBoxIDs []int64) error
}
