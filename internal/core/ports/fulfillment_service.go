package ports

import (
	"context"

	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/fulfillment"
	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/kernel"
	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/order"
)

// FulfillmentService is the downstream collaborator that places consolidated
// orders with the supplier.
type FulfillmentService interface {
	// PlaceOrders delegates the merged orders for placement (request/reply)
	// and returns one outcome record per order. Results are never retried
	// automatically by this service.
	PlaceOrders(ctx context.Context, rc kernel.RunContext, merged []order.RawOrder) ([]fulfillment.Result, error)
}
