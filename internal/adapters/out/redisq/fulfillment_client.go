package redisq

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/fulfillment"
	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/kernel"
	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/order"
)

// PatternPlaceOrders asks the fulfillment collaborator to place the merged
// orders with the supplier.
const PatternPlaceOrders = "place-orders"

// FulfillmentClient talks to the fulfillment collaborator over its channel.
// It implements ports.FulfillmentService.
type FulfillmentClient struct {
	transport *Transport
	channel   string
	storeID   string
	logger    *slog.Logger
}

// NewFulfillmentClient builds a client bound to the given channel and store
// (tenant) id.
func NewFulfillmentClient(transport *Transport, channel, storeID string, logger *slog.Logger) *FulfillmentClient {
	return &FulfillmentClient{
		transport: transport,
		channel:   channel,
		storeID:   storeID,
		logger:    logger.With("component", "fulfillment_client"),
	}
}

type placeOrdersRequest struct {
	RunID   string           `json:"runId"`
	JobType string           `json:"type"`
	StoreID string           `json:"store"`
	Orders  []order.RawOrder `json:"orders"`
}

type placeOrdersResponse struct {
	Data []fulfillment.Result `json:"data"`
}

// PlaceOrders hands the merged orders to the collaborator and waits for a
// per-order result list.
func (c *FulfillmentClient) PlaceOrders(ctx context.Context, rc kernel.RunContext, merged []order.RawOrder) ([]fulfillment.Result, error) {
	request := placeOrdersRequest{
		RunID:   rc.RunID().String(),
		JobType: rc.JobLabel(),
		StoreID: c.storeID,
		Orders:  merged,
	}

	var response placeOrdersResponse
	if err := c.transport.Send(ctx, c.channel, PatternPlaceOrders, request, &response); err != nil {
		return nil, fmt.Errorf("place orders: %w", err)
	}

	c.logger.InfoContext(ctx, "placed orders with fulfillment",
		"job", rc.JobLabel(),
		"run_id", rc.RunID().String(),
		"orders", len(merged),
		"results", len(response.Data))

	return response.Data, nil
}
