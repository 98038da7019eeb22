package redisq

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/kernel"
	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/order"
)

// Message patterns understood by the order-source collaborator.
const (
	PatternFetchAcceptedOrders = "fetch-accepted-orders"
	PatternAdvanceOrderStatus  = "advance-order-status"
)

// statusAccepted is the marketplace status of orders awaiting processing.
const statusAccepted = "ACCEPT"

// OrderSourceClient talks to the order-source collaborator over its channel.
// It implements ports.OrderSource.
type OrderSourceClient struct {
	transport *Transport
	channel   string
	vendorID  string
	logger    *slog.Logger
}

// NewOrderSourceClient builds a client bound to the given channel and
// marketplace vendor id.
func NewOrderSourceClient(transport *Transport, channel, vendorID string, logger *slog.Logger) *OrderSourceClient {
	return &OrderSourceClient{
		transport: transport,
		channel:   channel,
		vendorID:  vendorID,
		logger:    logger.With("component", "order_source_client"),
	}
}

type fetchAcceptedOrdersRequest struct {
	RunID     string `json:"runId"`
	JobType   string `json:"type"`
	Status    string `json:"status"`
	VendorID  string `json:"vendorId"`
	Today     string `json:"today"`
	Yesterday string `json:"yesterday"`
}

type fetchAcceptedOrdersResponse struct {
	Data []order.RawOrder `json:"data"`
}

type advanceOrderStatusRequest struct {
	RunID          string  `json:"runId"`
	JobType        string  `json:"type"`
	ShipmentBoxIDs []int64 `json:"shipmentBoxIds"`
}

// FetchAcceptedOrders asks the collaborator for every accepted order placed
// yesterday or today and waits for the reply.
func (c *OrderSourceClient) FetchAcceptedOrders(ctx context.Context, rc kernel.RunContext) ([]order.RawOrder, error) {
	request := fetchAcceptedOrdersRequest{
		RunID:     rc.RunID().String(),
		JobType:   rc.JobLabel(),
		Status:    statusAccepted,
		VendorID:  c.vendorID,
		Today:     rc.Today(),
		Yesterday: rc.Yesterday(),
	}

	var response fetchAcceptedOrdersResponse
	if err := c.transport.Send(ctx, c.channel, PatternFetchAcceptedOrders, request, &response); err != nil {
		return nil, fmt.Errorf("fetch accepted orders: %w", err)
	}

	c.logger.InfoContext(ctx, "fetched accepted orders",
		"job", rc.JobLabel(),
		"run_id", rc.RunID().String(),
		"count", len(response.Data))

	return response.Data, nil
}

// AdvanceOrderStatus tells the collaborator to move the given shipment boxes
// to the next marketplace status. Fire-and-forget on the wire; delivery to
// redis is still confirmed.
func (c *OrderSourceClient) AdvanceOrderStatus(ctx context.Context, rc kernel.RunContext, shipmentBoxIDs []int64) error {
	request := advanceOrderStatusRequest{
		RunID:          rc.RunID().String(),
		JobType:        rc.JobLabel(),
		ShipmentBoxIDs: shipmentBoxIDs,
	}

	if err := c.transport.Emit(ctx, c.channel, PatternAdvanceOrderStatus, request); err != nil {
		return fmt.Errorf("advance order status: %w", err)
	}

	c.logger.InfoContext(ctx, "requested order status advance",
		"job", rc.JobLabel(),
		"run_id", rc.RunID().String(),
		"shipment_boxes", len(shipmentBoxIDs))

	return nil
}
