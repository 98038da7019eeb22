package redisq

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/fulfillment"
	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/kernel"
)

// Message patterns understood by the mail collaborator.
const (
	PatternNotifySuccess = "notify-success"
	PatternNotifyFailure = "notify-failure"
	PatternNotifyError   = "notify-error"
)

// MailClient emits notification messages to the mail collaborator. It
// implements ports.Notifier. Every pattern is fire-and-forget.
type MailClient struct {
	transport *Transport
	channel   string
	storeID   string
	logger    *slog.Logger
}

// NewMailClient builds a client bound to the given channel and store
// (tenant) id.
func NewMailClient(transport *Transport, channel, storeID string, logger *slog.Logger) *MailClient {
	return &MailClient{
		transport: transport,
		channel:   channel,
		storeID:   storeID,
		logger:    logger.With("component", "mail_client"),
	}
}

type successMailRequest struct {
	StoreID string               `json:"store"`
	Results []fulfillment.Result `json:"result"`
}

type failureMailRequest struct {
	RunID   string               `json:"runId"`
	StoreID string               `json:"store"`
	Results []fulfillment.Result `json:"result"`
}

type errorMailRequest struct {
	RunID   string `json:"runId"`
	JobType string `json:"type"`
	StoreID string `json:"store"`
	Message string `json:"message"`
}

// NotifySuccess mails the successfully placed orders. The success mail does
// not carry the run id.
func (c *MailClient) NotifySuccess(ctx context.Context, rc kernel.RunContext, results []fulfillment.Result) error {
	request := successMailRequest{
		StoreID: c.storeID,
		Results: results,
	}

	if err := c.transport.Emit(ctx, c.channel, PatternNotifySuccess, request); err != nil {
		return fmt.Errorf("notify success: %w", err)
	}

	c.logger.InfoContext(ctx, "queued success mail",
		"job", rc.JobLabel(),
		"run_id", rc.RunID().String(),
		"results", len(results))

	return nil
}

// NotifyFailure mails the orders that failed placement, tagged with the run
// id so the failure can be traced back to its run.
func (c *MailClient) NotifyFailure(ctx context.Context, rc kernel.RunContext, results []fulfillment.Result) error {
	request := failureMailRequest{
		RunID:   rc.RunID().String(),
		StoreID: c.storeID,
		Results: results,
	}

	if err := c.transport.Emit(ctx, c.channel, PatternNotifyFailure, request); err != nil {
		return fmt.Errorf("notify failure: %w", err)
	}

	c.logger.InfoContext(ctx, "queued failure mail",
		"job", rc.JobLabel(),
		"run_id", rc.RunID().String(),
		"results", len(results))

	return nil
}

// NotifyError mails operators about a run that aborted before producing any
// results.
func (c *MailClient) NotifyError(ctx context.Context, rc kernel.RunContext, message string) error {
	request := errorMailRequest{
		RunID:   rc.RunID().String(),
		JobType: rc.JobLabel(),
		StoreID: c.storeID,
		Message: message,
	}

	if err := c.transport.Emit(ctx, c.channel, PatternNotifyError, request); err != nil {
		return fmt.Errorf("notify error: %w", err)
	}

	c.logger.InfoContext(ctx, "queued error mail",
		"job", rc.JobLabel(),
		"run_id", rc.RunID().String())

	return nil
}
