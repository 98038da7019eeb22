package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	httpadapter "github.com/daechan-jo/auto-store-services-order/internal/adapters/in/http"
	inredisq "github.com/daechan-jo/auto-store-services-order/internal/adapters/in/redisq"
	outredisq "github.com/daechan-jo/auto-store-services-order/internal/adapters/out/redisq"
	"github.com/daechan-jo/auto-store-services-order/internal/core/application/usecases/commands"
	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/services"
	"github.com/daechan-jo/auto-store-services-order/internal/jobs"
	"github.com/daechan-jo/auto-store-services-order/internal/notify"

	"github.com/redis/go-redis/v9"
)

// CompositionRoot wires the transport, clients, use case and long-running
// workers together. It owns the stateful singletons (redis client, job
// manager, dispatchers) for the lifetime of the process.
type CompositionRoot struct {
	redisClient       *redis.Client
	jobManager        *jobs.JobManager
	notifyDispatcher  *notify.Dispatcher
	inboundDispatcher *inredisq.Dispatcher
	httpServer        *httpadapter.Server
}

// NewCompositionRoot builds the full object graph from configuration.
func NewCompositionRoot(config Config, logger *slog.Logger) (*CompositionRoot, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	transport := outredisq.NewTransport(redisClient, config.SendTimeout, logger)

	orderSource := outredisq.NewOrderSourceClient(
		transport, config.OrderSourceChannel, config.VendorID, logger)
	fulfillmentClient := outredisq.NewFulfillmentClient(
		transport, config.FulfillmentChannel, config.StoreID, logger)
	mailClient := outredisq.NewMailClient(
		transport, config.MailChannel, config.StoreID, logger)

	notifyDispatcher := notify.NewDispatcher(
		mailClient, config.NotifyQueueSize, config.NotifyTimeout, logger)

	strategy, err := services.NewMergeStrategy(config.MergeStrategy, logger)
	if err != nil {
		return nil, fmt.Errorf("configure merge strategy: %w", err)
	}

	handler := commands.NewProcessOrdersCommandHandler(
		orderSource, fulfillmentClient, notifyDispatcher, strategy, config.SettleDelay, logger)

	jobManager := jobs.NewJobManager(handler, config.CronSpec, logger)

	inboundDispatcher := inredisq.NewDispatcher(redisClient, config.JobChannel, logger)
	registerJobChannelHandlers(inboundDispatcher, jobManager.OrderJob())

	return &CompositionRoot{
		redisClient:       redisClient,
		jobManager:        jobManager,
		notifyDispatcher:  notifyDispatcher,
		inboundDispatcher: inboundDispatcher,
		httpServer:        httpadapter.NewServer(jobManager.OrderJob()),
	}, nil
}

// registerJobChannelHandlers binds the message patterns this service answers
// on its own job channel. Everything else gets an unknown-pattern reply from
// the dispatcher.
func registerJobChannelHandlers(dispatcher *inredisq.Dispatcher, orderJob *jobs.OrderJob) {
	dispatcher.Register("health-check", func(_ context.Context, _ json.RawMessage) (any, error) {
		return inredisq.StatusReply{Status: "ok"}, nil
	})

	dispatcher.Register("run-order-job", func(_ context.Context, _ json.RawMessage) (any, error) {
		rc, started, err := orderJob.Trigger()
		if err != nil {
			return nil, err
		}
		if !started {
			return inredisq.StatusReply{Status: "skipped", Message: "run already in flight"}, nil
		}
		return inredisq.StatusReply{Status: "ok", Message: rc.RunID().String()}, nil
	})
}

// JobManager returns the scheduled job coordinator.
func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return c.jobManager
}

// NotifyDispatcher returns the queued notification worker.
func (c *CompositionRoot) NotifyDispatcher() *notify.Dispatcher {
	return c.notifyDispatcher
}

// InboundDispatcher returns the job channel consumer.
func (c *CompositionRoot) InboundDispatcher() *inredisq.Dispatcher {
	return c.inboundDispatcher
}

// HTTPServer returns the ops HTTP surface.
func (c *CompositionRoot) HTTPServer() *httpadapter.Server {
	return c.httpServer
}

// Close releases the redis connection. Call after every worker is stopped.
func (c *CompositionRoot) Close() error {
	return c.redisClient.Close()
}
