// Package redisq implements the inbound side of the redis-list transport:
// a dispatcher that pops envelopes from the service's job channel and routes
// them to registered pattern handlers.
package redisq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// popTimeout bounds each blocking pop so the loop can observe shutdown.
const popTimeout = 1 * time.Second

// Envelope is the wire frame popped from the job channel. It mirrors the
// outbound frame; ReplyTo names the list a reply is expected on.
type Envelope struct {
	Pattern       string          `json:"pattern"`
	Payload       json.RawMessage `json:"payload"`
	CorrelationID string          `json:"correlationId,omitempty"`
	ReplyTo       string          `json:"replyTo,omitempty"`
}

// StatusReply is the generic reply shape for handlers without a richer
// response and for routing errors.
type StatusReply struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HandlerFunc processes the payload of one envelope and returns the reply
// body, or an error which is reported back to the requester.
type HandlerFunc func(ctx context.Context, payload json.RawMessage) (any, error)

// Dispatcher consumes the service's inbound job channel and routes each
// envelope by pattern. Unknown patterns are answered with an error reply so
// the requester is not left blocking on its reply list.
type Dispatcher struct {
	client   redis.UniversalClient
	channel  string
	handlers map[string]HandlerFunc
	logger   *slog.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewDispatcher builds a dispatcher for the given job channel. Handlers are
// registered before Start.
func NewDispatcher(client redis.UniversalClient, channel string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		client:   client,
		channel:  channel,
		handlers: make(map[string]HandlerFunc),
		logger:   logger.With("component", "job_channel_dispatcher"),
		done:     make(chan struct{}),
	}
}

// Register binds a handler to a message pattern. Not safe to call after
// Start.
func (d *Dispatcher) Register(pattern string, handler HandlerFunc) {
	d.handlers[pattern] = handler
}

// Start launches the consume loop in its own goroutine.
func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		d.cancel = cancel
		go d.consume(ctx)
		d.logger.Info("job channel dispatcher started", "channel", d.channel)
	})
}

// Stop halts the consume loop and waits for it to exit.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		if d.cancel != nil {
			d.cancel()
			<-d.done
		}
		d.logger.Info("job channel dispatcher stopped", "channel", d.channel)
	})
}

func (d *Dispatcher) consume(ctx context.Context) {
	defer close(d.done)

	for {
		popped, err := d.client.BRPop(ctx, popTimeout, d.channel).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			d.logger.ErrorContext(ctx, "failed to pop from job channel",
				"channel", d.channel,
				"error", err)
			continue
		}

		var envelope Envelope
		if err = json.Unmarshal([]byte(popped[1]), &envelope); err != nil {
			d.logger.ErrorContext(ctx, "discarding malformed envelope",
				"channel", d.channel,
				"error", err)
			continue
		}

		reply := d.Route(ctx, envelope)
		if envelope.ReplyTo == "" {
			continue
		}

		body, err := json.Marshal(reply)
		if err != nil {
			d.logger.ErrorContext(ctx, "failed to encode reply",
				"pattern", envelope.Pattern,
				"error", err)
			continue
		}
		if err = d.client.LPush(ctx, envelope.ReplyTo, body).Err(); err != nil {
			d.logger.ErrorContext(ctx, "failed to push reply",
				"pattern", envelope.Pattern,
				"error", err)
		}
	}
}

// Route resolves the handler for the envelope's pattern and runs it. An
// unregistered pattern or a handler error produces an error StatusReply
// instead of silence.
func (d *Dispatcher) Route(ctx context.Context, envelope Envelope) any {
	handler, ok := d.handlers[envelope.Pattern]
	if !ok {
		d.logger.WarnContext(ctx, "received message with unknown pattern",
			"pattern", envelope.Pattern)
		return StatusReply{
			Status:  "error",
			Message: fmt.Sprintf("unknown pattern: %s", envelope.Pattern),
		}
	}

	reply, err := handler(ctx, envelope.Payload)
	if err != nil {
		d.logger.ErrorContext(ctx, "pattern handler failed",
			"pattern", envelope.Pattern,
			"error", err)
		return StatusReply{Status: "error", Message: err.Error()}
	}

	return reply
}
