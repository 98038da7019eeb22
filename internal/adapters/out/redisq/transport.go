// Package redisq implements the outbound message transport on redis lists
// and the typed collaborator clients built on top of it.
//
// Named channels are redis lists. Two primitives exist:
//   - Emit: fire-and-forget; the envelope is pushed and the sender moves on
//   - Send: request/reply; the envelope carries a correlation id and a
//     per-request reply list the sender blocks on until the reply arrives
//     or the send timeout elapses
package redisq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrReplyTimeout is returned by Send when no reply arrives within the
// configured send timeout.
var ErrReplyTimeout = errors.New("timed out waiting for reply")

// Envelope is the wire frame for every message on a channel.
type Envelope struct {
	Pattern       string          `json:"pattern"`
	Payload       json.RawMessage `json:"payload"`
	CorrelationID string          `json:"correlationId,omitempty"`
	ReplyTo       string          `json:"replyTo,omitempty"`
}

// Transport sends envelopes over redis lists. It is safe for concurrent use;
// each Send uses its own reply list keyed by correlation id.
type Transport struct {
	client      redis.UniversalClient
	sendTimeout time.Duration
	logger      *slog.Logger
}

// NewTransport wraps a redis client. sendTimeout bounds how long Send waits
// for a reply.
func NewTransport(client redis.UniversalClient, sendTimeout time.Duration, logger *slog.Logger) *Transport {
	return &Transport{
		client:      client,
		sendTimeout: sendTimeout,
		logger:      logger.With("component", "redis_transport"),
	}
}

// Emit pushes a fire-and-forget envelope onto the channel. The send is
// acknowledged by redis but no reply is ever awaited.
func (t *Transport) Emit(ctx context.Context, channel, pattern string, payload any) error {
	frame, err := marshalEnvelope(pattern, payload, "", "")
	if err != nil {
		return err
	}

	if err = t.client.LPush(ctx, channel, frame).Err(); err != nil {
		return fmt.Errorf("emit %q to %q: %w", pattern, channel, err)
	}

	t.logger.DebugContext(ctx, "emitted message", "channel", channel, "pattern", pattern)
	return nil
}

// Send pushes a request envelope onto the channel and blocks on the reply
// list until the responder answers or the send timeout elapses. The reply
// payload is unmarshaled into reply.
func (t *Transport) Send(ctx context.Context, channel, pattern string, payload, reply any) error {
	correlationID := uuid.NewString()
	replyTo := fmt.Sprintf("%s:reply:%s", channel, correlationID)

	frame, err := marshalEnvelope(pattern, payload, correlationID, replyTo)
	if err != nil {
		return err
	}

	if err = t.client.LPush(ctx, channel, frame).Err(); err != nil {
		return fmt.Errorf("send %q to %q: %w", pattern, channel, err)
	}

	popped, err := t.client.BRPop(ctx, t.sendTimeout, replyTo).Result()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("send %q to %q: %w", pattern, channel, ErrReplyTimeout)
	}
	if err != nil {
		return fmt.Errorf("send %q to %q: await reply: %w", pattern, channel, err)
	}

	// BRPop returns [key, value].
	if err = json.Unmarshal([]byte(popped[1]), reply); err != nil {
		return fmt.Errorf("send %q to %q: decode reply: %w", pattern, channel, err)
	}

	t.logger.DebugContext(ctx, "received reply", "channel", channel, "pattern", pattern)
	return nil
}

func marshalEnvelope(pattern string, payload any, correlationID, replyTo string) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %q payload: %w", pattern, err)
	}

	frame, err := json.Marshal(Envelope{
		Pattern:       pattern,
		Payload:       body,
		CorrelationID: correlationID,
		ReplyTo:       replyTo,
	})
	if err != nil {
		return nil, fmt.Errorf("encode %q envelope: %w", pattern, err)
	}

	return frame, nil
}
