package redisq_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/daechan-jo/auto-store-services-order/internal/adapters/in/redisq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestDispatcher_Route_KnownPattern verifies a registered handler receives
// the envelope payload and its reply is returned as-is.
func TestDispatcher_Route_KnownPattern(t *testing.T) {
	dispatcher := redisq.NewDispatcher(nil, "job-channel", discardLogger())
	dispatcher.Register("ping", func(_ context.Context, payload json.RawMessage) (any, error) {
		var body map[string]string
		require.NoError(t, json.Unmarshal(payload, &body))
		return redisq.StatusReply{Status: "ok", Message: body["echo"]}, nil
	})

	reply := dispatcher.Route(context.Background(), redisq.Envelope{
		Pattern: "ping",
		Payload: json.RawMessage(`{"echo":"pong"}`),
	})

	status, ok := reply.(redisq.StatusReply)
	require.True(t, ok)
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "pong", status.Message)
}

// TestDispatcher_Route_UnknownPattern verifies the requester gets an error
// reply naming the pattern instead of being left waiting.
func TestDispatcher_Route_UnknownPattern(t *testing.T) {
	dispatcher := redisq.NewDispatcher(nil, "job-channel", discardLogger())

	reply := dispatcher.Route(context.Background(), redisq.Envelope{Pattern: "no-such-pattern"})

	status, ok := reply.(redisq.StatusReply)
	require.True(t, ok)
	assert.Equal(t, "error", status.Status)
	assert.Equal(t, "unknown pattern: no-such-pattern", status.Message)
}

// TestDispatcher_Route_HandlerError verifies a failing handler is converted
// into an error reply carrying the failure message.
func TestDispatcher_Route_HandlerError(t *testing.T) {
	dispatcher := redisq.NewDispatcher(nil, "job-channel", discardLogger())
	dispatcher.Register("boom", func(context.Context, json.RawMessage) (any, error) {
		return nil, errors.New("handler blew up")
	})

	reply := dispatcher.Route(context.Background(), redisq.Envelope{Pattern: "boom"})

	status, ok := reply.(redisq.StatusReply)
	require.True(t, ok)
	assert.Equal(t, "error", status.Status)
	assert.Equal(t, "handler blew up", status.Message)
}
