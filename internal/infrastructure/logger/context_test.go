package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestContext(t *testing.T) {
	t.Run("FromContext returns no-op when absent", func(t *testing.T) {
		l := FromContext(context.Background())
		assert.NotNil(t, l)
	})

	t.Run("WithContext round-trips the logger", func(t *testing.T) {
		base := zap.NewNop()
		ctx := WithContext(context.Background(), base)
		assert.Same(t, base, FromContext(ctx))
	})

	t.Run("WithVenueID stores the venue and enriches the logger", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		base := zap.New(core)

		ctx, enriched := WithVenueID(context.Background(), base, "venue-42")
		enriched.Info("hello")

		assert.Equal(t, "venue-42", GetVenueID(ctx))
		entries := logs.All()
		assert.Len(t, entries, 1)
		assert.Equal(t, "venue-42", entries[0].ContextMap()["venue_id"])
	})

	t.Run("WithRequestID stores the request id", func(t *testing.T) {
		ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-1")
		assert.Equal(t, "req-1", GetRequestID(ctx))
	})
}

func TestContextLogger(t *testing.T) {
	t.Run("injects venue and request ids into entries", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		base := zap.New(core)

		ctx := WithContext(context.Background(), base)
		ctx, _ = WithRequestID(ctx, base, "req-9")
		ctx, _ = WithVenueID(ctx, base, "venue-9")

		L(ctx).Info("routed ticket")

		entries := logs.All()
		assert.NotEmpty(t, entries)
		last := entries[len(entries)-1].ContextMap()
		assert.Equal(t, "req-9", last["request_id"])
		assert.Equal(t, "venue-9", last["venue_id"])
	})

	t.Run("nil logger falls back to no-op", func(t *testing.T) {
		cl := &ContextLogger{ctx: context.Background()}
		assert.NotPanics(t, func() { cl.Info("noop") })
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLevel("debug").String())
	assert.Equal(t, "info", parseLevel("unknown").String())
	assert.Equal(t, "warn", parseLevel("warning").String())
}
