package event

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/venuehq/backend/internal/domain/shared"
)

// recordingHandler captures events it receives
type recordingHandler struct {
	mu     sync.Mutex
	types  []string
	events []shared.DomainEvent
	fail   error
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return h.fail
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Test", uuid.New(), uuid.New()),
	}
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to matching handlers only", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		routed := &recordingHandler{types: []string{"kitchen.ticket_routed"}}
		fired := &recordingHandler{types: []string{"kitchen.course_fired"}}
		bus.Subscribe(routed)
		bus.Subscribe(fired)

		require.NoError(t, bus.Publish(ctx, newTestEvent("kitchen.ticket_routed")))

		assert.Equal(t, 1, routed.count())
		assert.Zero(t, fired.count())
	})

	t.Run("wildcard handler receives all events", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		audit := &recordingHandler{}
		bus.Subscribe(audit)

		require.NoError(t, bus.Publish(ctx,
			newTestEvent("kitchen.ticket_routed"),
			newTestEvent("finance.cash_variance"),
		))

		assert.Equal(t, 2, audit.count())
	})

	t.Run("a failing handler does not block the rest", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		bad := &recordingHandler{types: []string{"x"}, fail: assert.AnError}
		good := &recordingHandler{types: []string{"x"}}
		bus.Subscribe(bad)
		bus.Subscribe(good)

		require.NoError(t, bus.Publish(ctx, newTestEvent("x")))

		assert.Equal(t, 1, good.count())
	})

	t.Run("unsubscribed handlers stop receiving", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		h := &recordingHandler{types: []string{"x"}}
		bus.Subscribe(h)
		bus.Unsubscribe(h)

		require.NoError(t, bus.Publish(ctx, newTestEvent("x")))

		assert.Zero(t, h.count())
	})
}

func TestHandlerRegistry(t *testing.T) {
	t.Run("combines type handlers with wildcard handlers", func(t *testing.T) {
		registry := NewHandlerRegistry()
		typed := &recordingHandler{types: []string{"a"}}
		wildcard := &recordingHandler{}
		registry.Register(typed, "a")
		registry.Register(wildcard)

		assert.Len(t, registry.GetHandlers("a"), 2)
		assert.Len(t, registry.GetHandlers("b"), 1)
	})

	t.Run("unregister removes empty type buckets", func(t *testing.T) {
		registry := NewHandlerRegistry()
		h := &recordingHandler{types: []string{"a"}}
		registry.Register(h, "a")
		registry.Unregister(h)

		assert.Empty(t, registry.GetHandlers("a"))
	})
}
