package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"devis_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
	value string
}

func (e testEvent) EventName() string { return "test.event" }

func TestInMemoryBus_PublishSyncReachesAllHandlers(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	var mu sync.Mutex
	var seen []string
	handler := HandlerFunc(func(_ context.Context, event Event) error {
		e := event.(testEvent)
		mu.Lock()
		seen = append(seen, e.value)
		mu.Unlock()
		return nil
	})

	bus.Subscribe("test.event", handler)
	bus.Subscribe("test.event", handler)

	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), value: "hello"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(seen) != 2 {
		t.Fatalf("expected 2 handler invocations, got %d", len(seen))
	}
}

func TestInMemoryBus_PublishSyncPropagatesHandlerError(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error {
		return errors.New("boom")
	}))

	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()}); err == nil {
		t.Fatal("expected handler error to propagate")
	}
}

func TestInMemoryBus_PublishSurvivesCallerCancellation(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	done := make(chan struct{})
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, _ Event) error {
		select {
		case <-ctx.Done():
			t.Error("handler context cancelled with caller")
		case <-time.After(20 * time.Millisecond):
		}
		close(done)
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	bus.Publish(ctx, testEvent{BaseEvent: NewBaseEvent()})
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler never ran")
	}
}
