package scheduler

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type testSchedulerConfig struct {
	redisURL string
	queue    string
}

func (c testSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c testSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (c testSchedulerConfig) GetAsynqQueueName() string { return c.queue }
func (c testSchedulerConfig) GetAsynqConcurrency() int  { return 1 }

func TestClient_ScheduleQuoteFollowUp(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(testSchedulerConfig{redisURL: "redis://" + mr.Addr(), queue: "default"})
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	defer client.Close()

	quoteID := uuid.New()
	businessID := uuid.New()
	dueAt := time.Now().Add(48 * time.Hour)

	if err := client.ScheduleQuoteFollowUp(quoteID, businessID, dueAt); err != nil {
		t.Fatalf("unexpected error scheduling follow-up: %v", err)
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: mr.Addr()})
	defer inspector.Close()

	tasks, err := inspector.ListScheduledTasks("default")
	if err != nil {
		t.Fatalf("unexpected error listing tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 scheduled task, got %d", len(tasks))
	}
	if tasks[0].Type != TaskQuoteFollowUp {
		t.Fatalf("expected task type %s, got %s", TaskQuoteFollowUp, tasks[0].Type)
	}

	payload, err := ParseQuoteFollowUpPayload(asynq.NewTask(tasks[0].Type, tasks[0].Payload))
	if err != nil {
		t.Fatalf("unexpected error parsing payload: %v", err)
	}
	if payload.QuoteID != quoteID.String() {
		t.Fatalf("expected quote id %s, got %s", quoteID, payload.QuoteID)
	}
	if payload.BusinessID != businessID.String() {
		t.Fatalf("expected business id %s, got %s", businessID, payload.BusinessID)
	}
}

func TestNilClientIsSafe(t *testing.T) {
	var client *Client
	if err := client.ScheduleQuoteFollowUp(uuid.New(), uuid.New(), time.Now()); err != nil {
		t.Fatalf("nil client should be a no-op, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("nil client close should be a no-op, got %v", err)
	}
}
