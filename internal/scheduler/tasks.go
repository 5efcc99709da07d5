// Package scheduler enqueues and processes delayed quote follow-up tasks
// backed by asynq.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskQuoteFollowUp = "quotes.follow_up"

// QuoteFollowUpPayload identifies the quote a follow-up reminder targets.
type QuoteFollowUpPayload struct {
	QuoteID    string `json:"quoteId"`
	BusinessID string `json:"businessId"`
}

// NewQuoteFollowUpTask builds the asynq task for a follow-up reminder.
func NewQuoteFollowUpTask(payload QuoteFollowUpPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskQuoteFollowUp, data), nil
}

// ParseQuoteFollowUpPayload decodes the payload of a follow-up task.
func ParseQuoteFollowUpPayload(task *asynq.Task) (QuoteFollowUpPayload, error) {
	var payload QuoteFollowUpPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return QuoteFollowUpPayload{}, err
	}
	return payload, nil
}
