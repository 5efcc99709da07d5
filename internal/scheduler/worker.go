package scheduler

import (
	"context"
	"fmt"

	businessrepo "devis_backend/internal/business/repository"
	"devis_backend/internal/email"
	"devis_backend/internal/events"
	quotesrepo "devis_backend/internal/quotes/repository"
	"devis_backend/platform/apperr"
	"devis_backend/platform/config"
	"devis_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Worker consumes follow-up tasks. A reminder only goes out when the quote
// is still SENT at processing time; accepted, rejected, and deleted quotes
// drop the task silently.
type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	quotes   *quotesrepo.Repository
	business *businessrepo.Repository
	sender   email.Sender
	bus      events.Bus
	log      *logger.Logger
}

// NewWorker creates the asynq worker and registers its task handlers.
func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, sender email.Sender, bus events.Bus, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		quotes:   quotesrepo.New(pool),
		business: businessrepo.New(pool),
		sender:   sender,
		bus:      bus,
		log:      log,
	}

	mux.HandleFunc(TaskQuoteFollowUp, w.handleQuoteFollowUp)

	return w, nil
}

// Run serves tasks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleQuoteFollowUp(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseQuoteFollowUpPayload(task)
	if err != nil {
		return err
	}

	quoteID, err := uuid.Parse(payload.QuoteID)
	if err != nil {
		return err
	}
	businessID, err := uuid.Parse(payload.BusinessID)
	if err != nil {
		return err
	}

	quote, err := w.quotes.GetWithItems(ctx, businessID, quoteID)
	if err != nil {
		if apperr.GetKind(err) == apperr.KindNotFound {
			return nil
		}
		return err
	}
	if quote.Status != quotesrepo.StatusSent {
		return nil
	}

	biz, err := w.business.Get(ctx, businessID)
	if err != nil {
		return err
	}

	clientName := quote.ClientFirstName
	if quote.ClientLastName != "" {
		clientName = clientName + " " + quote.ClientLastName
	}

	if err := w.sender.SendFollowUpEmail(ctx, quote.ClientEmail, email.FollowUpEmail{
		QuoteNumber:  quote.QuoteNumber,
		BusinessName: biz.Name,
		ClientName:   clientName,
		Total:        quote.Total,
	}); err != nil {
		w.log.Error("follow-up email failed",
			"quote_number", quote.QuoteNumber, "error", err)
	}

	w.bus.Publish(ctx, events.QuoteFollowUpDue{
		BaseEvent:   events.NewBaseEvent(),
		QuoteID:     quoteID,
		BusinessID:  businessID,
		QuoteNumber: quote.QuoteNumber,
		ClientEmail: quote.ClientEmail,
	})

	w.log.Info("quote follow-up processed",
		"quote_number", quote.QuoteNumber, "business_id", businessID)
	return nil
}
