package exports

import (
	"context"

	"devis_backend/internal/events"
	"devis_backend/platform/logger"

	"github.com/google/uuid"
)

// ExportResult is the outcome of a CSV export.
type ExportResult struct {
	Content    []byte
	QuoteCount int
	RowCount   int
	ItemCount  int
}

// Service builds quote exports and handles their side effects.
type Service struct {
	repo     *Repository
	archiver Archiver
	bus      events.Bus
	log      *logger.Logger
}

// NewService creates the export service. The archiver may be nil when object
// storage is not configured.
func NewService(repo *Repository, archiver Archiver, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, archiver: archiver, bus: bus, log: log}
}

// ExportQuotesCSV renders every quote of the business as CSV. A tenant with
// zero quotes gets a zero-length file and no export event.
func (s *Service) ExportQuotesCSV(ctx context.Context, businessID, actorID uuid.UUID) (ExportResult, error) {
	locale, err := s.repo.BusinessLocale(ctx, businessID)
	if err != nil {
		return ExportResult{}, err
	}

	quotes, err := s.repo.ListQuotesWithItems(ctx, businessID)
	if err != nil {
		return ExportResult{}, err
	}

	content, rowCount, err := BuildCSV(quotes, locale)
	if err != nil {
		return ExportResult{}, err
	}

	itemCount := 0
	for _, quote := range quotes {
		itemCount += len(quote.Items)
	}

	result := ExportResult{
		Content:    content,
		QuoteCount: len(quotes),
		RowCount:   rowCount,
		ItemCount:  itemCount,
	}
	if len(quotes) == 0 {
		return result, nil
	}

	s.log.ExportEvent("csv", result.QuoteCount, result.RowCount, businessID.String())
	s.bus.Publish(ctx, events.QuotesExported{
		BaseEvent:  events.NewBaseEvent(),
		BusinessID: businessID,
		QuoteCount: result.QuoteCount,
		ItemCount:  result.ItemCount,
		Format:     "csv",
		ActorID:    actorID,
	})

	if s.archiver != nil {
		if key, err := s.archiver.ArchiveCSV(ctx, businessID, content); err != nil {
			s.log.Error("export archive upload failed", "business_id", businessID, "error", err)
		} else {
			s.log.Info("export archived", "business_id", businessID, "key", key)
		}
	}

	return result, nil
}
