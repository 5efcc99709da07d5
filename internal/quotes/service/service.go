package service

import (
	"context"
	"strings"
	"time"

	"devis_backend/internal/events"
	"devis_backend/internal/quotes/repository"
	"devis_backend/internal/quotes/transport"
	"devis_backend/platform/apperr"
	"devis_backend/platform/logger"
	"devis_backend/platform/money"
	"devis_backend/platform/sanitize"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultPageSize = 25
	maxPageSize     = 100

	// Follow-up timing: one day before expiry, or a week after send when the
	// quote has no validity date.
	followUpLeadTime   = 24 * time.Hour
	followUpFallback   = 7 * 24 * time.Hour
)

// Service implements the quote lifecycle.
type Service struct {
	repo      QuoteStore
	catalog   CatalogReader
	contacts  ContactReader
	notifier  Notifier
	scheduler FollowUpScheduler
	bus       events.Bus
	log       *logger.Logger
}

// New creates a new quotes service. scheduler may be nil when reminders are
// not configured.
func New(repo QuoteStore, catalog CatalogReader, contacts ContactReader, notifier Notifier, scheduler FollowUpScheduler, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		catalog:   catalog,
		contacts:  contacts,
		notifier:  notifier,
		scheduler: scheduler,
		bus:       bus,
		log:       log,
	}
}

// Create prices the requested lines server-side, assigns the next quote
// number, and stores the quote as a draft.
func (s *Service) Create(ctx context.Context, businessID, actorID uuid.UUID, req transport.CreateQuoteRequest) (*transport.QuoteResponse, error) {
	if _, err := s.contacts.ClientByID(ctx, businessID, req.ClientID); err != nil {
		return nil, err
	}

	candidates, err := s.buildCandidates(ctx, businessID, req.Items, nil)
	if err != nil {
		return nil, err
	}

	lines, totals, err := CalculateQuote(candidates, normalizeDiscountType(req.DiscountType), discountValueOf(req.DiscountValue))
	if err != nil {
		return nil, err
	}

	business, err := s.contacts.BusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	quote := &repository.Quote{
		ClientID:              req.ClientID,
		Subtotal:              totals.Subtotal,
		PackageDiscountsTotal: totals.PackageDiscountsTotal,
		DiscountType:          totals.DiscountType,
		DiscountValue:         totals.DiscountValue,
		DiscountAmount:        totals.DiscountAmount,
		Total:                 totals.Total,
		ValidUntil:            req.ValidUntil,
		Notes:                 sanitize.TextPtr(req.Notes),
	}

	created, err := s.repo.CreateWithItems(ctx, businessID, business.QuotePrefix, quote, toRepoItems(lines))
	if err != nil {
		return nil, err
	}

	s.log.QuoteEvent("created", created.QuoteNumber, businessID.String())
	s.bus.Publish(ctx, events.QuoteCreated{
		BaseEvent:   events.NewBaseEvent(),
		QuoteID:     created.ID,
		BusinessID:  businessID,
		ClientID:    created.ClientID,
		QuoteNumber: created.QuoteNumber,
		ActorID:     actorID,
	})

	return buildResponse(created), nil
}

// Get returns a quote with its items.
func (s *Service) Get(ctx context.Context, businessID, quoteID uuid.UUID) (*transport.QuoteResponse, error) {
	quote, err := s.repo.GetWithItems(ctx, businessID, quoteID)
	if err != nil {
		return nil, err
	}
	return buildResponse(quote), nil
}

// List returns a page of quotes.
func (s *Service) List(ctx context.Context, businessID uuid.UUID, status, search, sortBy, sortOrder string, page, pageSize int) (*transport.ListQuotesResponse, error) {
	if status != "" && !isKnownStatus(status) {
		return nil, apperr.Validation("unknown status filter")
	}
	if page < 1 {
		page = 1
	}
	pageSize = clampPageSize(pageSize)

	result, err := s.repo.List(ctx, businessID, repository.ListParams{
		Status:    status,
		Search:    strings.TrimSpace(search),
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]transport.QuoteResponse, 0, len(result.Quotes))
	for i := range result.Quotes {
		responses = append(responses, *buildResponse(&result.Quotes[i]))
	}

	return &transport.ListQuotesResponse{
		Quotes:   responses,
		Total:    result.Total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update replaces a draft quote's content. The submitted lines are
// authoritative and totals are recomputed, except that package-originated
// lines keep their stored price snapshot.
func (s *Service) Update(ctx context.Context, businessID, quoteID uuid.UUID, req transport.UpdateQuoteRequest) (*transport.QuoteResponse, error) {
	existing, err := s.repo.GetWithItems(ctx, businessID, quoteID)
	if err != nil {
		return nil, err
	}
	if existing.Status != repository.StatusDraft {
		return nil, apperr.InvalidState("only draft quotes can be edited")
	}

	if _, err := s.contacts.ClientByID(ctx, businessID, req.ClientID); err != nil {
		return nil, err
	}

	existingItems := make(map[uuid.UUID]repository.QuoteItem, len(existing.Items))
	for _, item := range existing.Items {
		existingItems[item.ID] = item
	}

	candidates, err := s.buildCandidates(ctx, businessID, req.Items, existingItems)
	if err != nil {
		return nil, err
	}

	lines, totals, err := CalculateQuote(candidates, normalizeDiscountType(req.DiscountType), discountValueOf(req.DiscountValue))
	if err != nil {
		return nil, err
	}

	quote := &repository.Quote{
		ID:                    quoteID,
		ClientID:              req.ClientID,
		Subtotal:              totals.Subtotal,
		PackageDiscountsTotal: totals.PackageDiscountsTotal,
		DiscountType:          totals.DiscountType,
		DiscountValue:         totals.DiscountValue,
		DiscountAmount:        totals.DiscountAmount,
		Total:                 totals.Total,
		ValidUntil:            req.ValidUntil,
		Notes:                 sanitize.TextPtr(req.Notes),
	}

	updated, err := s.repo.UpdateWithItems(ctx, businessID, quote, toRepoItems(lines))
	if err != nil {
		return nil, err
	}
	return buildResponse(updated), nil
}

// Send emails the quote to the client and, only after the email is accepted,
// transitions the quote to SENT. A notifier failure leaves the draft intact.
func (s *Service) Send(ctx context.Context, businessID, actorID, quoteID uuid.UUID) (*transport.QuoteResponse, error) {
	quote, err := s.repo.GetWithItems(ctx, businessID, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.Status != repository.StatusDraft {
		return nil, apperr.InvalidState("only draft quotes can be sent")
	}

	business, err := s.contacts.BusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	clientName := strings.TrimSpace(quote.ClientFirstName + " " + quote.ClientLastName)
	err = s.notifier.NotifyQuoteSent(ctx, QuoteNotification{
		QuoteID:      quote.ID,
		QuoteNumber:  quote.QuoteNumber,
		BusinessName: business.Name,
		ClientName:   clientName,
		ClientEmail:  quote.ClientEmail,
		Total:        quote.Total,
		ValidUntil:   quote.ValidUntil,
	})
	if err != nil {
		return nil, apperr.External("failed to deliver quote email", err)
	}

	sentAt := time.Now()
	if err := s.repo.MarkSent(ctx, businessID, quoteID, sentAt); err != nil {
		return nil, err
	}

	s.log.QuoteEvent("sent", quote.QuoteNumber, businessID.String())
	s.bus.Publish(ctx, events.QuoteSent{
		BaseEvent:   events.NewBaseEvent(),
		QuoteID:     quote.ID,
		BusinessID:  businessID,
		ClientID:    quote.ClientID,
		QuoteNumber: quote.QuoteNumber,
		ClientEmail: quote.ClientEmail,
		ActorID:     actorID,
	})

	s.scheduleFollowUp(quote, sentAt)

	return s.Get(ctx, businessID, quoteID)
}

// UpdateStatus resolves a sent quote to ACCEPTED or REJECTED.
func (s *Service) UpdateStatus(ctx context.Context, businessID, actorID, quoteID uuid.UUID, newStatus string) (*transport.QuoteResponse, error) {
	quote, err := s.repo.GetWithItems(ctx, businessID, quoteID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, businessID, quoteID, newStatus); err != nil {
		return nil, err
	}

	s.log.QuoteEvent("status_changed", quote.QuoteNumber, businessID.String())
	s.bus.Publish(ctx, events.QuoteStatusChanged{
		BaseEvent:   events.NewBaseEvent(),
		QuoteID:     quote.ID,
		BusinessID:  businessID,
		QuoteNumber: quote.QuoteNumber,
		OldStatus:   quote.Status,
		NewStatus:   newStatus,
		ActorID:     actorID,
	})

	return s.Get(ctx, businessID, quoteID)
}

// Delete removes a quote in any status.
func (s *Service) Delete(ctx context.Context, businessID, actorID, quoteID uuid.UUID) error {
	quote, err := s.repo.GetWithItems(ctx, businessID, quoteID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, businessID, quoteID); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.QuoteDeleted{
		BaseEvent:   events.NewBaseEvent(),
		QuoteID:     quote.ID,
		BusinessID:  businessID,
		QuoteNumber: quote.QuoteNumber,
		ActorID:     actorID,
	})
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// buildCandidates turns requested lines into priced candidates. existingItems
// is keyed by quote item ID and only consulted for package lines, whose
// stored snapshot wins over submitted price and quantity.
func (s *Service) buildCandidates(ctx context.Context, businessID uuid.UUID, inputs []transport.QuoteItemInput, existingItems map[uuid.UUID]repository.QuoteItem) ([]LineCandidate, error) {
	candidates := make([]LineCandidate, 0, len(inputs))
	for _, input := range inputs {
		if (input.ServiceID == nil) == (input.PackageID == nil) {
			return nil, apperr.Validation("each line must reference exactly one service or package")
		}

		if input.PackageID != nil {
			candidate, err := s.buildPackageCandidate(ctx, businessID, input, existingItems)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, candidate)
			continue
		}

		svc, err := s.catalog.ServiceByID(ctx, businessID, *input.ServiceID)
		if err != nil {
			return nil, err
		}

		unitPrice := svc.UnitPrice
		if input.UnitPrice != nil {
			unitPrice = input.UnitPrice.Decimal()
			if unitPrice.IsNegative() {
				return nil, apperr.Validation("unit price cannot be negative")
			}
		}
		quantity := 1
		if input.Quantity != nil {
			quantity = *input.Quantity
		}
		description := svc.Description
		if input.Description != nil {
			description = sanitize.Text(*input.Description)
		}

		candidates = append(candidates, ServiceLine{
			ServiceID:   svc.ID,
			Name:        svc.Name,
			Description: description,
			UnitPrice:   unitPrice,
			Quantity:    quantity,
		})
	}
	return candidates, nil
}

func (s *Service) buildPackageCandidate(ctx context.Context, businessID uuid.UUID, input transport.QuoteItemInput, existingItems map[uuid.UUID]repository.QuoteItem) (LineCandidate, error) {
	if input.ID != nil {
		if item, ok := existingItems[*input.ID]; ok && item.PackageID != nil && *item.PackageID == *input.PackageID {
			// Keep the stored snapshot; submitted price/quantity changes on
			// package lines are silent no-ops.
			description := ""
			if item.Description != nil {
				description = *item.Description
			}
			return PackageLine{
				PackageID:      *item.PackageID,
				Name:           item.Name,
				Description:    description,
				BasePrice:      item.UnitPrice,
				DiscountAmount: item.PackageDiscount,
			}, nil
		}
	}

	pkg, err := s.catalog.PackageByID(ctx, businessID, *input.PackageID)
	if err != nil {
		return nil, err
	}

	parts := make([]PackagePart, 0, len(pkg.Parts))
	for _, part := range pkg.Parts {
		parts = append(parts, PackagePart{UnitPrice: part.UnitPrice, Quantity: part.Quantity})
	}
	base := PackageBasePrice(parts)

	discount, err := ComputeDiscount(base, pkg.DiscountType, pkg.DiscountValue)
	if err != nil {
		return nil, err
	}

	description := pkg.Description
	if input.Description != nil {
		description = sanitize.Text(*input.Description)
	}

	return PackageLine{
		PackageID:      pkg.ID,
		Name:           pkg.Name,
		Description:    description,
		BasePrice:      base,
		DiscountAmount: discount,
	}, nil
}

func (s *Service) scheduleFollowUp(quote *repository.Quote, sentAt time.Time) {
	if s.scheduler == nil {
		return
	}

	dueAt := sentAt.Add(followUpFallback)
	if quote.ValidUntil != nil {
		dueAt = quote.ValidUntil.Add(-followUpLeadTime)
	}
	if !dueAt.After(time.Now()) {
		return
	}

	if err := s.scheduler.ScheduleQuoteFollowUp(quote.ID, quote.BusinessID, dueAt); err != nil {
		s.log.Warn("failed to schedule quote follow-up", "quoteNumber", quote.QuoteNumber, "error", err)
	}
}

func toRepoItems(lines []CalculatedLine) []repository.QuoteItem {
	items := make([]repository.QuoteItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, repository.QuoteItem{
			Name:            line.Name,
			Description:     nilIfEmpty(line.Description),
			UnitPrice:       line.UnitPrice,
			Quantity:        line.Quantity,
			LineTotal:       line.LineTotal,
			PackageDiscount: line.PackageDiscount,
			ServiceID:       line.ServiceID,
			PackageID:       line.PackageID,
		})
	}
	return items
}

func buildResponse(q *repository.Quote) *transport.QuoteResponse {
	items := make([]transport.QuoteItemResponse, 0, len(q.Items))
	for _, item := range q.Items {
		itemResp := transport.QuoteItemResponse{
			ID:              item.ID,
			Name:            item.Name,
			UnitPrice:       money.FromDecimal(item.UnitPrice),
			Quantity:        item.Quantity,
			LineTotal:       money.FromDecimal(item.LineTotal),
			PackageDiscount: money.FromDecimal(item.PackageDiscount),
			ServiceID:       item.ServiceID,
			PackageID:       item.PackageID,
		}
		if item.Description != nil {
			itemResp.Description = *item.Description
		}
		items = append(items, itemResp)
	}

	resp := &transport.QuoteResponse{
		ID:                    q.ID,
		QuoteNumber:           q.QuoteNumber,
		Status:                q.Status,
		ClientID:              q.ClientID,
		ClientName:            strings.TrimSpace(q.ClientFirstName + " " + q.ClientLastName),
		ClientEmail:           q.ClientEmail,
		Subtotal:              money.FromDecimal(q.Subtotal),
		PackageDiscountsTotal: money.FromDecimal(q.PackageDiscountsTotal),
		DiscountType:          q.DiscountType,
		DiscountValue:         money.FromDecimal(q.DiscountValue),
		DiscountAmount:        money.FromDecimal(q.DiscountAmount),
		Total:                 money.FromDecimal(q.Total),
		ValidUntil:            q.ValidUntil,
		SentAt:                q.SentAt,
		Items:                 items,
		CreatedAt:             q.CreatedAt,
		UpdatedAt:             q.UpdatedAt,
	}
	if q.Notes != nil {
		resp.Notes = *q.Notes
	}
	return resp
}

func discountValueOf(m *money.Money) decimal.Decimal {
	if m == nil {
		return decimal.Zero
	}
	return m.Decimal()
}

func isKnownStatus(status string) bool {
	switch status {
	case repository.StatusDraft, repository.StatusSent, repository.StatusAccepted, repository.StatusRejected:
		return true
	}
	return false
}

func clampPageSize(size int) int {
	if size < 1 {
		return defaultPageSize
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}

func nilIfEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
