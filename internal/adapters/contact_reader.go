package adapters

import (
	"context"
	"strings"

	businessrepo "devis_backend/internal/business/repository"
	clientsrepo "devis_backend/internal/clients/repository"
	quotesvc "devis_backend/internal/quotes/service"

	"github.com/google/uuid"
)

// ContactReaderAdapter resolves clients and the business profile for the
// quotes module through its ContactReader port.
type ContactReaderAdapter struct {
	clients  *clientsrepo.Repository
	business *businessrepo.Repository
}

// NewContactReaderAdapter creates the contact port adapter.
func NewContactReaderAdapter(clients *clientsrepo.Repository, business *businessrepo.Repository) *ContactReaderAdapter {
	return &ContactReaderAdapter{clients: clients, business: business}
}

// ClientByID resolves a client within the business.
func (a *ContactReaderAdapter) ClientByID(ctx context.Context, businessID, clientID uuid.UUID) (*quotesvc.ClientContact, error) {
	client, err := a.clients.Get(ctx, businessID, clientID)
	if err != nil {
		return nil, err
	}
	return &quotesvc.ClientContact{
		ID:    client.ID,
		Name:  strings.TrimSpace(client.FirstName + " " + client.LastName),
		Email: client.Email,
	}, nil
}

// BusinessByID resolves the tenant profile.
func (a *ContactReaderAdapter) BusinessByID(ctx context.Context, businessID uuid.UUID) (*quotesvc.BusinessProfile, error) {
	b, err := a.business.Get(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return &quotesvc.BusinessProfile{
		ID:          b.ID,
		Name:        b.Name,
		Email:       b.Email,
		QuotePrefix: b.QuotePrefix,
	}, nil
}

// Compile-time check
var _ quotesvc.ContactReader = (*ContactReaderAdapter)(nil)
