// Package service implements client management.
package service

import (
	"context"
	"strings"

	"devis_backend/internal/clients/repository"
	"devis_backend/internal/clients/transport"
	"devis_backend/platform/phone"
	"devis_backend/platform/sanitize"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 25
	maxPageSize     = 100
)

// Service implements client operations.
type Service struct {
	repo *repository.Repository
}

// New creates a new clients service.
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a new client to the business.
func (s *Service) Create(ctx context.Context, businessID uuid.UUID, req transport.CreateClientRequest) (*transport.ClientResponse, error) {
	client := &repository.Client{
		FirstName: sanitize.Text(req.FirstName),
		LastName:  sanitize.Text(req.LastName),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     normalizePhonePtr(req.Phone),
		Notes:     sanitize.TextPtr(req.Notes),
	}

	created, err := s.repo.Create(ctx, businessID, client)
	if err != nil {
		return nil, err
	}
	return buildResponse(created), nil
}

// Get returns a single client.
func (s *Service) Get(ctx context.Context, businessID, clientID uuid.UUID) (*transport.ClientResponse, error) {
	client, err := s.repo.Get(ctx, businessID, clientID)
	if err != nil {
		return nil, err
	}
	return buildResponse(client), nil
}

// List returns a page of clients.
func (s *Service) List(ctx context.Context, businessID uuid.UUID, search string, page, pageSize int) (*transport.ListClientsResponse, error) {
	if page < 1 {
		page = 1
	}
	pageSize = clampPageSize(pageSize)

	result, err := s.repo.List(ctx, businessID, repository.ListParams{
		Search:   strings.TrimSpace(search),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]transport.ClientResponse, 0, len(result.Clients))
	for i := range result.Clients {
		responses = append(responses, *buildResponse(&result.Clients[i]))
	}

	return &transport.ListClientsResponse{
		Clients:  responses,
		Total:    result.Total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update applies partial changes to a client.
func (s *Service) Update(ctx context.Context, businessID, clientID uuid.UUID, req transport.UpdateClientRequest) (*transport.ClientResponse, error) {
	if req.Email != nil {
		lowered := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &lowered
	}

	client, err := s.repo.Update(ctx, businessID, clientID,
		sanitize.TextPtr(req.FirstName), sanitize.TextPtr(req.LastName),
		req.Email, normalizePhonePtr(req.Phone), sanitize.TextPtr(req.Notes))
	if err != nil {
		return nil, err
	}
	return buildResponse(client), nil
}

// Delete removes a client that no quote references.
func (s *Service) Delete(ctx context.Context, businessID, clientID uuid.UUID) error {
	return s.repo.Delete(ctx, businessID, clientID)
}

func normalizePhonePtr(value *string) *string {
	if value == nil {
		return nil
	}
	normalized := phone.NormalizeE164(*value)
	return &normalized
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

func buildResponse(c *repository.Client) *transport.ClientResponse {
	resp := &transport.ClientResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Phone != nil {
		resp.Phone = *c.Phone
	}
	if c.Notes != nil {
		resp.Notes = *c.Notes
	}
	return resp
}
