// Package service implements business profile management.
package service

import (
	"context"

	"devis_backend/internal/business/repository"
	"devis_backend/internal/business/transport"
	"devis_backend/platform/phone"
	"devis_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Service implements business profile operations.
type Service struct {
	repo *repository.Repository
}

// New creates a new business service.
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the tenant profile.
func (s *Service) Get(ctx context.Context, businessID uuid.UUID) (*transport.BusinessResponse, error) {
	b, err := s.repo.Get(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return buildResponse(b), nil
}

// Update applies partial changes to the tenant profile.
func (s *Service) Update(ctx context.Context, businessID uuid.UUID, req transport.UpdateBusinessRequest) (*transport.BusinessResponse, error) {
	if req.Phone != nil {
		normalized := phone.NormalizeE164(*req.Phone)
		req.Phone = &normalized
	}
	req.Name = sanitize.TextPtr(req.Name)
	req.Address = sanitize.TextPtr(req.Address)

	b, err := s.repo.Update(ctx, businessID, req.Name, req.Email, req.Phone, req.Address, req.DisplayLocale, req.QuotePrefix)
	if err != nil {
		return nil, err
	}
	return buildResponse(b), nil
}

func buildResponse(b *repository.Business) *transport.BusinessResponse {
	resp := &transport.BusinessResponse{
		ID:            b.ID,
		Name:          b.Name,
		Email:         b.Email,
		DisplayLocale: b.DisplayLocale,
		QuotePrefix:   b.QuotePrefix,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
	if b.Phone != nil {
		resp.Phone = *b.Phone
	}
	if b.Address != nil {
		resp.Address = *b.Address
	}
	return resp
}
