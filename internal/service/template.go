package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/romanwintercz/kniha-jizd-api/internal/domain"
	"github.com/romanwintercz/kniha-jizd-api/internal/store"
)

// TemplateInput carries the fields of a trip template. VehicleID and
// DriverID are optional so a template can prefill any vehicle.
type TemplateInput struct {
	Name        string
	Origin      string
	Destination string
	OrderID     string
	Type        domain.TripType
	VehicleID   string
	DriverID    string
}

// TemplateService implements the trip-template lifecycle. Templates have
// no archival, only create and delete.
type TemplateService struct {
	store *store.Store
}

// NewTemplateService constructs a TemplateService backed by the provided
// store.
func NewTemplateService(s *store.Store) *TemplateService {
	return &TemplateService{store: s}
}

// List returns all templates.
func (s *TemplateService) List(ctx context.Context) ([]domain.TripTemplate, error) {
	return s.store.Templates(), nil
}

// Create validates and persists a new template.
func (s *TemplateService) Create(ctx context.Context, in TemplateInput) (domain.TripTemplate, error) {
	if strings.TrimSpace(in.Name) == "" {
		return domain.TripTemplate{}, fmt.Errorf("service.TemplateService.Create: %w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Origin) == "" || strings.TrimSpace(in.Destination) == "" {
		return domain.TripTemplate{}, fmt.Errorf("service.TemplateService.Create: %w: origin and destination are required", domain.ErrValidation)
	}
	if !in.Type.Valid() {
		return domain.TripTemplate{}, fmt.Errorf("service.TemplateService.Create: %w: type must be business or private", domain.ErrValidation)
	}

	tpl := domain.TripTemplate{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Origin:      strings.TrimSpace(in.Origin),
		Destination: strings.TrimSpace(in.Destination),
		OrderID:     in.OrderID,
		Type:        in.Type,
		VehicleID:   in.VehicleID,
		DriverID:    in.DriverID,
	}
	err := s.store.MutateTemplates(ctx, func(templates []domain.TripTemplate) ([]domain.TripTemplate, error) {
		return append(templates, tpl), nil
	})
	if err != nil {
		return domain.TripTemplate{}, fmt.Errorf("service.TemplateService.Create: %w", err)
	}
	return tpl, nil
}

// Delete removes a template by ID.
func (s *TemplateService) Delete(ctx context.Context, id string) error {
	err := s.store.MutateTemplates(ctx, func(templates []domain.TripTemplate) ([]domain.TripTemplate, error) {
		for i, t := range templates {
			if t.ID == id {
				return append(templates[:i], templates[i+1:]...), nil
			}
		}
		return nil, domain.ErrNotFound
	})
	if err != nil {
		return fmt.Errorf("service.TemplateService.Delete: %w", err)
	}
	return nil
}
