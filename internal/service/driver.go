package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/romanwintercz/kniha-jizd-api/internal/domain"
	"github.com/romanwintercz/kniha-jizd-api/internal/store"
)

// DriverService implements the driver lifecycle. Initials are derived from
// the name on create and on every rename, never accepted from the caller.
type DriverService struct {
	store *store.Store
}

// NewDriverService constructs a DriverService backed by the provided store.
func NewDriverService(s *store.Store) *DriverService {
	return &DriverService{store: s}
}

// List returns all drivers, active and archived.
func (s *DriverService) List(ctx context.Context) ([]domain.Driver, error) {
	return s.store.Drivers(), nil
}

// Create validates and persists a new active driver.
func (s *DriverService) Create(ctx context.Context, name string) (domain.Driver, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Driver{}, fmt.Errorf("service.DriverService.Create: %w: name is required", domain.ErrValidation)
	}

	d := domain.Driver{
		ID:       uuid.NewString(),
		Name:     name,
		Initials: domain.DriverInitials(name),
		IsActive: true,
	}
	err := s.store.MutateDrivers(ctx, func(drivers []domain.Driver) ([]domain.Driver, error) {
		return append(drivers, d), nil
	})
	if err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.Create: %w", err)
	}
	return d, nil
}

// Rename changes a driver's name and recomputes the initials.
func (s *DriverService) Rename(ctx context.Context, id, name string) (domain.Driver, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Driver{}, fmt.Errorf("service.DriverService.Rename: %w: name is required", domain.ErrValidation)
	}

	var out domain.Driver
	err := s.store.MutateDrivers(ctx, func(drivers []domain.Driver) ([]domain.Driver, error) {
		for i, d := range drivers {
			if d.ID != id {
				continue
			}
			d.Name = name
			d.Initials = domain.DriverInitials(name)
			drivers[i] = d
			out = d
			return drivers, nil
		}
		return nil, domain.ErrNotFound
	})
	if err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.Rename: %w", err)
	}
	return out, nil
}

// ToggleArchive flips the driver's active flag and returns the new state.
func (s *DriverService) ToggleArchive(ctx context.Context, id string) (domain.Driver, error) {
	var out domain.Driver
	err := s.store.MutateDrivers(ctx, func(drivers []domain.Driver) ([]domain.Driver, error) {
		for i, d := range drivers {
			if d.ID != id {
				continue
			}
			d.IsActive = !d.IsActive
			drivers[i] = d
			out = d
			return drivers, nil
		}
		return nil, domain.ErrNotFound
	})
	if err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.ToggleArchive: %w", err)
	}
	return out, nil
}
