package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/romanwintercz/kniha-jizd-api/internal/domain"
	"github.com/romanwintercz/kniha-jizd-api/internal/store"
)

// VehicleUpdate carries a partial vehicle update; nil fields are left as
// they are. Archival goes through ToggleArchive, not here.
type VehicleUpdate struct {
	Name         *string
	LicensePlate *string
}

// VehicleService implements the vehicle lifecycle: add, update, archive
// toggle. Vehicles are never hard-deleted so historical trips keep
// resolving.
type VehicleService struct {
	store *store.Store
}

// NewVehicleService constructs a VehicleService backed by the provided store.
func NewVehicleService(s *store.Store) *VehicleService {
	return &VehicleService{store: s}
}

// List returns all vehicles, active and archived.
func (s *VehicleService) List(ctx context.Context) ([]domain.Vehicle, error) {
	return s.store.Vehicles(), nil
}

// Create validates and persists a new active vehicle.
func (s *VehicleService) Create(ctx context.Context, name, licensePlate string) (domain.Vehicle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Create: %w: name is required", domain.ErrValidation)
	}

	v := domain.Vehicle{
		ID:           uuid.NewString(),
		Name:         name,
		LicensePlate: strings.TrimSpace(licensePlate),
		IsActive:     true,
	}
	err := s.store.MutateVehicles(ctx, func(vehicles []domain.Vehicle) ([]domain.Vehicle, error) {
		return append(vehicles, v), nil
	})
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Create: %w", err)
	}
	return v, nil
}

// Update applies a partial update to the vehicle with the given ID.
func (s *VehicleService) Update(ctx context.Context, id string, upd VehicleUpdate) (domain.Vehicle, error) {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Update: %w: name is required", domain.ErrValidation)
	}

	var out domain.Vehicle
	err := s.store.MutateVehicles(ctx, func(vehicles []domain.Vehicle) ([]domain.Vehicle, error) {
		for i, v := range vehicles {
			if v.ID != id {
				continue
			}
			if upd.Name != nil {
				v.Name = strings.TrimSpace(*upd.Name)
			}
			if upd.LicensePlate != nil {
				v.LicensePlate = strings.TrimSpace(*upd.LicensePlate)
			}
			vehicles[i] = v
			out = v
			return vehicles, nil
		}
		return nil, domain.ErrNotFound
	})
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Update: %w", err)
	}
	return out, nil
}

// ToggleArchive flips the vehicle's active flag and returns the new state.
func (s *VehicleService) ToggleArchive(ctx context.Context, id string) (domain.Vehicle, error) {
	var out domain.Vehicle
	err := s.store.MutateVehicles(ctx, func(vehicles []domain.Vehicle) ([]domain.Vehicle, error) {
		for i, v := range vehicles {
			if v.ID != id {
				continue
			}
			v.IsActive = !v.IsActive
			vehicles[i] = v
			out = v
			return vehicles, nil
		}
		return nil, domain.ErrNotFound
	})
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.ToggleArchive: %w", err)
	}
	return out, nil
}
