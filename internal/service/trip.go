// Package service contains the business logic for the Kniha Jízd API.
// Services validate inputs, enforce business rules (odometer continuity,
// closure-date locking, merge strategies), and orchestrate store access.
// No persistence details live here; services talk to the entity store,
// which mirrors itself to the kv port.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/romanwintercz/kniha-jizd-api/internal/domain"
	"github.com/romanwintercz/kniha-jizd-api/internal/store"
)

// TripInput carries the user-editable fields of a trip. DistanceKm is
// absent on purpose: it is always derived from the odometer pair.
type TripInput struct {
	Date          string
	Origin        string
	Destination   string
	StartOdometer int
	EndOdometer   int
	FuelLiters    *float64
	FuelPrice     *float64
	OrderID       string
	Type          domain.TripType
	VehicleID     string
	DriverID      string
}

// TripService implements business logic for Trip operations.
type TripService struct {
	store *store.Store
}

// NewTripService constructs a TripService backed by the provided store.
func NewTripService(s *store.Store) *TripService {
	return &TripService{store: s}
}

// List returns all trips, newest date first. Ties keep insertion order so
// the most recently added trip of a day stays on top.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips := s.store.Trips()
	sort.SliceStable(trips, func(i, j int) bool {
		return trips[i].Date > trips[j].Date
	})
	return trips, nil
}

// Create validates and persists a new trip, derives its distance from the
// odometer pair, and remembers the selected driver/vehicle/order as the
// prefill preference for next time.
func (s *TripService) Create(ctx context.Context, in TripInput) (domain.Trip, error) {
	if err := validateTripInput(in); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	trip := tripFromInput(in)
	trip.ID = uuid.NewString()

	err := s.store.MutateTrips(ctx, func(trips []domain.Trip) ([]domain.Trip, error) {
		return append(trips, trip), nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	s.rememberSelection(ctx, in)
	return trip, nil
}

// Update replaces an existing trip's fields, keyed by ID. Both the trip's
// stored date and the incoming date must fall after the closure date: a
// locked trip cannot be edited, and an open trip cannot be moved into a
// closed period.
func (s *TripService) Update(ctx context.Context, id string, in TripInput) (domain.Trip, error) {
	if err := validateTripInput(in); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	closure := s.store.ClosureDate()
	if domain.OnOrBefore(in.Date, closure) {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", domain.ErrTripLocked)
	}

	updated := tripFromInput(in)
	updated.ID = id

	err := s.store.MutateTrips(ctx, func(trips []domain.Trip) ([]domain.Trip, error) {
		for i, t := range trips {
			if t.ID != id {
				continue
			}
			if domain.OnOrBefore(t.Date, closure) {
				return nil, domain.ErrTripLocked
			}
			trips[i] = updated
			return trips, nil
		}
		return nil, domain.ErrNotFound
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a trip by ID, the only hard delete in the model. Trips
// dated on or before the closure date are refused.
func (s *TripService) Delete(ctx context.Context, id string) error {
	closure := s.store.ClosureDate()

	err := s.store.MutateTrips(ctx, func(trips []domain.Trip) ([]domain.Trip, error) {
		for i, t := range trips {
			if t.ID != id {
				continue
			}
			if domain.OnOrBefore(t.Date, closure) {
				return nil, domain.ErrTripLocked
			}
			return append(trips[:i], trips[i+1:]...), nil
		}
		return nil, domain.ErrNotFound
	})
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// DefaultsQuery narrows the Defaults computation. VehicleID overrides the
// remembered vehicle, e.g. after the user switches the vehicle dropdown.
// ExcludeTripID leaves out the trip currently being edited so it does not
// anchor its own continuity value. StartOdometer, when set, is the value
// the user has entered so far; Defaults compares it against the
// continuity value and raises the gap warning on a mismatch.
type DefaultsQuery struct {
	VehicleID     string
	ExcludeTripID string
	StartOdometer *int
}

// Defaults seeds a new-trip form: today's date, the remembered (or first
// active) driver/vehicle/order, and the continuity odometer value for the
// chosen vehicle.
func (s *TripService) Defaults(ctx context.Context, q DefaultsQuery) (domain.TripDefaults, error) {
	prefs := s.store.Preferences()

	d := domain.TripDefaults{
		Date:      time.Now().Format(domain.DateLayout),
		VehicleID: q.VehicleID,
	}
	if d.VehicleID == "" {
		d.VehicleID = pickActiveVehicle(s.store.Vehicles(), prefs.LastVehicleID)
	}
	d.DriverID = pickActiveDriver(s.store.Drivers(), prefs.LastDriverID)
	d.OrderID = pickActiveOrder(s.store.Orders(), prefs.LastOrderID)

	if d.VehicleID != "" {
		d.StartOdometer = LastKnownOdometer(s.store.Trips(), d.VehicleID, q.ExcludeTripID)
	}
	if q.StartOdometer != nil && d.StartOdometer > 0 {
		d.GapWarning = *q.StartOdometer != d.StartOdometer
	}
	return d, nil
}

// rememberSelection stores the last used driver/vehicle/order as the new
// prefill preference. A persistence failure here is deliberately dropped:
// the trip is already saved and preferences are a convenience.
func (s *TripService) rememberSelection(ctx context.Context, in TripInput) {
	_ = s.store.SetPreferences(ctx, domain.Preferences{
		LastDriverID:  in.DriverID,
		LastVehicleID: in.VehicleID,
		LastOrderID:   in.OrderID,
	})
}

// tripFromInput builds a Trip with the derived distance; the ID is left
// for the caller.
func tripFromInput(in TripInput) domain.Trip {
	return domain.Trip{
		Date:          in.Date,
		Origin:        strings.TrimSpace(in.Origin),
		Destination:   strings.TrimSpace(in.Destination),
		DistanceKm:    in.EndOdometer - in.StartOdometer,
		StartOdometer: in.StartOdometer,
		EndOdometer:   in.EndOdometer,
		FuelLiters:    in.FuelLiters,
		FuelPrice:     in.FuelPrice,
		OrderID:       in.OrderID,
		Type:          in.Type,
		VehicleID:     in.VehicleID,
		DriverID:      in.DriverID,
	}
}

func validateTripInput(in TripInput) error {
	if _, err := domain.ParseDate(in.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Origin) == "" {
		return fmt.Errorf("%w: origin is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if !in.Type.Valid() {
		return fmt.Errorf("%w: type must be business or private", domain.ErrValidation)
	}
	if in.StartOdometer < 0 || in.EndOdometer < 0 {
		return fmt.Errorf("%w: odometer values must not be negative", domain.ErrValidation)
	}
	if in.EndOdometer < in.StartOdometer {
		return fmt.Errorf("%w: end odometer must not be below start odometer", domain.ErrValidation)
	}
	if in.FuelLiters != nil && *in.FuelLiters <= 0 {
		return fmt.Errorf("%w: fuel liters must be positive when given", domain.ErrValidation)
	}
	if in.FuelPrice != nil && *in.FuelPrice < 0 {
		return fmt.Errorf("%w: fuel price must not be negative", domain.ErrValidation)
	}
	return nil
}

// pickActiveVehicle returns preferred when it is still an active vehicle,
// otherwise the first active vehicle, otherwise "".
func pickActiveVehicle(vehicles []domain.Vehicle, preferred string) string {
	first := ""
	for _, v := range vehicles {
		if !v.IsActive {
			continue
		}
		if v.ID == preferred {
			return preferred
		}
		if first == "" {
			first = v.ID
		}
	}
	return first
}

func pickActiveDriver(drivers []domain.Driver, preferred string) string {
	first := ""
	for _, d := range drivers {
		if !d.IsActive {
			continue
		}
		if d.ID == preferred {
			return preferred
		}
		if first == "" {
			first = d.ID
		}
	}
	return first
}

func pickActiveOrder(orders []domain.Order, preferred string) string {
	first := ""
	for _, o := range orders {
		if !o.IsActive {
			continue
		}
		if o.ID == preferred {
			return preferred
		}
		if first == "" {
			first = o.ID
		}
	}
	return first
}
