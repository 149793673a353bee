package service

import (
	"context"
	"fmt"
	"time"

	"github.com/romanwintercz/kniha-jizd-api/internal/domain"
	"github.com/romanwintercz/kniha-jizd-api/internal/store"
)

// ExchangeService implements export and import of AppDataExport bundles:
// full backups (destructive restore) and driver exports (additive merge).
// The two import strategies are separate functions dispatched on the
// bundle type; unknown types are rejected before anything is touched.
type ExchangeService struct {
	store *store.Store
	now   func() time.Time
}

// NewExchangeService constructs an ExchangeService backed by the provided
// store.
func NewExchangeService(s *store.Store) *ExchangeService {
	return &ExchangeService{store: s, now: time.Now}
}

// ExportBackup returns a full_backup bundle with all four collections
// verbatim.
func (s *ExchangeService) ExportBackup(ctx context.Context) (domain.Bundle, error) {
	return domain.Bundle{
		Version:    domain.BundleVersion,
		Type:       domain.BundleFullBackup,
		ExportDate: s.now().UTC(),
		Data:       s.store.Snapshot(),
	}, nil
}

// ExportDriver returns a driver_export bundle: the driver's trips
// (narrowed to one calendar month when month is non-empty) plus only the
// vehicles, orders, and the driver record those trips reference, so the
// bundle is self-contained without dragging unrelated data along.
func (s *ExchangeService) ExportDriver(ctx context.Context, driverID, month string) (domain.Bundle, error) {
	if driverID == "" {
		return domain.Bundle{}, fmt.Errorf("service.ExchangeService.ExportDriver: %w: driver is required", domain.ErrValidation)
	}
	if month != "" {
		if _, err := domain.ParseMonth(month); err != nil {
			return domain.Bundle{}, fmt.Errorf("service.ExchangeService.ExportDriver: %w: month must be YYYY-MM", domain.ErrValidation)
		}
	}

	snap := s.store.Snapshot()

	var trips []domain.Trip
	usedVehicles := map[string]bool{}
	usedOrders := map[string]bool{}
	for _, t := range snap.Trips {
		if t.DriverID != driverID {
			continue
		}
		if month != "" && !domain.InMonth(t.Date, month) {
			continue
		}
		trips = append(trips, t)
		usedVehicles[t.VehicleID] = true
		usedOrders[t.OrderID] = true
	}

	bundle := domain.Bundle{
		Version:    domain.BundleVersion,
		Type:       domain.BundleDriverExport,
		ExportDate: s.now().UTC(),
		Data:       domain.BundleData{Trips: trips},
	}
	for _, v := range snap.Vehicles {
		if usedVehicles[v.ID] {
			bundle.Data.Vehicles = append(bundle.Data.Vehicles, v)
		}
	}
	for _, o := range snap.Orders {
		if usedOrders[o.ID] {
			bundle.Data.Orders = append(bundle.Data.Orders, o)
		}
	}
	for _, d := range snap.Drivers {
		if d.ID == driverID {
			bundle.Source = d.Name
			bundle.Data.Drivers = append(bundle.Data.Drivers, d)
			break
		}
	}

	return bundle, nil
}

// Import applies a bundle to the current state. The bundle structure is
// validated before any mutation; a malformed bundle changes nothing.
// full_backup replaces everything and returns a nil report; driver_export
// merges and reports how many trips were added vs. updated.
func (s *ExchangeService) Import(ctx context.Context, b domain.Bundle) (*domain.MergeReport, error) {
	if err := validateBundle(b); err != nil {
		return nil, fmt.Errorf("service.ExchangeService.Import: %w", err)
	}

	switch b.Type {
	case domain.BundleFullBackup:
		if err := s.importFullBackup(ctx, b); err != nil {
			return nil, fmt.Errorf("service.ExchangeService.Import: %w", err)
		}
		return nil, nil
	case domain.BundleDriverExport:
		report, err := s.importDriverExport(ctx, b)
		if err != nil {
			return nil, fmt.Errorf("service.ExchangeService.Import: %w", err)
		}
		return report, nil
	}
	// Unreachable: validateBundle rejects unknown types.
	return nil, fmt.Errorf("service.ExchangeService.Import: %w", domain.ErrMalformedBundle)
}

// importFullBackup unconditionally replaces all four collections with the
// bundle's contents. The caller is expected to have confirmed the
// destructive restore with the user.
func (s *ExchangeService) importFullBackup(ctx context.Context, b domain.Bundle) error {
	return s.store.MutateAll(ctx, func(domain.BundleData) (domain.BundleData, error) {
		return domain.BundleData{
			Trips:    emptyNotNil(b.Data.Trips),
			Vehicles: emptyNotNil(b.Data.Vehicles),
			Drivers:  emptyNotNil(b.Data.Drivers),
			Orders:   emptyNotNil(b.Data.Orders),
		}, nil
	})
}

// importDriverExport merges the bundle into the current state.
// Resources are first-writer-wins: an incoming vehicle/driver/order is
// appended only when its ID is new; existing records are left untouched.
// Trips are last-writer-wins: the exporting device is the authority on its
// own trips, so an ID collision overwrites the local copy in place.
func (s *ExchangeService) importDriverExport(ctx context.Context, b domain.Bundle) (*domain.MergeReport, error) {
	var report domain.MergeReport
	err := s.store.MutateAll(ctx, func(cur domain.BundleData) (domain.BundleData, error) {
		cur.Vehicles = mergeVehicles(cur.Vehicles, b.Data.Vehicles)
		cur.Drivers = mergeDrivers(cur.Drivers, b.Data.Drivers)
		cur.Orders = mergeOrders(cur.Orders, b.Data.Orders)

		pos := make(map[string]int, len(cur.Trips))
		for i, t := range cur.Trips {
			pos[t.ID] = i
		}
		for _, t := range b.Data.Trips {
			if i, ok := pos[t.ID]; ok {
				cur.Trips[i] = t
				report.TripsUpdated++
			} else {
				pos[t.ID] = len(cur.Trips)
				cur.Trips = append(cur.Trips, t)
				report.TripsAdded++
			}
		}
		return cur, nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// validateBundle rejects structurally malformed envelopes: missing
// version, unknown type, or a payload with no collections at all.
func validateBundle(b domain.Bundle) error {
	if b.Version < 1 {
		return fmt.Errorf("%w: missing version", domain.ErrMalformedBundle)
	}
	if b.Type != domain.BundleFullBackup && b.Type != domain.BundleDriverExport {
		return fmt.Errorf("%w: unknown type %q", domain.ErrMalformedBundle, b.Type)
	}
	if b.Data.Trips == nil && b.Data.Vehicles == nil && b.Data.Drivers == nil && b.Data.Orders == nil {
		return fmt.Errorf("%w: missing data payload", domain.ErrMalformedBundle)
	}
	return nil
}

func mergeVehicles(cur, incoming []domain.Vehicle) []domain.Vehicle {
	seen := make(map[string]bool, len(cur))
	for _, v := range cur {
		seen[v.ID] = true
	}
	for _, v := range incoming {
		if !seen[v.ID] {
			seen[v.ID] = true
			cur = append(cur, v)
		}
	}
	return cur
}

func mergeDrivers(cur, incoming []domain.Driver) []domain.Driver {
	seen := make(map[string]bool, len(cur))
	for _, d := range cur {
		seen[d.ID] = true
	}
	for _, d := range incoming {
		if !seen[d.ID] {
			seen[d.ID] = true
			cur = append(cur, d)
		}
	}
	return cur
}

func mergeOrders(cur, incoming []domain.Order) []domain.Order {
	seen := make(map[string]bool, len(cur))
	for _, o := range cur {
		seen[o.ID] = true
	}
	for _, o := range incoming {
		if !seen[o.ID] {
			seen[o.ID] = true
			cur = append(cur, o)
		}
	}
	return cur
}

func emptyNotNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
