// Package store holds the application's entity collections in memory and
// mirrors every change to the kv persistence port, one JSON document per
// collection, the same shape the data model was designed around.
//
// Reads hand out copies. Mutations run a caller-supplied function over a
// copy of the current collection, persist the result, and only then swap
// it in, so a failed write never leaves memory and storage out of sync.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/romanwintercz/kniha-jizd-api/internal/domain"
	"github.com/romanwintercz/kniha-jizd-api/internal/kv"
)

// Store is the single owner of all entity collections for the lifetime of
// the process. The persistence port holds a serialized mirror with no
// independent identity.
type Store struct {
	kv kv.Store

	mu          sync.RWMutex
	trips       []domain.Trip
	vehicles    []domain.Vehicle
	drivers     []domain.Driver
	orders      []domain.Order
	templates   []domain.TripTemplate
	prefs       domain.Preferences
	closureDate string
}

// Open hydrates a Store from the persistence port. A key that has never
// been written falls back to the built-in defaults (seed resources, empty
// trips), matching the first-run behavior of the original application.
func Open(ctx context.Context, store kv.Store) (*Store, error) {
	s := &Store{
		kv:       store,
		vehicles: seedVehicles(),
		drivers:  seedDrivers(),
		orders:   seedOrders(),
	}

	if err := load(ctx, store, kv.KeyTrips, &s.trips); err != nil {
		return nil, err
	}
	if err := load(ctx, store, kv.KeyVehicles, &s.vehicles); err != nil {
		return nil, err
	}
	if err := load(ctx, store, kv.KeyDrivers, &s.drivers); err != nil {
		return nil, err
	}
	if err := load(ctx, store, kv.KeyOrders, &s.orders); err != nil {
		return nil, err
	}
	if err := load(ctx, store, kv.KeyTemplates, &s.templates); err != nil {
		return nil, err
	}
	if err := load(ctx, store, kv.KeyPreferences, &s.prefs); err != nil {
		return nil, err
	}
	if err := load(ctx, store, kv.KeyClosureDate, &s.closureDate); err != nil {
		return nil, err
	}

	return s, nil
}

// load unmarshals the value under key into dst, leaving dst untouched when
// the key has never been written.
func load(ctx context.Context, store kv.Store, key string, dst any) error {
	data, err := store.Get(ctx, key)
	if err != nil {
		if err == kv.ErrNoKey {
			return nil
		}
		return fmt.Errorf("store.Open: load %q: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("store.Open: decode %q: %w", key, err)
	}
	return nil
}

// persist writes v under key. Called with s.mu held.
func (s *Store) persist(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %q: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("store: persist %q: %w", key, err)
	}
	return nil
}

// ---- snapshot reads --------------------------------------------------------

// Trips returns a copy of the trip collection.
func (s *Store) Trips() []domain.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.trips)
}

// Vehicles returns a copy of the vehicle collection.
func (s *Store) Vehicles() []domain.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.vehicles)
}

// Drivers returns a copy of the driver collection.
func (s *Store) Drivers() []domain.Driver {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.drivers)
}

// Orders returns a copy of the order collection.
func (s *Store) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.orders)
}

// Templates returns a copy of the trip-template collection.
func (s *Store) Templates() []domain.TripTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.templates)
}

// Snapshot returns copies of all four exportable collections at once, for
// reports and exports that need a consistent view.
func (s *Store) Snapshot() domain.BundleData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.BundleData{
		Trips:    copySlice(s.trips),
		Vehicles: copySlice(s.vehicles),
		Drivers:  copySlice(s.drivers),
		Orders:   copySlice(s.orders),
	}
}

// Preferences returns the last-selected driver/vehicle/order triple.
func (s *Store) Preferences() domain.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// ClosureDate returns the accounting cutoff as an ISO date string, or ""
// when no closure is configured.
func (s *Store) ClosureDate() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closureDate
}

// ---- mutations -------------------------------------------------------------

// MutateTrips applies fn to a copy of the trip collection, persists the
// result, and swaps it in. If fn or the persistence write fails, memory is
// unchanged.
func (s *Store) MutateTrips(ctx context.Context, fn func([]domain.Trip) ([]domain.Trip, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(copySlice(s.trips))
	if err != nil {
		return err
	}
	if err := s.persist(ctx, kv.KeyTrips, next); err != nil {
		return err
	}
	s.trips = next
	return nil
}

// MutateVehicles applies fn to a copy of the vehicle collection. Same
// failure semantics as MutateTrips.
func (s *Store) MutateVehicles(ctx context.Context, fn func([]domain.Vehicle) ([]domain.Vehicle, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(copySlice(s.vehicles))
	if err != nil {
		return err
	}
	if err := s.persist(ctx, kv.KeyVehicles, next); err != nil {
		return err
	}
	s.vehicles = next
	return nil
}

// MutateDrivers applies fn to a copy of the driver collection.
func (s *Store) MutateDrivers(ctx context.Context, fn func([]domain.Driver) ([]domain.Driver, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(copySlice(s.drivers))
	if err != nil {
		return err
	}
	if err := s.persist(ctx, kv.KeyDrivers, next); err != nil {
		return err
	}
	s.drivers = next
	return nil
}

// MutateOrders applies fn to a copy of the order collection.
func (s *Store) MutateOrders(ctx context.Context, fn func([]domain.Order) ([]domain.Order, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(copySlice(s.orders))
	if err != nil {
		return err
	}
	if err := s.persist(ctx, kv.KeyOrders, next); err != nil {
		return err
	}
	s.orders = next
	return nil
}

// MutateTemplates applies fn to a copy of the template collection.
func (s *Store) MutateTemplates(ctx context.Context, fn func([]domain.TripTemplate) ([]domain.TripTemplate, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(copySlice(s.templates))
	if err != nil {
		return err
	}
	if err := s.persist(ctx, kv.KeyTemplates, next); err != nil {
		return err
	}
	s.templates = next
	return nil
}

// MutateAll applies fn to a copy of all four collections at once, for the
// import strategies that touch everything. The four keys are persisted in
// a fixed order; the persistence port offers no cross-key transaction, so
// a write failure mid-way can leave storage ahead of memory for the keys
// already written. Memory itself is swapped all-or-nothing.
func (s *Store) MutateAll(ctx context.Context, fn func(domain.BundleData) (domain.BundleData, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := domain.BundleData{
		Trips:    copySlice(s.trips),
		Vehicles: copySlice(s.vehicles),
		Drivers:  copySlice(s.drivers),
		Orders:   copySlice(s.orders),
	}
	next, err := fn(cur)
	if err != nil {
		return err
	}

	if err := s.persist(ctx, kv.KeyTrips, next.Trips); err != nil {
		return err
	}
	if err := s.persist(ctx, kv.KeyVehicles, next.Vehicles); err != nil {
		return err
	}
	if err := s.persist(ctx, kv.KeyDrivers, next.Drivers); err != nil {
		return err
	}
	if err := s.persist(ctx, kv.KeyOrders, next.Orders); err != nil {
		return err
	}

	s.trips = next.Trips
	s.vehicles = next.Vehicles
	s.drivers = next.Drivers
	s.orders = next.Orders
	return nil
}

// SetPreferences persists and applies the last-selected triple.
func (s *Store) SetPreferences(ctx context.Context, p domain.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(ctx, kv.KeyPreferences, p); err != nil {
		return err
	}
	s.prefs = p
	return nil
}

// SetClosureDate persists and applies the accounting cutoff. Pass "" to
// remove the closure.
func (s *Store) SetClosureDate(ctx context.Context, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(ctx, kv.KeyClosureDate, date); err != nil {
		return err
	}
	s.closureDate = date
	return nil
}

func copySlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
