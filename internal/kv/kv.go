// Package kv defines the key-value persistence port the entity store is
// built on, mirroring the browser localStorage the data model was designed
// around: one JSON document per collection key, no ordering or transactional
// guarantees. Each backend lives in its own file with the same contract.
package kv

import (
	"context"
	"errors"
)

// ErrNoKey is returned by Get when the key has never been written.
// Callers treat it as "use built-in defaults", not as a failure.
var ErrNoKey = errors.New("key not set")

// Store is the persistence port. Implementations must make Set durable
// before returning; Get returns the exact bytes of the last Set.
type Store interface {
	// Get returns the value stored under key, or ErrNoKey.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set durably stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}

// Collection keys. One key per collection, as the original layout had one
// localStorage entry per collection.
const (
	KeyTrips       = "trips"
	KeyVehicles    = "vehicles"
	KeyDrivers     = "drivers"
	KeyOrders      = "orders"
	KeyTemplates   = "templates"
	KeyPreferences = "preferences"
	KeyClosureDate = "closure_date"
)
