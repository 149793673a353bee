package domain

import "errors"

// ErrNotFound is returned by store and service functions when the requested
// record does not exist in any collection.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. end odometer below start odometer, missing field).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrTripLocked is returned when an edit or delete targets a trip dated on
// or before the configured closure date. Closed accounting periods are
// immutable; this is a user-input rejection, not a system fault.
// Handlers should map this to HTTP 409 Conflict.
var ErrTripLocked = errors.New("trip locked by closure date")

// ErrMalformedBundle is returned by the exchange service when an import
// bundle is missing its version or data payload, or carries an unknown
// bundle type. Nothing is mutated when it is returned.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrMalformedBundle = errors.New("malformed bundle")
