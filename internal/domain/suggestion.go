package domain

// TripSuggestion is the best-effort structure returned by the AI text
// parser. Every field is optional and untrusted: the consumer must treat
// each one as a suggestion, resolve the *Name fields against the active
// collections, and leave the form untouched where nothing was extracted.
type TripSuggestion struct {
	Origin      *string  `json:"origin,omitempty"`
	Destination *string  `json:"destination,omitempty"`
	DistanceKm  *int     `json:"distanceKm,omitempty"`
	EndOdometer *int     `json:"endOdometer,omitempty"`
	FuelLiters  *float64 `json:"fuelLiters,omitempty"`
	FuelPrice   *float64 `json:"fuelPrice,omitempty"`
	OrderName   *string  `json:"orderName,omitempty"`
	Date        *string  `json:"date,omitempty"`
	VehicleName *string  `json:"vehicleName,omitempty"`
	DriverName  *string  `json:"driverName,omitempty"`
}

// ReceiptSuggestion is the structure extracted from a photographed fuel
// receipt. Same trust rules as TripSuggestion.
type ReceiptSuggestion struct {
	Date       *string  `json:"date,omitempty"`
	FuelLiters *float64 `json:"fuelLiters,omitempty"`
	FuelPrice  *float64 `json:"fuelPrice,omitempty"`
}

// ResolvedTripSuggestion is a TripSuggestion whose name fields have been
// matched against the current active collections. A nil ID means the name
// either was not suggested or did not match anything; the form value is
// then left as the user had it.
type ResolvedTripSuggestion struct {
	TripSuggestion
	VehicleID *string `json:"vehicleId,omitempty"`
	DriverID  *string `json:"driverId,omitempty"`
	OrderID   *string `json:"orderId,omitempty"`
	// StartOdometer is the continuity seed for the matched (or current)
	// vehicle, so the client can derive EndOdometer from DistanceKm.
	StartOdometer *int `json:"startOdometer,omitempty"`
}
