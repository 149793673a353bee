// Package domain contains the core data types for the Kniha Jízd API.
// This package has zero external dependencies and is imported by every other
// internal package (kv, store, service, handler).
package domain

// TripType classifies a trip for reporting and tax purposes.
type TripType string

const (
	// TripBusiness is a trip driven on company business ("Služební").
	TripBusiness TripType = "business"
	// TripPrivate is a personal trip ("Soukromá").
	TripPrivate TripType = "private"
)

// Valid reports whether t is one of the two known trip types.
func (t TripType) Valid() bool {
	return t == TripBusiness || t == TripPrivate
}

// Label returns the Czech display label used in reports and CSV exports.
func (t TripType) Label() string {
	if t == TripPrivate {
		return "Soukromá"
	}
	return "Služební"
}

// Trip is a single recorded vehicle movement. DistanceKm is always derived
// as EndOdometer - StartOdometer; services never accept it from the caller.
//
// OrderID, VehicleID, and DriverID are soft references: a trip may point at
// an archived or missing record, in which case views render an "unknown"
// placeholder but aggregation still counts the kilometres.
type Trip struct {
	ID            string   `json:"id"`
	Date          string   `json:"date"` // ISO "2006-01-02"
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	DistanceKm    int      `json:"distanceKm"`
	StartOdometer int      `json:"startOdometer"`
	EndOdometer   int      `json:"endOdometer"`
	FuelLiters    *float64 `json:"fuelLiters,omitempty"`
	FuelPrice     *float64 `json:"fuelPrice,omitempty"`
	OrderID       string   `json:"orderId"`
	Type          TripType `json:"type"`
	VehicleID     string   `json:"vehicleId"`
	DriverID      string   `json:"driverId"`
}

// FueledLiters returns the fuel volume recorded on the trip, or 0 when no
// refuelling was logged.
func (t Trip) FueledLiters() float64 {
	if t.FuelLiters == nil {
		return 0
	}
	return *t.FuelLiters
}

// TripTemplate is a partial trip used to prefill the creation form for
// recurring routes. VehicleID and DriverID are optional so a template can
// be shared across vehicles.
type TripTemplate struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	OrderID     string   `json:"orderId"`
	Type        TripType `json:"type"`
	VehicleID   string   `json:"vehicleId,omitempty"`
	DriverID    string   `json:"driverId,omitempty"`
}
