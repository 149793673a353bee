package domain

// Preferences remembers the user's last selections so a new trip form can
// be prefilled. Empty values mean "no preference yet"; the store then
// falls back to the first active record of each collection.
type Preferences struct {
	LastDriverID  string `json:"lastDriverId"`
	LastVehicleID string `json:"lastVehicleId"`
	LastOrderID   string `json:"lastOrderId"`
}

// TripDefaults seeds the new-trip form: the preferred (or first active)
// driver, vehicle, and order, plus the continuity odometer value for the
// chosen vehicle. GapWarning is set when a user-entered start odometer
// was supplied and does not line up with the continuity value; the gap
// is advisory, never a hard error.
type TripDefaults struct {
	Date          string `json:"date"`
	DriverID      string `json:"driverId"`
	VehicleID     string `json:"vehicleId"`
	OrderID       string `json:"orderId"`
	StartOdometer int    `json:"startOdometer"`
	GapWarning    bool   `json:"gapWarning"`
}
