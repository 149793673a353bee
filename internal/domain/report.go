package domain

// ReportFilter narrows a trip set for aggregation. Month is "2006-01"
// and is required for monthly reports; DriverID and VehicleID are
// optional ("" matches all).
type ReportFilter struct {
	Month     string
	DriverID  string
	VehicleID string
}

// OrderShare is one row of the cost-center breakdown: total kilometres
// driven on one order and its share of the filtered total.
type OrderShare struct {
	OrderID    string  `json:"orderId"`
	Label      string  `json:"label"`
	Km         int     `json:"km"`
	Percentage float64 `json:"percentage"`
}

// SeriesPoint is one bucket of a chart series, keyed by "1/2006" for
// monthly buckets or a weekday date for daily buckets.
type SeriesPoint struct {
	Name string `json:"name"`
	Km   int    `json:"km"`
}

// FuelEntry is one refuelling row in the monthly report.
type FuelEntry struct {
	TripID       string  `json:"tripId"`
	Date         string  `json:"date"`
	VehicleLabel string  `json:"vehicleLabel"`
	Destination  string  `json:"destination"`
	Liters       float64 `json:"liters"`
	Price        float64 `json:"price,omitempty"`
}

// MonthlyReport is the full aggregation over one calendar month,
// optionally narrowed to a driver and/or vehicle. An empty filtered set
// yields a report of zeros, not an error.
type MonthlyReport struct {
	Month          string       `json:"month"`
	DriverLabel    string       `json:"driverLabel"`
	VehicleLabel   string       `json:"vehicleLabel"`
	Trips          []Trip       `json:"trips"`
	TripCount      int          `json:"tripCount"`
	TotalKm        int          `json:"totalKm"`
	BusinessKm     int          `json:"businessKm"`
	PrivateKm      int          `json:"privateKm"`
	UsedVehicles   []string     `json:"usedVehicles"`
	OrderBreakdown []OrderShare `json:"orderBreakdown"`
	FuelEntries    []FuelEntry  `json:"fuelEntries"`
	TotalFuel      float64      `json:"totalFuel"`
	// AvgConsumption is litres per 100 km, computed from fuel purchased in
	// the period. It conflates purchased with consumed fuel, so it is an
	// orientation figure only. Zero when either total is zero.
	AvgConsumption float64 `json:"avgConsumption"`
}

// Summary is the dashboard aggregation over the whole trip collection.
type Summary struct {
	TotalKm      int           `json:"totalKm"`
	BusinessKm   int           `json:"businessKm"`
	PrivateKm    int           `json:"privateKm"`
	TripCount    int           `json:"tripCount"`
	MonthlyChart []SeriesPoint `json:"monthlyChart"`
	DailyChart   []SeriesPoint `json:"dailyChart"`
}
