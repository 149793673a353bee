package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/romanwintercz/kniha-jizd-api/internal/domain"
	"github.com/romanwintercz/kniha-jizd-api/internal/store"
)

// Placeholders rendered when a trip references a record that no longer
// resolves. The kilometres still count; only the label is gone.
const (
	labelUnknownDriver  = "Neznámý řidič"
	labelUnknownVehicle = "Neznámé vozidlo"
	labelUnknownOrder   = "Neurčeno"
	labelAllDrivers     = "Všichni řidiči"
	labelAllVehicles    = "Všechna vozidla"
)

// czechWeekdays maps time.Weekday to the Czech two-letter abbreviation
// used on the trailing-week chart.
var czechWeekdays = [7]string{"Ne", "Po", "Út", "St", "Čt", "Pá", "So"}

// ReportService computes read-only aggregations over the trip collection:
// the monthly accounting report and the dashboard summary. It never
// mutates state.
type ReportService struct {
	store *store.Store
	// now is swappable in tests that pin the trailing-week window.
	now func() time.Time
}

// NewReportService constructs a ReportService backed by the provided store.
func NewReportService(s *store.Store) *ReportService {
	return &ReportService{store: s, now: time.Now}
}

// Monthly aggregates one calendar month of trips, optionally narrowed to a
// driver and/or vehicle. An empty filtered set yields a report of zeros.
func (s *ReportService) Monthly(ctx context.Context, f domain.ReportFilter) (domain.MonthlyReport, error) {
	if _, err := domain.ParseMonth(f.Month); err != nil {
		return domain.MonthlyReport{}, fmt.Errorf("service.ReportService.Monthly: %w: month must be YYYY-MM", domain.ErrValidation)
	}

	snap := s.store.Snapshot()

	var filtered []domain.Trip
	for _, t := range snap.Trips {
		if !domain.InMonth(t.Date, f.Month) {
			continue
		}
		if f.DriverID != "" && t.DriverID != f.DriverID {
			continue
		}
		if f.VehicleID != "" && t.VehicleID != f.VehicleID {
			continue
		}
		filtered = append(filtered, t)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date < filtered[j].Date
	})

	r := domain.MonthlyReport{
		Month:        f.Month,
		DriverLabel:  driverLabel(snap.Drivers, f.DriverID),
		VehicleLabel: vehicleLabel(snap.Vehicles, f.VehicleID),
		Trips:        filtered,
		TripCount:    len(filtered),
	}

	seenVehicles := map[string]bool{}
	orderKm := map[string]int{}
	var orderIDs []string
	for _, t := range filtered {
		r.TotalKm += t.DistanceKm
		if t.Type == domain.TripPrivate {
			r.PrivateKm += t.DistanceKm
		} else {
			r.BusinessKm += t.DistanceKm
		}

		if label := tripVehicleName(snap.Vehicles, t.VehicleID); !seenVehicles[label] {
			seenVehicles[label] = true
			r.UsedVehicles = append(r.UsedVehicles, label)
		}

		if _, ok := orderKm[t.OrderID]; !ok {
			orderIDs = append(orderIDs, t.OrderID)
		}
		orderKm[t.OrderID] += t.DistanceKm

		if t.FueledLiters() > 0 {
			r.TotalFuel += t.FueledLiters()
			entry := domain.FuelEntry{
				TripID:       t.ID,
				Date:         t.Date,
				VehicleLabel: tripVehicleName(snap.Vehicles, t.VehicleID),
				Destination:  t.Destination,
				Liters:       t.FueledLiters(),
			}
			if t.FuelPrice != nil {
				entry.Price = *t.FuelPrice
			}
			r.FuelEntries = append(r.FuelEntries, entry)
		}
	}

	for _, id := range orderIDs {
		share := domain.OrderShare{
			OrderID: id,
			Label:   orderLabel(snap.Orders, id),
			Km:      orderKm[id],
		}
		if r.TotalKm > 0 {
			share.Percentage = float64(share.Km) / float64(r.TotalKm) * 100
		}
		r.OrderBreakdown = append(r.OrderBreakdown, share)
	}
	sort.SliceStable(r.OrderBreakdown, func(i, j int) bool {
		return r.OrderBreakdown[i].Km > r.OrderBreakdown[j].Km
	})

	if r.TotalKm > 0 && r.TotalFuel > 0 {
		r.AvgConsumption = r.TotalFuel / float64(r.TotalKm) * 100
	}

	return r, nil
}

// Summary aggregates the whole trip collection for the dashboard: overall
// totals, a per-month chart series in chronological order, and a
// trailing-seven-day series.
func (s *ReportService) Summary(ctx context.Context) (domain.Summary, error) {
	trips := s.store.Trips()
	sort.SliceStable(trips, func(i, j int) bool {
		return trips[i].Date < trips[j].Date
	})

	var sum domain.Summary
	sum.TripCount = len(trips)
	for _, t := range trips {
		sum.TotalKm += t.DistanceKm
		if t.Type == domain.TripPrivate {
			sum.PrivateKm += t.DistanceKm
		} else {
			sum.BusinessKm += t.DistanceKm
		}
	}

	sum.MonthlyChart = monthlySeries(trips)
	sum.DailyChart = trailingDailySeries(trips, s.now(), 7)
	return sum, nil
}

// monthlySeries buckets trips by calendar month, keeping only months that
// occur in the data. Trips arrive date-sorted, so the buckets come out in
// chronological order regardless of how the collection was stored.
func monthlySeries(trips []domain.Trip) []domain.SeriesPoint {
	idx := map[string]int{}
	var series []domain.SeriesPoint
	for _, t := range trips {
		d, err := domain.ParseDate(t.Date)
		if err != nil {
			continue
		}
		key := fmt.Sprintf("%d/%d", int(d.Month()), d.Year())
		i, ok := idx[key]
		if !ok {
			i = len(series)
			idx[key] = i
			series = append(series, domain.SeriesPoint{Name: key})
		}
		series[i].Km += t.DistanceKm
	}
	return series
}

// trailingDailySeries buckets trips into a fixed window of the last days
// calendar days ending at now, labelled with Czech weekday abbreviations.
// Days without trips stay in the window as zero bars.
func trailingDailySeries(trips []domain.Trip, now time.Time, days int) []domain.SeriesPoint {
	start := now.AddDate(0, 0, -(days - 1))
	series := make([]domain.SeriesPoint, days)
	idx := map[string]int{}
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		key := day.Format(domain.DateLayout)
		idx[key] = i
		series[i] = domain.SeriesPoint{Name: czechWeekdays[day.Weekday()]}
	}
	for _, t := range trips {
		if i, ok := idx[t.Date]; ok {
			series[i].Km += t.DistanceKm
		}
	}
	return series
}

// ---- label helpers ---------------------------------------------------------

func driverLabel(drivers []domain.Driver, id string) string {
	if id == "" {
		return labelAllDrivers
	}
	for _, d := range drivers {
		if d.ID == id {
			return d.Name
		}
	}
	return labelUnknownDriver
}

func vehicleLabel(vehicles []domain.Vehicle, id string) string {
	if id == "" {
		return labelAllVehicles
	}
	for _, v := range vehicles {
		if v.ID == id {
			return v.Label()
		}
	}
	return labelUnknownVehicle
}

// tripVehicleName resolves a vehicle reference on a trip row; unlike
// vehicleLabel it treats an empty reference as unknown, not as "all".
func tripVehicleName(vehicles []domain.Vehicle, id string) string {
	for _, v := range vehicles {
		if v.ID == id {
			return v.Name
		}
	}
	return labelUnknownVehicle
}

func orderLabel(orders []domain.Order, id string) string {
	for _, o := range orders {
		if o.ID == id {
			return o.Label()
		}
	}
	return labelUnknownOrder
}
