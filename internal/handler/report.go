package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/romanwintercz/kniha-jizd-api/internal/domain"
)

// csvHeaders is the first row of the CSV export. Czech column names and a
// semicolon delimiter match what Czech Excel expects.
var csvHeaders = []string{
	"Datum", "Odkud", "Kam", "Vzdálenost (km)", "Typ",
	"Kód zakázky", "Název zakázky", "Vozidlo", "Řidič",
	"Tachometr konec", "Tankování (l)",
}

const (
	csvUnknownVehicle = "Neznámé vozidlo"
	csvUnknownDriver  = "Neznámý řidič"
	csvUnknownOrder   = "Neurčeno"
)

// GetMonthlyReport handles GET /reports/monthly?month=YYYY-MM. Optional
// driver_id and vehicle_id narrow the report; ?format=csv switches the
// response to a CSV file download.
func (s *Server) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ReportFilter{
		Month:     q.Get("month"),
		DriverID:  q.Get("driver_id"),
		VehicleID: q.Get("vehicle_id"),
	}

	report, err := s.reports.Monthly(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	if q.Get("format") == "csv" {
		s.writeMonthlyCSV(w, r, report)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// GetSummary handles GET /reports/summary.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.reports.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// writeMonthlyCSV renders the report's trips as a semicolon-delimited CSV
// with a UTF-8 BOM so Czech Excel opens it with correct diacritics.
func (s *Server) writeMonthlyCSV(w http.ResponseWriter, r *http.Request, report domain.MonthlyReport) {
	vehicleNames := map[string]string{}
	if vehicles, err := s.vehicles.List(r.Context()); err == nil {
		for _, v := range vehicles {
			vehicleNames[v.ID] = v.Name
		}
	}
	driverNames := map[string]string{}
	if drivers, err := s.drivers.List(r.Context()); err == nil {
		for _, d := range drivers {
			driverNames[d.ID] = d.Name
		}
	}
	type orderRef struct{ code, name string }
	orderRefs := map[string]orderRef{}
	if orders, err := s.orders.List(r.Context()); err == nil {
		for _, o := range orders {
			orderRefs[o.ID] = orderRef{code: o.Code, name: o.Name}
		}
	}

	var buf bytes.Buffer
	buf.WriteString("\uFEFF")
	cw := csv.NewWriter(&buf)
	cw.Comma = ';'

	// bytes.Buffer writes never fail, so csv errors surface only on Flush.
	_ = cw.Write(csvHeaders)
	for _, t := range report.Trips {
		vehicle, ok := vehicleNames[t.VehicleID]
		if !ok {
			vehicle = csvUnknownVehicle
		}
		driver, ok := driverNames[t.DriverID]
		if !ok {
			driver = csvUnknownDriver
		}
		order, ok := orderRefs[t.OrderID]
		if !ok {
			order = orderRef{name: csvUnknownOrder}
		}

		fuel := ""
		if t.FueledLiters() > 0 {
			fuel = strconv.FormatFloat(t.FueledLiters(), 'f', -1, 64)
		}

		_ = cw.Write([]string{
			t.Date,
			t.Origin,
			t.Destination,
			strconv.Itoa(t.DistanceKm),
			t.Type.Label(),
			order.code,
			order.name,
			vehicle,
			driver,
			strconv.Itoa(t.EndOdometer),
			fuel,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=kniha-jizd-%s.csv", report.Month))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
