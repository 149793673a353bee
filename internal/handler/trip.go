package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/romanwintercz/kniha-jizd-api/internal/domain"
	"github.com/romanwintercz/kniha-jizd-api/internal/service"
)

// tripRequest is the wire shape of a trip create/update body. The date
// travels as an RFC 3339 full-date; openapi_types.Date rejects anything
// else during decoding.
type tripRequest struct {
	Date          openapi_types.Date `json:"date"`
	Origin        string             `json:"origin"`
	Destination   string             `json:"destination"`
	StartOdometer int                `json:"startOdometer"`
	EndOdometer   int                `json:"endOdometer"`
	FuelLiters    *float64           `json:"fuelLiters,omitempty"`
	FuelPrice     *float64           `json:"fuelPrice,omitempty"`
	OrderID       string             `json:"orderId"`
	Type          domain.TripType    `json:"type"`
	VehicleID     string             `json:"vehicleId"`
	DriverID      string             `json:"driverId"`
}

func (req tripRequest) toInput() service.TripInput {
	return service.TripInput{
		Date:          req.Date.Format(domain.DateLayout),
		Origin:        req.Origin,
		Destination:   req.Destination,
		StartOdometer: req.StartOdometer,
		EndOdometer:   req.EndOdometer,
		FuelLiters:    req.FuelLiters,
		FuelPrice:     req.FuelPrice,
		OrderID:       req.OrderID,
		Type:          req.Type,
		VehicleID:     req.VehicleID,
		DriverID:      req.DriverID,
	}
}

// ListTrips handles GET /trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid trip body: "+err.Error())
		return
	}

	created, err := s.trips.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateTrip handles PUT /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid trip body: "+err.Error())
		return
	}

	updated, err := s.trips.Update(r.Context(), chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.trips.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTripDefaults handles GET /trips/defaults. Pass ?vehicle_id= to seed
// the odometer for a specific vehicle instead of the remembered one,
// ?exclude_trip_id= while editing, and ?start_odometer= with the value
// entered so far to get the continuity gap warning back.
func (s *Server) GetTripDefaults(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := service.DefaultsQuery{
		VehicleID:     query.Get("vehicle_id"),
		ExcludeTripID: query.Get("exclude_trip_id"),
	}
	if raw := query.Get("start_odometer"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeBadRequest(w, "start_odometer must be an integer")
			return
		}
		q.StartOdometer = &n
	}

	defaults, err := s.trips.Defaults(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, defaults)
}
