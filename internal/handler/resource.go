package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/romanwintercz/kniha-jizd-api/internal/service"
)

// Vehicles, drivers, and orders share one request shape: a flat object of
// optional strings. Create requires name; update treats absent fields as
// "leave unchanged".
type resourceRequest struct {
	Name         *string `json:"name,omitempty"`
	LicensePlate *string `json:"licensePlate,omitempty"`
	Code         *string `json:"code,omitempty"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// ---- Vehicles --------------------------------------------------------------

// ListVehicles handles GET /vehicles.
func (s *Server) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.vehicles.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// CreateVehicle handles POST /vehicles.
func (s *Server) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req resourceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid vehicle body: "+err.Error())
		return
	}

	v, err := s.vehicles.Create(r.Context(), deref(req.Name), deref(req.LicensePlate))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// UpdateVehicle handles PUT /vehicles/{id}.
func (s *Server) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	var req resourceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid vehicle body: "+err.Error())
		return
	}

	v, err := s.vehicles.Update(r.Context(), chi.URLParam(r, "id"), service.VehicleUpdate{
		Name:         req.Name,
		LicensePlate: req.LicensePlate,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// ToggleVehicleArchive handles POST /vehicles/{id}/archive.
func (s *Server) ToggleVehicleArchive(w http.ResponseWriter, r *http.Request) {
	v, err := s.vehicles.ToggleArchive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// ---- Drivers ---------------------------------------------------------------

// ListDrivers handles GET /drivers.
func (s *Server) ListDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := s.drivers.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, drivers)
}

// CreateDriver handles POST /drivers.
func (s *Server) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var req resourceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid driver body: "+err.Error())
		return
	}

	d, err := s.drivers.Create(r.Context(), deref(req.Name))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// RenameDriver handles PUT /drivers/{id}. Initials are recomputed from the
// new name server-side.
func (s *Server) RenameDriver(w http.ResponseWriter, r *http.Request) {
	var req resourceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid driver body: "+err.Error())
		return
	}

	d, err := s.drivers.Rename(r.Context(), chi.URLParam(r, "id"), deref(req.Name))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// ToggleDriverArchive handles POST /drivers/{id}/archive.
func (s *Server) ToggleDriverArchive(w http.ResponseWriter, r *http.Request) {
	d, err := s.drivers.ToggleArchive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// ---- Orders ----------------------------------------------------------------

// ListOrders handles GET /orders.
func (s *Server) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req resourceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid order body: "+err.Error())
		return
	}

	o, err := s.orders.Create(r.Context(), deref(req.Name), deref(req.Code))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

// UpdateOrder handles PUT /orders/{id}.
func (s *Server) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req resourceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid order body: "+err.Error())
		return
	}

	o, err := s.orders.Update(r.Context(), chi.URLParam(r, "id"), service.OrderUpdate{
		Name: req.Name,
		Code: req.Code,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// ToggleOrderArchive handles POST /orders/{id}/archive.
func (s *Server) ToggleOrderArchive(w http.ResponseWriter, r *http.Request) {
	o, err := s.orders.ToggleArchive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}
