package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/romanwintercz/kniha-jizd-api/internal/domain"
	"github.com/romanwintercz/kniha-jizd-api/internal/service"
)

type templateRequest struct {
	Name        string          `json:"name"`
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	OrderID     string          `json:"orderId"`
	Type        domain.TripType `json:"type"`
	VehicleID   string          `json:"vehicleId,omitempty"`
	DriverID    string          `json:"driverId,omitempty"`
}

// ListTemplates handles GET /templates.
func (s *Server) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.templates.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

// CreateTemplate handles POST /templates.
func (s *Server) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid template body: "+err.Error())
		return
	}

	tpl, err := s.templates.Create(r.Context(), service.TemplateInput{
		Name:        req.Name,
		Origin:      req.Origin,
		Destination: req.Destination,
		OrderID:     req.OrderID,
		Type:        req.Type,
		VehicleID:   req.VehicleID,
		DriverID:    req.DriverID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tpl)
}

// DeleteTemplate handles DELETE /templates/{id}.
func (s *Server) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.templates.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
