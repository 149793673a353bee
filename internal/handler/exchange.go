package handler

import (
	"fmt"
	"net/http"

	"github.com/romanwintercz/kniha-jizd-api/internal/domain"
)

// ExportBackup handles GET /export/backup, returning a full_backup bundle
// as a JSON file download.
func (s *Server) ExportBackup(w http.ResponseWriter, r *http.Request) {
	bundle, err := s.exchange.ExportBackup(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=kniha-jizd-zaloha-%s.json", bundle.ExportDate.Format(domain.DateLayout)))
	writeJSON(w, http.StatusOK, bundle)
}

// ExportDriver handles GET /export/driver?driver_id=&month=. The month is
// optional; without it the whole history of the driver is exported.
func (s *Server) ExportDriver(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	bundle, err := s.exchange.ExportDriver(r.Context(), q.Get("driver_id"), q.Get("month"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

// importResponse reports what an import did. Merged is false for a
// full-backup restore, true for a driver-export merge.
type importResponse struct {
	Merged       bool `json:"merged"`
	TripsAdded   int  `json:"tripsAdded"`
	TripsUpdated int  `json:"tripsUpdated"`
}

// ImportBundle handles POST /import. The body is a bundle of either type;
// the service decides between destructive restore and additive merge.
func (s *Server) ImportBundle(w http.ResponseWriter, r *http.Request) {
	var bundle domain.Bundle
	if err := decodeJSON(r, &bundle); err != nil {
		writeBadRequest(w, "invalid bundle body: "+err.Error())
		return
	}

	report, err := s.exchange.Import(r.Context(), bundle)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := importResponse{}
	if report != nil {
		resp.Merged = true
		resp.TripsAdded = report.TripsAdded
		resp.TripsUpdated = report.TripsUpdated
	}
	writeJSON(w, http.StatusOK, resp)
}
