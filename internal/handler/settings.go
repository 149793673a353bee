package handler

import (
	"net/http"

	"github.com/romanwintercz/kniha-jizd-api/internal/domain"
)

type closureDateBody struct {
	ClosureDate string `json:"closureDate"`
}

// GetClosureDate handles GET /settings/closure-date. An empty closureDate
// means no period is closed.
func (s *Server) GetClosureDate(w http.ResponseWriter, r *http.Request) {
	date, err := s.settings.ClosureDate(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, closureDateBody{ClosureDate: date})
}

// PutClosureDate handles PUT /settings/closure-date. Send an empty
// closureDate to reopen all periods.
func (s *Server) PutClosureDate(w http.ResponseWriter, r *http.Request) {
	var req closureDateBody
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid closure date body: "+err.Error())
		return
	}

	if err := s.settings.SetClosureDate(r.Context(), req.ClosureDate); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, closureDateBody{ClosureDate: req.ClosureDate})
}

// GetPreferences handles GET /settings/preferences.
func (s *Server) GetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.settings.Preferences(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// PutPreferences handles PUT /settings/preferences.
func (s *Server) PutPreferences(w http.ResponseWriter, r *http.Request) {
	var prefs domain.Preferences
	if err := decodeJSON(r, &prefs); err != nil {
		writeBadRequest(w, "invalid preferences body: "+err.Error())
		return
	}

	if err := s.settings.SetPreferences(r.Context(), prefs); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}
