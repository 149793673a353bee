package handler

import (
	"encoding/base64"
	"net/http"
)

type suggestTripRequest struct {
	Text string `json:"text"`
}

type suggestReceiptRequest struct {
	// Image is the receipt photo, base64-encoded. MimeType defaults to
	// image/jpeg when absent.
	Image    string `json:"image"`
	MimeType string `json:"mimeType,omitempty"`
}

// SuggestTrip handles POST /assist/trip: free text in, a resolved prefill
// suggestion out. Answers 503 when no AI backend is configured.
func (s *Server) SuggestTrip(w http.ResponseWriter, r *http.Request) {
	if s.assist == nil {
		writeErrorBody(w, http.StatusServiceUnavailable, "assist_unavailable", "AI assistance is not configured")
		return
	}

	var req suggestTripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid assist body: "+err.Error())
		return
	}

	suggestion, err := s.assist.SuggestTrip(r.Context(), req.Text)
	if err != nil {
		writeAssistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestion)
}

// SuggestReceipt handles POST /assist/receipt: a base64 receipt photo in,
// date/liters/price out.
func (s *Server) SuggestReceipt(w http.ResponseWriter, r *http.Request) {
	if s.assist == nil {
		writeErrorBody(w, http.StatusServiceUnavailable, "assist_unavailable", "AI assistance is not configured")
		return
	}

	var req suggestReceiptRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid assist body: "+err.Error())
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		writeBadRequest(w, "image must be base64-encoded")
		return
	}
	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	suggestion, err := s.assist.SuggestReceipt(r.Context(), image, mimeType)
	if err != nil {
		writeAssistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestion)
}
