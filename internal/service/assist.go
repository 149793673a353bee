package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/romanwintercz/kniha-jizd-api/internal/domain"
	"github.com/romanwintercz/kniha-jizd-api/internal/store"
)

// SuggestionParser is the AI collaborator the assist service depends on.
// Defining the interface here (in the consumer package) keeps the genai
// client swappable in tests. Every field of the results is optional and
// untrusted.
type SuggestionParser interface {
	ParseTripText(ctx context.Context, text string) (domain.TripSuggestion, error)
	ParseReceipt(ctx context.Context, image []byte, mimeType string) (domain.ReceiptSuggestion, error)
}

// AssistService turns free text or a receipt photo into prefill
// suggestions for the trip form. The parser's name fields are resolved
// against the active collections; anything that does not resolve is left
// unset so the form keeps whatever the user already typed. A parser
// failure never touches form state; the error is surfaced and that is
// all.
type AssistService struct {
	store  *store.Store
	parser SuggestionParser
}

// NewAssistService constructs an AssistService backed by the provided
// store and parser.
func NewAssistService(s *store.Store, parser SuggestionParser) *AssistService {
	return &AssistService{store: s, parser: parser}
}

// SuggestTrip parses free text into a resolved trip suggestion.
func (s *AssistService) SuggestTrip(ctx context.Context, text string) (domain.ResolvedTripSuggestion, error) {
	if strings.TrimSpace(text) == "" {
		return domain.ResolvedTripSuggestion{}, fmt.Errorf("service.AssistService.SuggestTrip: %w: text is required", domain.ErrValidation)
	}

	raw, err := s.parser.ParseTripText(ctx, text)
	if err != nil {
		return domain.ResolvedTripSuggestion{}, fmt.Errorf("service.AssistService.SuggestTrip: %w", err)
	}
	return s.resolve(raw), nil
}

// SuggestReceipt parses a photographed fuel receipt. Only date, liters,
// and price can come back, so there is nothing to resolve.
func (s *AssistService) SuggestReceipt(ctx context.Context, image []byte, mimeType string) (domain.ReceiptSuggestion, error) {
	if len(image) == 0 {
		return domain.ReceiptSuggestion{}, fmt.Errorf("service.AssistService.SuggestReceipt: %w: image is required", domain.ErrValidation)
	}

	out, err := s.parser.ParseReceipt(ctx, image, mimeType)
	if err != nil {
		return domain.ReceiptSuggestion{}, fmt.Errorf("service.AssistService.SuggestReceipt: %w", err)
	}
	return out, nil
}

// resolve matches the suggestion's name fields against the active
// collections (case-insensitive substring, first hit wins) and computes
// the continuity seed for the matched vehicle.
func (s *AssistService) resolve(raw domain.TripSuggestion) domain.ResolvedTripSuggestion {
	out := domain.ResolvedTripSuggestion{TripSuggestion: raw}

	if raw.VehicleName != nil {
		for _, v := range s.store.Vehicles() {
			if v.IsActive && containsFold(v.Name, *raw.VehicleName) {
				id := v.ID
				out.VehicleID = &id
				break
			}
		}
	}
	if raw.DriverName != nil {
		for _, d := range s.store.Drivers() {
			if d.IsActive && containsFold(d.Name, *raw.DriverName) {
				id := d.ID
				out.DriverID = &id
				break
			}
		}
	}
	if raw.OrderName != nil {
		for _, o := range s.store.Orders() {
			if o.IsActive && containsFold(o.Name, *raw.OrderName) {
				id := o.ID
				out.OrderID = &id
				break
			}
		}
	}

	if out.VehicleID != nil {
		seed := LastKnownOdometer(s.store.Trips(), *out.VehicleID, "")
		out.StartOdometer = &seed
	}
	return out
}

// containsFold reports whether haystack contains needle, ignoring case.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}
