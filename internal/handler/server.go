// Package handler implements the HTTP handlers for the Kniha Jízd API.
// All handlers are methods on Server. Methods are split into
// domain-specific files (trip.go, report.go, etc.) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/romanwintercz/kniha-jizd-api/internal/domain"
	"github.com/romanwintercz/kniha-jizd-api/internal/service"
	"github.com/romanwintercz/kniha-jizd-api/spec"
)

// The servicer interfaces define the business operations each handler
// depends on. Defining them here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the store or service layer.

// TripServicer covers the trip lifecycle plus form-prefill defaults.
type TripServicer interface {
	List(ctx context.Context) ([]domain.Trip, error)
	Create(ctx context.Context, in service.TripInput) (domain.Trip, error)
	Update(ctx context.Context, id string, in service.TripInput) (domain.Trip, error)
	Delete(ctx context.Context, id string) error
	Defaults(ctx context.Context, q service.DefaultsQuery) (domain.TripDefaults, error)
}

// VehicleServicer covers the vehicle lifecycle.
type VehicleServicer interface {
	List(ctx context.Context) ([]domain.Vehicle, error)
	Create(ctx context.Context, name, licensePlate string) (domain.Vehicle, error)
	Update(ctx context.Context, id string, upd service.VehicleUpdate) (domain.Vehicle, error)
	ToggleArchive(ctx context.Context, id string) (domain.Vehicle, error)
}

// DriverServicer covers the driver lifecycle.
type DriverServicer interface {
	List(ctx context.Context) ([]domain.Driver, error)
	Create(ctx context.Context, name string) (domain.Driver, error)
	Rename(ctx context.Context, id, name string) (domain.Driver, error)
	ToggleArchive(ctx context.Context, id string) (domain.Driver, error)
}

// OrderServicer covers the cost-center lifecycle.
type OrderServicer interface {
	List(ctx context.Context) ([]domain.Order, error)
	Create(ctx context.Context, name, code string) (domain.Order, error)
	Update(ctx context.Context, id string, upd service.OrderUpdate) (domain.Order, error)
	ToggleArchive(ctx context.Context, id string) (domain.Order, error)
}

// TemplateServicer covers trip templates.
type TemplateServicer interface {
	List(ctx context.Context) ([]domain.TripTemplate, error)
	Create(ctx context.Context, in service.TemplateInput) (domain.TripTemplate, error)
	Delete(ctx context.Context, id string) error
}

// ReportServicer covers the read-only aggregations.
type ReportServicer interface {
	Monthly(ctx context.Context, f domain.ReportFilter) (domain.MonthlyReport, error)
	Summary(ctx context.Context) (domain.Summary, error)
}

// ExchangeServicer covers bundle export and import.
type ExchangeServicer interface {
	ExportBackup(ctx context.Context) (domain.Bundle, error)
	ExportDriver(ctx context.Context, driverID, month string) (domain.Bundle, error)
	Import(ctx context.Context, b domain.Bundle) (*domain.MergeReport, error)
}

// SettingsServicer covers the closure date and prefill preferences.
type SettingsServicer interface {
	ClosureDate(ctx context.Context) (string, error)
	SetClosureDate(ctx context.Context, date string) error
	Preferences(ctx context.Context) (domain.Preferences, error)
	SetPreferences(ctx context.Context, p domain.Preferences) error
}

// AssistServicer covers the AI prefill suggestions. It is optional: a nil
// AssistServicer makes the assist endpoints answer 503.
type AssistServicer interface {
	SuggestTrip(ctx context.Context, text string) (domain.ResolvedTripSuggestion, error)
	SuggestReceipt(ctx context.Context, image []byte, mimeType string) (domain.ReceiptSuggestion, error)
}

// Server holds the service dependencies for all API endpoints.
type Server struct {
	trips     TripServicer
	vehicles  VehicleServicer
	drivers   DriverServicer
	orders    OrderServicer
	templates TemplateServicer
	reports   ReportServicer
	exchange  ExchangeServicer
	settings  SettingsServicer
	assist    AssistServicer
}

// Deps bundles the Server's dependencies so call sites stay readable.
type Deps struct {
	Trips     TripServicer
	Vehicles  VehicleServicer
	Drivers   DriverServicer
	Orders    OrderServicer
	Templates TemplateServicer
	Reports   ReportServicer
	Exchange  ExchangeServicer
	Settings  SettingsServicer
	Assist    AssistServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	return &Server{
		trips:     d.Trips,
		vehicles:  d.Vehicles,
		drivers:   d.Drivers,
		orders:    d.Orders,
		templates: d.Templates,
		reports:   d.Reports,
		exchange:  d.Exchange,
		settings:  d.Settings,
		assist:    d.Assist,
	}
}

// Routes registers every endpoint on a fresh chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)
		r.Get("/defaults", s.GetTripDefaults)
		r.Put("/{id}", s.UpdateTrip)
		r.Delete("/{id}", s.DeleteTrip)
	})

	r.Route("/vehicles", func(r chi.Router) {
		r.Get("/", s.ListVehicles)
		r.Post("/", s.CreateVehicle)
		r.Put("/{id}", s.UpdateVehicle)
		r.Post("/{id}/archive", s.ToggleVehicleArchive)
	})

	r.Route("/drivers", func(r chi.Router) {
		r.Get("/", s.ListDrivers)
		r.Post("/", s.CreateDriver)
		r.Put("/{id}", s.RenameDriver)
		r.Post("/{id}/archive", s.ToggleDriverArchive)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", s.ListOrders)
		r.Post("/", s.CreateOrder)
		r.Put("/{id}", s.UpdateOrder)
		r.Post("/{id}/archive", s.ToggleOrderArchive)
	})

	r.Route("/templates", func(r chi.Router) {
		r.Get("/", s.ListTemplates)
		r.Post("/", s.CreateTemplate)
		r.Delete("/{id}", s.DeleteTemplate)
	})

	r.Route("/reports", func(r chi.Router) {
		r.Get("/monthly", s.GetMonthlyReport)
		r.Get("/summary", s.GetSummary)
	})

	r.Get("/export/backup", s.ExportBackup)
	r.Get("/export/driver", s.ExportDriver)
	r.Post("/import", s.ImportBundle)

	r.Route("/settings", func(r chi.Router) {
		r.Get("/closure-date", s.GetClosureDate)
		r.Put("/closure-date", s.PutClosureDate)
		r.Get("/preferences", s.GetPreferences)
		r.Put("/preferences", s.PutPreferences)
	})

	r.Route("/assist", func(r chi.Router) {
		r.Post("/trip", s.SuggestTrip)
		r.Post("/receipt", s.SuggestReceipt)
	})

	return r
}

// GetHealth handles GET /healthz. It returns 200 with {"status":"ok"}
// when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// serveOpenAPI handles GET /openapi.yaml, serving the embedded spec so the
// document and the running code are always in sync.
func serveOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}
