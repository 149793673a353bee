package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romanwintercz/kniha-jizd-api/internal/domain"
	"github.com/romanwintercz/kniha-jizd-api/internal/handler"
	"github.com/romanwintercz/kniha-jizd-api/internal/service"
)

// mockTripServicer implements handler.TripServicer with swappable function
// fields, so each test configures only the calls it expects.
type mockTripServicer struct {
	listFn     func(ctx context.Context) ([]domain.Trip, error)
	createFn   func(ctx context.Context, in service.TripInput) (domain.Trip, error)
	updateFn   func(ctx context.Context, id string, in service.TripInput) (domain.Trip, error)
	deleteFn   func(ctx context.Context, id string) error
	defaultsFn func(ctx context.Context, q service.DefaultsQuery) (domain.TripDefaults, error)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

func (m *mockTripServicer) List(ctx context.Context) ([]domain.Trip, error) {
	return m.listFn(ctx)
}

func (m *mockTripServicer) Create(ctx context.Context, in service.TripInput) (domain.Trip, error) {
	return m.createFn(ctx, in)
}

func (m *mockTripServicer) Update(ctx context.Context, id string, in service.TripInput) (domain.Trip, error) {
	return m.updateFn(ctx, id, in)
}

func (m *mockTripServicer) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockTripServicer) Defaults(ctx context.Context, q service.DefaultsQuery) (domain.TripDefaults, error) {
	return m.defaultsFn(ctx, q)
}

func newTripServer(m *mockTripServicer) http.Handler {
	return handler.NewServer(handler.Deps{Trips: m}).Routes()
}

const tripBody = `{
	"date": "2025-06-10",
	"origin": "Teplice",
	"destination": "Praha",
	"startOdometer": 10000,
	"endOdometer": 10150,
	"orderId": "o1",
	"type": "business",
	"vehicleId": "v1",
	"driverId": "d1"
}`

// ---- Create ----------------------------------------------------------------

func TestCreateTrip_Returns201(t *testing.T) {
	var got service.TripInput
	m := &mockTripServicer{
		createFn: func(ctx context.Context, in service.TripInput) (domain.Trip, error) {
			got = in
			return domain.Trip{ID: "t1", Date: in.Date, DistanceKm: 150}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/trips", strings.NewReader(tripBody))
	rec := httptest.NewRecorder()
	newTripServer(m).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "2025-06-10", got.Date)
	assert.Equal(t, domain.TripBusiness, got.Type)
	assert.Contains(t, rec.Body.String(), `"id":"t1"`)
}

func TestCreateTrip_ValidationErrorMapsTo422(t *testing.T) {
	m := &mockTripServicer{
		createFn: func(ctx context.Context, in service.TripInput) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: origin is required", domain.ErrValidation)
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/trips", strings.NewReader(tripBody))
	rec := httptest.NewRecorder()
	newTripServer(m).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"validation_error"`)
	assert.Contains(t, rec.Body.String(), "origin is required")
}

func TestCreateTrip_MalformedBodyMapsTo400(t *testing.T) {
	m := &mockTripServicer{}

	req := httptest.NewRequest(http.MethodPost, "/trips", strings.NewReader(`{"date": 42}`))
	rec := httptest.NewRecorder()
	newTripServer(m).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"bad_request"`)
}

// ---- Update / Delete -------------------------------------------------------

func TestUpdateTrip_NotFoundMapsTo404(t *testing.T) {
	m := &mockTripServicer{
		updateFn: func(ctx context.Context, id string, in service.TripInput) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/trips/missing", strings.NewReader(tripBody))
	rec := httptest.NewRecorder()
	newTripServer(m).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"not_found"`)
}

func TestUpdateTrip_LockedMapsTo409(t *testing.T) {
	m := &mockTripServicer{
		updateFn: func(ctx context.Context, id string, in service.TripInput) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", domain.ErrTripLocked)
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/trips/t1", strings.NewReader(tripBody))
	rec := httptest.NewRecorder()
	newTripServer(m).ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"trip_locked"`)
}

func TestDeleteTrip_Returns204(t *testing.T) {
	var deleted string
	m := &mockTripServicer{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/trips/t1", nil)
	rec := httptest.NewRecorder()
	newTripServer(m).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "t1", deleted)
}

// ---- List / Defaults -------------------------------------------------------

func TestListTrips_Returns200(t *testing.T) {
	m := &mockTripServicer{
		listFn: func(ctx context.Context) ([]domain.Trip, error) {
			return []domain.Trip{{ID: "t1"}, {ID: "t2"}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	rec := httptest.NewRecorder()
	newTripServer(m).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"t1"`)
	assert.Contains(t, rec.Body.String(), `"id":"t2"`)
}

func TestGetTripDefaults_PassesVehicleID(t *testing.T) {
	m := &mockTripServicer{
		defaultsFn: func(ctx context.Context, q service.DefaultsQuery) (domain.TripDefaults, error) {
			return domain.TripDefaults{VehicleID: q.VehicleID, StartOdometer: 10150}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/defaults?vehicle_id=v1", nil)
	rec := httptest.NewRecorder()
	newTripServer(m).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"vehicleId":"v1"`)
	assert.Contains(t, rec.Body.String(), `"startOdometer":10150`)
}

func TestGetTripDefaults_PassesGapQuery(t *testing.T) {
	var gotQuery service.DefaultsQuery
	m := &mockTripServicer{
		defaultsFn: func(ctx context.Context, q service.DefaultsQuery) (domain.TripDefaults, error) {
			gotQuery = q
			return domain.TripDefaults{VehicleID: q.VehicleID, StartOdometer: 10150, GapWarning: true}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/defaults?vehicle_id=v1&exclude_trip_id=t1&start_odometer=10000", nil)
	rec := httptest.NewRecorder()
	newTripServer(m).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "t1", gotQuery.ExcludeTripID)
	require.NotNil(t, gotQuery.StartOdometer)
	assert.Equal(t, 10000, *gotQuery.StartOdometer)
	assert.Contains(t, rec.Body.String(), `"gapWarning":true`)
}

func TestGetTripDefaults_BadStartOdometerMapsTo400(t *testing.T) {
	m := &mockTripServicer{}
	req := httptest.NewRequest(http.MethodGet, "/trips/defaults?start_odometer=abc", nil)
	rec := httptest.NewRecorder()
	newTripServer(m).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
