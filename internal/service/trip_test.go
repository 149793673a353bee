package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romanwintercz/kniha-jizd-api/internal/domain"
	"github.com/romanwintercz/kniha-jizd-api/internal/kv"
	"github.com/romanwintercz/kniha-jizd-api/internal/service"
	"github.com/romanwintercz/kniha-jizd-api/internal/store"
)

// newStore opens an entity store over an in-memory kv, emptied of the
// first-run seed data so tests control the collections exactly.
func newStore(t *testing.T) *store.Store {
	t.Helper()
	ctx := context.Background()
	mem := kv.NewMemory()
	for _, key := range []string{kv.KeyVehicles, kv.KeyDrivers, kv.KeyOrders} {
		require.NoError(t, mem.Set(ctx, key, []byte(`[]`)))
	}
	s, err := store.Open(ctx, mem)
	require.NoError(t, err)
	return s
}

func validInput() service.TripInput {
	return service.TripInput{
		Date:          "2025-06-10",
		Origin:        "Teplice",
		Destination:   "Praha",
		StartOdometer: 10000,
		EndOdometer:   10150,
		OrderID:       "o1",
		Type:          domain.TripBusiness,
		VehicleID:     "v1",
		DriverID:      "d1",
	}
}

// ---- Create ----------------------------------------------------------------

func TestTripService_Create_DerivesDistance(t *testing.T) {
	st := newStore(t)
	svc := service.NewTripService(st)

	got, err := svc.Create(context.Background(), validInput())

	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, 150, got.DistanceKm)
	require.Len(t, st.Trips(), 1)
}

func TestTripService_Create_EndBelowStartRejected(t *testing.T) {
	st := newStore(t)
	svc := service.NewTripService(st)

	in := validInput()
	in.StartOdometer = 10000
	in.EndOdometer = 9000

	_, err := svc.Create(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, st.Trips(), "rejected trip must not be stored")
}

func TestTripService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*service.TripInput)
	}{
		{"bad date", func(in *service.TripInput) { in.Date = "10.6.2025" }},
		{"missing origin", func(in *service.TripInput) { in.Origin = "  " }},
		{"missing destination", func(in *service.TripInput) { in.Destination = "" }},
		{"bad type", func(in *service.TripInput) { in.Type = "commute" }},
		{"negative odometer", func(in *service.TripInput) { in.StartOdometer = -1 }},
		{"zero fuel", func(in *service.TripInput) { f := 0.0; in.FuelLiters = &f }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newStore(t)
			svc := service.NewTripService(st)

			in := validInput()
			tt.mutate(&in)

			_, err := svc.Create(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, st.Trips())
		})
	}
}

func TestTripService_Create_RemembersSelection(t *testing.T) {
	st := newStore(t)
	svc := service.NewTripService(st)

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	prefs := st.Preferences()
	assert.Equal(t, "d1", prefs.LastDriverID)
	assert.Equal(t, "v1", prefs.LastVehicleID)
	assert.Equal(t, "o1", prefs.LastOrderID)
}

// ---- Update / Delete -------------------------------------------------------

func TestTripService_Update_ReplacesByID(t *testing.T) {
	st := newStore(t)
	svc := service.NewTripService(st)

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	in := validInput()
	in.EndOdometer = 10300
	updated, err := svc.Update(context.Background(), created.ID, in)

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 300, updated.DistanceKm)
	require.Len(t, st.Trips(), 1)
	assert.Equal(t, 10300, st.Trips()[0].EndOdometer)
}

func TestTripService_Update_NotFound(t *testing.T) {
	svc := service.NewTripService(newStore(t))

	_, err := svc.Update(context.Background(), "missing", validInput())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_ClosureLock(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := service.NewTripService(st)

	locked, err := svc.Create(ctx, validInput()) // dated 2025-06-10
	require.NoError(t, err)

	open := validInput()
	open.Date = "2025-07-01"
	openTrip, err := svc.Create(ctx, open)
	require.NoError(t, err)

	require.NoError(t, st.SetClosureDate(ctx, "2025-06-30"))

	// Locked trip: edit and delete both refused, collection unchanged.
	_, err = svc.Update(ctx, locked.ID, validInput())
	assert.ErrorIs(t, err, domain.ErrTripLocked)
	err = svc.Delete(ctx, locked.ID)
	assert.ErrorIs(t, err, domain.ErrTripLocked)
	assert.Len(t, st.Trips(), 2)

	// Moving an open trip into the closed period is refused too.
	intoClosed := validInput()
	intoClosed.Date = "2025-06-15"
	_, err = svc.Update(ctx, openTrip.ID, intoClosed)
	assert.ErrorIs(t, err, domain.ErrTripLocked)

	// Open trip stays fully mutable.
	after := open
	after.EndOdometer = 10500
	_, err = svc.Update(ctx, openTrip.ID, after)
	assert.NoError(t, err)
	assert.NoError(t, svc.Delete(ctx, openTrip.ID))
	assert.Len(t, st.Trips(), 1)
}

// ---- Defaults --------------------------------------------------------------

func TestTripService_Defaults_SeedsContinuityOdometer(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	require.NoError(t, st.MutateVehicles(ctx, func([]domain.Vehicle) ([]domain.Vehicle, error) {
		return []domain.Vehicle{{ID: "v1", Name: "Octavia", IsActive: true}}, nil
	}))
	svc := service.NewTripService(st)

	_, err := svc.Create(ctx, validInput()) // ends at 10150 on v1
	require.NoError(t, err)

	d, err := svc.Defaults(ctx, service.DefaultsQuery{VehicleID: "v1"})
	require.NoError(t, err)
	assert.Equal(t, "v1", d.VehicleID)
	assert.Equal(t, 10150, d.StartOdometer)
	assert.False(t, d.GapWarning)
}

func TestTripService_Defaults_GapWarningOnMismatch(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := service.NewTripService(st)

	_, err := svc.Create(ctx, validInput()) // ends at 10150 on v1
	require.NoError(t, err)

	entered := 10300
	d, err := svc.Defaults(ctx, service.DefaultsQuery{VehicleID: "v1", StartOdometer: &entered})
	require.NoError(t, err)
	assert.True(t, d.GapWarning)

	matching := 10150
	d, err = svc.Defaults(ctx, service.DefaultsQuery{VehicleID: "v1", StartOdometer: &matching})
	require.NoError(t, err)
	assert.False(t, d.GapWarning)
}

func TestTripService_Defaults_ExcludesEditedTrip(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := service.NewTripService(st)

	first, err := svc.Create(ctx, validInput()) // 10000 -> 10150
	require.NoError(t, err)
	second := validInput()
	second.StartOdometer = 10150
	second.EndOdometer = 10300
	edited, err := svc.Create(ctx, second)
	require.NoError(t, err)

	d, err := svc.Defaults(ctx, service.DefaultsQuery{VehicleID: "v1", ExcludeTripID: edited.ID})
	require.NoError(t, err)
	assert.Equal(t, first.EndOdometer, d.StartOdometer,
		"the edited trip must not anchor its own continuity value")
}

func TestTripService_Defaults_PrefersStoredSelection(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	require.NoError(t, st.MutateDrivers(ctx, func([]domain.Driver) ([]domain.Driver, error) {
		return []domain.Driver{
			{ID: "d1", Name: "First", IsActive: true},
			{ID: "d2", Name: "Stored", IsActive: true},
		}, nil
	}))
	require.NoError(t, st.SetPreferences(ctx, domain.Preferences{LastDriverID: "d2"}))
	svc := service.NewTripService(st)

	d, err := svc.Defaults(ctx, service.DefaultsQuery{})
	require.NoError(t, err)
	assert.Equal(t, "d2", d.DriverID)
}

func TestTripService_Defaults_ArchivedPreferenceFallsBack(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	require.NoError(t, st.MutateVehicles(ctx, func([]domain.Vehicle) ([]domain.Vehicle, error) {
		return []domain.Vehicle{
			{ID: "v1", Name: "Archived", IsActive: false},
			{ID: "v2", Name: "Active", IsActive: true},
		}, nil
	}))
	require.NoError(t, st.SetPreferences(ctx, domain.Preferences{LastVehicleID: "v1"}))
	svc := service.NewTripService(st)

	d, err := svc.Defaults(ctx, service.DefaultsQuery{})
	require.NoError(t, err)
	assert.Equal(t, "v2", d.VehicleID, "archived preference must fall back to first active")
}

func TestTripService_List_NewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := service.NewTripService(newStore(t))

	for _, date := range []string{"2025-06-05", "2025-06-20", "2025-06-10"} {
		in := validInput()
		in.Date = date
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	trips, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, trips, 3)
	assert.Equal(t, "2025-06-20", trips[0].Date)
	assert.Equal(t, "2025-06-10", trips[1].Date)
	assert.Equal(t, "2025-06-05", trips[2].Date)
}
