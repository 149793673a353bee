package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romanwintercz/kniha-jizd-api/internal/domain"
	"github.com/romanwintercz/kniha-jizd-api/internal/service"
)

// ---- Vehicles --------------------------------------------------------------

func TestVehicleService_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := service.NewVehicleService(st)

	v, err := svc.Create(ctx, "  Škoda Octavia ", " 8U1 3347 ")
	require.NoError(t, err)
	assert.NotEmpty(t, v.ID)
	assert.Equal(t, "Škoda Octavia", v.Name)
	assert.Equal(t, "8U1 3347", v.LicensePlate)
	assert.True(t, v.IsActive)

	// Partial update: only the plate changes.
	upd, err := svc.Update(ctx, v.ID, service.VehicleUpdate{LicensePlate: strp("1AB 0001")})
	require.NoError(t, err)
	assert.Equal(t, "Škoda Octavia", upd.Name)
	assert.Equal(t, "1AB 0001", upd.LicensePlate)

	_, err = svc.Create(ctx, "   ", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Update(ctx, "missing", service.VehicleUpdate{Name: strp("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVehicleService_ToggleArchiveKeepsRecord(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := service.NewVehicleService(st)

	v, err := svc.Create(ctx, "Transit", "")
	require.NoError(t, err)

	archived, err := svc.ToggleArchive(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, archived.IsActive)

	// Archival is soft: the record stays listed.
	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	restored, err := svc.ToggleArchive(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, restored.IsActive)
}

// ---- Drivers ---------------------------------------------------------------

func TestDriverService_InitialsDerived(t *testing.T) {
	ctx := context.Background()
	svc := service.NewDriverService(newStore(t))

	d, err := svc.Create(ctx, "Čeněk Malý")
	require.NoError(t, err)
	assert.Equal(t, "ČM", d.Initials)

	renamed, err := svc.Rename(ctx, d.ID, "Jan Novák")
	require.NoError(t, err)
	assert.Equal(t, "Jan Novák", renamed.Name)
	assert.Equal(t, "JN", renamed.Initials, "rename must recompute initials")
}

func TestDriverService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := service.NewDriverService(newStore(t))

	_, err := svc.Create(ctx, " ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Rename(ctx, "missing", "Nové Jméno")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.ToggleArchive(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Orders ----------------------------------------------------------------

func TestOrderService_CodeOptional(t *testing.T) {
	ctx := context.Background()
	svc := service.NewOrderService(newStore(t))

	o, err := svc.Create(ctx, "Drobné výkony", "")
	require.NoError(t, err)
	assert.Empty(t, o.Code)
	assert.True(t, o.IsActive)

	upd, err := svc.Update(ctx, o.ID, service.OrderUpdate{Code: strp("7110/25/014")})
	require.NoError(t, err)
	assert.Equal(t, "Drobné výkony", upd.Name)
	assert.Equal(t, "7110/25/014", upd.Code)
}

func TestOrderService_UpdateEmptyNameRejected(t *testing.T) {
	ctx := context.Background()
	svc := service.NewOrderService(newStore(t))

	o, err := svc.Create(ctx, "Správa", "101")
	require.NoError(t, err)

	_, err = svc.Update(ctx, o.ID, service.OrderUpdate{Name: strp("  ")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- Templates -------------------------------------------------------------

func TestTemplateService_CreateListDelete(t *testing.T) {
	ctx := context.Background()
	svc := service.NewTemplateService(newStore(t))

	tpl, err := svc.Create(ctx, service.TemplateInput{
		Name:        "Ranní objížďka",
		Origin:      "Teplice",
		Destination: "Ústí nad Labem",
		OrderID:     "o1",
		Type:        domain.TripBusiness,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tpl.ID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, tpl.ID))
	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, svc.Delete(ctx, tpl.ID), domain.ErrNotFound)
}

func TestTemplateService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := service.NewTemplateService(newStore(t))

	tests := []struct {
		name string
		in   service.TemplateInput
	}{
		{"missing name", service.TemplateInput{Origin: "A", Destination: "B", Type: domain.TripBusiness}},
		{"missing route", service.TemplateInput{Name: "X", Type: domain.TripBusiness}},
		{"bad type", service.TemplateInput{Name: "X", Origin: "A", Destination: "B", Type: "commute"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

// ---- Settings --------------------------------------------------------------

func TestSettingsService_ClosureDate(t *testing.T) {
	ctx := context.Background()
	svc := service.NewSettingsService(newStore(t))

	date, err := svc.ClosureDate(ctx)
	require.NoError(t, err)
	assert.Empty(t, date)

	require.NoError(t, svc.SetClosureDate(ctx, "2025-06-30"))
	date, err = svc.ClosureDate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-30", date)

	// Empty clears the closure again.
	require.NoError(t, svc.SetClosureDate(ctx, ""))
	date, err = svc.ClosureDate(ctx)
	require.NoError(t, err)
	assert.Empty(t, date)

	assert.ErrorIs(t, svc.SetClosureDate(ctx, "30.6.2025"), domain.ErrValidation)
}

func TestSettingsService_Preferences(t *testing.T) {
	ctx := context.Background()
	svc := service.NewSettingsService(newStore(t))

	want := domain.Preferences{LastDriverID: "d1", LastVehicleID: "v1", LastOrderID: "o1"}
	require.NoError(t, svc.SetPreferences(ctx, want))

	got, err := svc.Preferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
