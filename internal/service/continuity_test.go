package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/romanwintercz/kniha-jizd-api/internal/domain"
	"github.com/romanwintercz/kniha-jizd-api/internal/service"
)

func TestLastKnownOdometer_NoTripsForVehicle(t *testing.T) {
	trips := []domain.Trip{
		{ID: "t1", VehicleID: "other", EndOdometer: 99999},
	}
	assert.Equal(t, 0, service.LastKnownOdometer(trips, "v1", ""))
	assert.Equal(t, 0, service.LastKnownOdometer(nil, "v1", ""))
}

func TestLastKnownOdometer_MaxIndependentOfOrder(t *testing.T) {
	a := domain.Trip{ID: "a", VehicleID: "v1", EndOdometer: 10000}
	b := domain.Trip{ID: "b", VehicleID: "v1", EndOdometer: 10400}
	c := domain.Trip{ID: "c", VehicleID: "v1", EndOdometer: 10150}

	orders := [][]domain.Trip{
		{a, b, c}, {c, b, a}, {b, a, c}, {c, a, b},
	}
	for _, trips := range orders {
		assert.Equal(t, 10400, service.LastKnownOdometer(trips, "v1", ""))
	}
}

func TestLastKnownOdometer_ExcludesEditedTrip(t *testing.T) {
	trips := []domain.Trip{
		{ID: "old", VehicleID: "v1", EndOdometer: 10000},
		{ID: "editing", VehicleID: "v1", EndOdometer: 10400},
	}

	// While editing "editing", its own end value must not anchor the start.
	assert.Equal(t, 10000, service.LastKnownOdometer(trips, "v1", "editing"))
	assert.Equal(t, 10400, service.LastKnownOdometer(trips, "v1", ""))
}

func TestLastKnownOdometer_IgnoresOtherVehicles(t *testing.T) {
	trips := []domain.Trip{
		{ID: "a", VehicleID: "v1", EndOdometer: 10000},
		{ID: "b", VehicleID: "v2", EndOdometer: 50000},
	}
	assert.Equal(t, 10000, service.LastKnownOdometer(trips, "v1", ""))
}
