package service

import "github.com/romanwintercz/kniha-jizd-api/internal/domain"

// LastKnownOdometer returns the highest end-odometer value recorded for
// vehicleID across trips, or 0 when the vehicle has no trips yet. Pass the
// ID of a trip being edited as excludeTripID so it does not anchor against
// its own previous value; pass "" otherwise.
//
// The result seeds the start odometer of a new trip and backs the gap
// warning when a user-entered start value does not match. It is a pure
// function of the snapshot, independent of trip order.
func LastKnownOdometer(trips []domain.Trip, vehicleID, excludeTripID string) int {
	last := 0
	for _, t := range trips {
		if t.VehicleID != vehicleID || t.ID == excludeTripID {
			continue
		}
		if t.EndOdometer > last {
			last = t.EndOdometer
		}
	}
	return last
}
