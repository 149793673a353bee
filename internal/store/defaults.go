package store

import "github.com/romanwintercz/kniha-jizd-api/internal/domain"

// Built-in starter collections, used when the persistence port has never
// seen the corresponding key. A fresh install gets a usable fleet to try
// the app with instead of empty dropdowns; trips and templates start empty.

func seedVehicles() []domain.Vehicle {
	return []domain.Vehicle{
		{ID: "v1", Name: "Škoda Octavia", LicensePlate: "8U1 3347", IsActive: true},
		{ID: "v2", Name: "Ford Transit", LicensePlate: "2UA 0072", IsActive: true},
		{ID: "v3", Name: "VW Transporter", LicensePlate: "1UM 2203", IsActive: true},
	}
}

func seedDrivers() []domain.Driver {
	return []domain.Driver{
		{ID: "d1", Name: "Jan Novák", Initials: "JN", IsActive: true},
		{ID: "d2", Name: "Petra Svobodová", Initials: "PS", IsActive: true},
	}
}

func seedOrders() []domain.Order {
	return []domain.Order{
		{ID: "o1", Name: "Správa", Code: "101", IsActive: true},
		{ID: "o2", Name: "THP", Code: "102", IsActive: true},
		{ID: "o3", Name: "Drobné výkony 2025", Code: "7110/25/004", IsActive: true},
	}
}
