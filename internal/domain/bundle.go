package domain

import "time"

// BundleVersion is the current AppDataExport envelope version.
const BundleVersion = 1

// BundleType selects the import strategy for a bundle.
// Import dispatches on it explicitly; there is no default branch.
type BundleType string

const (
	// BundleFullBackup replaces all four collections on import.
	BundleFullBackup BundleType = "full_backup"
	// BundleDriverExport merges a single driver's data on import:
	// trips are authoritative (last-writer-wins on ID collision),
	// resources are not (existing records win).
	BundleDriverExport BundleType = "driver_export"
)

// BundleData is the payload of an export envelope: the four entity
// collections, in full for a backup or filtered to one driver's closure
// for a driver export.
type BundleData struct {
	Trips    []Trip    `json:"trips"`
	Vehicles []Vehicle `json:"vehicles"`
	Drivers  []Driver  `json:"drivers"`
	Orders   []Order   `json:"orders"`
}

// Bundle is the AppDataExport envelope written to and read from export
// files. Source carries the exporting driver's name on driver exports so
// the importing side can show who the data came from.
type Bundle struct {
	Version    int        `json:"version"`
	Type       BundleType `json:"type"`
	ExportDate time.Time  `json:"exportDate"`
	Source     string     `json:"source,omitempty"`
	Data       BundleData `json:"data"`
}

// MergeReport summarizes what a driver-export import did to the trip
// collection, so the caller can surface the counts to the user.
type MergeReport struct {
	TripsAdded   int `json:"tripsAdded"`
	TripsUpdated int `json:"tripsUpdated"`
}
