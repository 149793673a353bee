package domain

import (
	"strings"
	"unicode"
)

// Vehicle is a fleet vehicle. Archived vehicles (IsActive=false) are hidden
// from new-trip selection but stay in the collection so historical trips
// keep resolving their labels. Vehicles are never hard-deleted.
type Vehicle struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	LicensePlate string `json:"licensePlate"`
	IsActive     bool   `json:"isActive"`
}

// Label returns the display label "Name (PLATE)" used in reports.
func (v Vehicle) Label() string {
	if v.LicensePlate == "" {
		return v.Name
	}
	return v.Name + " (" + v.LicensePlate + ")"
}

// Driver is a person who records trips. Initials are derived from Name by
// DriverInitials whenever the name is set or changed; they are stored, not
// recomputed on read, so imported records keep whatever they carried.
type Driver struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Initials string `json:"initials"`
	IsActive bool   `json:"isActive"`
}

// Order is a cost center / project tag used to allocate trip distance.
// Code is the short accounting code (e.g. "7110/25/023"); it may be empty.
type Order struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	IsActive bool   `json:"isActive"`
}

// Label returns "Name (Code)" when a code is present, otherwise Name.
func (o Order) Label() string {
	if o.Code == "" {
		return o.Name
	}
	return o.Name + " (" + o.Code + ")"
}

// DriverInitials derives the display initials for a driver name: the first
// letter of each whitespace-separated token, uppercased, at most two.
// Works on runes so diacritics survive ("Čáni Marek" → "ČM").
func DriverInitials(name string) string {
	var initials []rune
	for _, token := range strings.Fields(name) {
		initials = append(initials, unicode.ToUpper([]rune(token)[0]))
		if len(initials) == 2 {
			break
		}
	}
	return string(initials)
}
