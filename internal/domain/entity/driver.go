package entity

import "time"

// Estados de un conductor habilitado.
const (
	DriverActive    = "ACTIVE"
	DriverInactive  = "INACTIVE"
	DriverSuspended = "SUSPENDED"
)

// Driver conductor habilitado para una empresa. El DNI identifica a la
// persona (8 dígitos); la licencia la emite el MTC.
type Driver struct {
	Base
	DNI             string         `json:"dni"`
	GivenNames      string         `json:"givenNames"`
	Surnames        string         `json:"surnames"`
	BirthDate       *time.Time     `json:"birthDate,omitempty"`
	LicenseNumber   string         `json:"licenseNumber,omitempty"`
	LicenseCategory string         `json:"licenseCategory,omitempty"` // A-IIb, A-IIIa, A-IIIb...
	LicenseExpiry   *time.Time     `json:"licenseExpiry,omitempty"`
	CompanyID       string         `json:"companyId,omitempty"`
	Phone           string         `json:"phone,omitempty"`
	Email           string         `json:"email,omitempty"`
	State           string         `json:"state"`
	History         []HistoryEntry `json:"history,omitempty"`
}

// FullName apellidos y nombres en el orden registral.
func (d *Driver) FullName() string {
	return d.Surnames + ", " + d.GivenNames
}
