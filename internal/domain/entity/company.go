package entity

// Estados administrativos de una empresa de transporte.
const (
	CompanyAuthorized   = "AUTHORIZED"
	CompanyInProcess    = "IN_PROCESS" // estado inicial al crear
	CompanySuspended    = "SUSPENDED"
	CompanyCancelled    = "CANCELLED"
	CompanyDeregistered = "DEREGISTERED"
)

// CompanyStates estados admitidos por defecto; el catálogo COMPANY_STATES
// puede redefinir la lista sin recompilar.
var CompanyStates = []string{
	CompanyAuthorized, CompanyInProcess, CompanySuspended,
	CompanyCancelled, CompanyDeregistered,
}

// LegalName triple de razón social: canónica (para búsqueda y reportes),
// oficial tal como figura en SUNARP, y nombre corto/comercial.
type LegalName struct {
	Canonical string `json:"canonical"`
	Official  string `json:"official,omitempty"`
	Short     string `json:"short,omitempty"`
}

// LegalRepresentative representante legal embebido en la empresa.
type LegalRepresentative struct {
	DNI        string `json:"dni"`
	GivenNames string `json:"givenNames"`
	Surnames   string `json:"surnames"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
}

// Company empresa operadora de transporte identificada por RUC.
//
// ResolutionIDs, VehicleIDs y RouteIDs son índices desnormalizados para la
// lectura; la verdad es la referencia directa del hijo (Resolution.CompanyID,
// Vehicle.CurrentCompanyID, Route.Company.ID). La rutina de reconciliación
// los recalcula a partir de esas referencias.
type Company struct {
	Base
	RUC                 string              `json:"ruc"`
	LegalName           LegalName           `json:"legalName"`
	FiscalAddress       string              `json:"fiscalAddress,omitempty"`
	LegalRepresentative LegalRepresentative `json:"legalRepresentative"`
	ServiceKind         string              `json:"serviceKind,omitempty"`
	State               string              `json:"state"`
	Phone               string              `json:"phone,omitempty"` // lista normalizada "a, b"
	Email               string              `json:"email,omitempty"`
	ResolutionIDs       []string            `json:"resolutionIds,omitempty"`
	VehicleIDs          []string            `json:"vehicleIds,omitempty"`
	RouteIDs            []string            `json:"routeIds,omitempty"`
	History             []HistoryEntry      `json:"history,omitempty"`
}

// CompanyRef snapshot de empresa embebido en rutas para lectura
// desnormalizada. Se refresca al escribir; nunca es verdad independiente.
type CompanyRef struct {
	ID        string `json:"id"`
	RUC       string `json:"ruc"`
	LegalName string `json:"legalName"`
}

// Ref devuelve el snapshot de la empresa.
func (c *Company) Ref() CompanyRef {
	return CompanyRef{ID: c.ID, RUC: c.RUC, LegalName: c.LegalName.Canonical}
}
