package entity

// Claves de catálogo reconocidas. Cada catálogo enumera los valores
// admitidos para un campo; los validadores los leen al arrancar y se
// recargan con la llamada explícita de reload.
const (
	CatalogCompanyStates     = "COMPANY_STATES"
	CatalogServiceKinds      = "SERVICE_KINDS"
	CatalogVehicleCategories = "VEHICLE_CATEGORIES"
	CatalogFuelKinds         = "FUEL_KINDS"
	CatalogOfficeSites       = "OFFICE_SITES"
)

// ServiceKinds tipos de servicio por defecto (el catálogo SERVICE_KINDS
// puede redefinirlos): pasajeros interprovincial, turístico, de
// trabajadores, escolar, mercancías.
var ServiceKinds = []string{
	"PASAJEROS", "TURISTICO", "TRABAJADORES", "ESCOLAR", "MERCANCIAS",
}

// CatalogValue opción de un catálogo.
type CatalogValue struct {
	Code   string `json:"code"`
	Label  string `json:"label,omitempty"`
	Active bool   `json:"active"`
}

// Catalog enumeración configurable almacenada como registro nombrado.
type Catalog struct {
	Base
	Key    string         `json:"key"`
	Values []CatalogValue `json:"values"`
}

// Codes devuelve los códigos activos del catálogo.
func (c *Catalog) Codes() []string {
	out := make([]string, 0, len(c.Values))
	for _, v := range c.Values {
		if v.Active {
			out = append(out, v.Code)
		}
	}
	return out
}
